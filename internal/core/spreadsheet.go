package core

// spreadsheet.go decodes uploaded workbooks into rows of cell text.
//
// Only the first worksheet is read, whatever its name. XLSX containers are
// opened with excelize; anything else that sniffs as text is read as a
// comma-separated export of a single sheet.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// sniffLen is how much of the payload is inspected to pick a decoder.
const sniffLen = 512

// Sheet is the decoded first worksheet of a workbook.
type Sheet struct {
	Name string
	Rows [][]string
}

// DecodeWorkbook reads the first worksheet from r.
// An empty payload or one that is neither an XLSX workbook nor delimited
// text is an error.
func DecodeWorkbook(r io.Reader) (*Sheet, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return nil, errors.New("empty file")
	}

	switch {
	case bytes.HasPrefix(head, zipMagic):
		return decodeXLSX(br)
	case bytes.HasPrefix(head, ole2Magic):
		return nil, errors.New("legacy .xls workbooks are not supported, save as .xlsx")
	case strings.HasPrefix(http.DetectContentType(head), "text/"):
		return decodeCSV(br)
	default:
		return nil, errors.New("file is not a spreadsheet")
	}
}

func decodeXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	// Raw values keep date cells as serial numbers whatever their number
	// format, so "d-mmm-yy" and friends reach ParseCreatedAt unformatted.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return &Sheet{Name: sheets[0], Rows: rows}, nil
}

func decodeCSV(r io.Reader) (*Sheet, error) {
	// BOMOverride strips a UTF-8 BOM and honors UTF-16 BOMs; the UTF-8
	// decoder replaces invalid byte sequences with U+FFFD.
	text := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(text)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	return &Sheet{Name: "Sheet1", Rows: rows}, nil
}
