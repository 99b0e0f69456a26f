package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any, order []string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestDecodeWorkbook_FirstSheetOnly(t *testing.T) {
	buf := buildWorkbook(t, map[string][][]any{
		"Contacts": {{"Name", "Email"}, {"Ada", "ada@example.com"}},
		"Archive":  {{"Name", "Email"}, {"Old", "old@example.com"}, {"Older", "older@example.com"}},
	}, []string{"Contacts", "Archive"})

	sheet, err := DecodeWorkbook(buf)
	if err != nil {
		t.Fatalf("DecodeWorkbook() error = %v", err)
	}
	if sheet.Name != "Contacts" {
		t.Errorf("Sheet.Name = %q, want %q", sheet.Name, "Contacts")
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(sheet.Rows))
	}
	if sheet.Rows[1][0] != "Ada" {
		t.Errorf("Rows[1][0] = %q, want %q", sheet.Rows[1][0], "Ada")
	}
}

func TestDecodeWorkbook_CSV(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"plain", []byte("Name,Email\nAda,ada@example.com\n")},
		{"with BOM", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name,Email\r\nAda,ada@example.com\r\n")...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := DecodeWorkbook(bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("DecodeWorkbook() error = %v", err)
			}
			if len(sheet.Rows) != 2 {
				t.Fatalf("len(Rows) = %d, want 2", len(sheet.Rows))
			}
			if sheet.Rows[0][0] != "Name" {
				t.Errorf("header[0] = %q, want %q", sheet.Rows[0][0], "Name")
			}
		})
	}
}

func TestDecodeWorkbook_InvalidUTF8Replaced(t *testing.T) {
	input := []byte("Name,Email\nJos\xe9,jose@example.com\n")

	sheet, err := DecodeWorkbook(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeWorkbook() error = %v", err)
	}
	if !strings.HasPrefix(sheet.Rows[1][0], "Jos") || !strings.Contains(sheet.Rows[1][0], "\uFFFD") {
		t.Errorf("Rows[1][0] = %q, want replacement character", sheet.Rows[1][0])
	}
}

func TestDecodeWorkbook_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantMsg string
	}{
		{"empty", nil, "empty file"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "not a spreadsheet"},
		{"legacy xls", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, "legacy .xls"},
		{"truncated zip", []byte("PK\x03\x04garbage"), "open workbook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWorkbook(bytes.NewReader(tt.input))
			if err == nil {
				t.Fatal("DecodeWorkbook() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}
