package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Vadym-Teslytskyy/usermanager/internal/logging"
)

// Spreadsheet column headers read by the import, matched case-insensitively.
const (
	ColumnName      = "Name"
	ColumnEmail     = "Email"
	ColumnCreatedAt = "Created At"
)

// pendingInsert is an extracted row waiting for the transaction.
type pendingInsert struct {
	result int // index into ImportReport.Rows
	rec    ImportRecord
}

// ImportUsers decodes the first sheet of a workbook and inserts its rows in a
// single transaction. Rows without a name or email are skipped and reported.
// The workbook is fully parsed before the transaction opens; if any insert
// fails nothing is kept and a *StoreError is returned.
func (s *Service) ImportUsers(ctx context.Context, fileName string, r io.Reader) (*ImportReport, error) {
	if r == nil {
		return nil, ErrMissingFile
	}

	began := time.Now()
	start := s.now()
	report := &ImportReport{
		ImportID: uuid.NewString(),
		FileName: fileName,
		Rows:     []RowResult{},
	}

	ctx, span := s.tracer.Start(ctx, "users.import")
	defer span.End()
	span.SetAttributes(
		attribute.String("import.id", report.ImportID),
		attribute.String("import.file", fileName),
	)

	ip, ua := ClientFromContext(ctx)
	logger := logging.WithFields(ctx, "import_id", report.ImportID, "file", fileName, "ip", ip, "user_agent", ua)

	sheet, err := DecodeWorkbook(r)
	if err != nil {
		err = &DecodeError{FileName: fileName, Err: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		logger.Warn("import rejected", "error", err)
		return nil, err
	}
	report.Sheet = sheet.Name

	pending := extractRows(sheet, start, report)
	if len(report.MissingColumns) > 0 {
		logger.Warn("import sheet is missing required columns", "sheet", sheet.Name, "columns", report.MissingColumns)
	}
	span.SetAttributes(
		attribute.Int("import.rows", report.TotalRows),
		attribute.Int("import.skipped", report.Skipped),
	)

	if len(pending) > 0 {
		err = s.store.InTx(ctx, func(tx Inserter) error {
			for _, p := range pending {
				id, err := tx.Insert(ctx, p.rec)
				if err != nil {
					return fmt.Errorf("row %d: %w", report.Rows[p.result].Row, err)
				}
				report.Rows[p.result].ID = id
			}
			return nil
		})
		if err != nil {
			err = &StoreError{Op: "import users", Err: err}
			span.RecordError(err)
			span.SetStatus(codes.Error, "import rolled back")
			logger.Error("import rolled back", "rows", report.TotalRows, "error", err)
			return nil, err
		}
	}

	report.TotalInserted = len(pending)
	report.Duration = time.Since(began)
	span.SetAttributes(attribute.Int("import.inserted", report.TotalInserted))
	span.SetStatus(codes.Ok, "")

	logger.Info("import committed",
		"sheet", report.Sheet,
		"rows", report.TotalRows,
		"inserted", report.TotalInserted,
		"skipped", report.Skipped,
	)

	return report, nil
}

// extractRows maps data rows to records, appending a RowResult for every
// non-blank row. The first row is the header. Blank rows are ignored.
func extractRows(sheet *Sheet, now time.Time, report *ImportReport) []pendingInsert {
	if len(sheet.Rows) == 0 {
		return nil
	}

	header := MakeHeaderIndex(sheet.Rows[0])
	for _, col := range []string{ColumnName, ColumnEmail} {
		if !header.Has(col) {
			report.MissingColumns = append(report.MissingColumns, col)
		}
	}
	var pending []pendingInsert

	for _, row := range sheet.Rows[1:] {
		if isBlankRow(row) {
			continue
		}
		report.TotalRows++
		result := RowResult{Row: report.TotalRows}

		name := header.Cell(row, ColumnName)
		email := header.Cell(row, ColumnEmail)

		var missing []string
		if name == "" {
			missing = append(missing, ColumnName)
		}
		if email == "" {
			missing = append(missing, ColumnEmail)
		}
		if len(missing) > 0 {
			result.Status = RowSkipped
			result.Reason = "missing " + strings.Join(missing, " and ")
			report.Skipped++
			report.Rows = append(report.Rows, result)
			continue
		}

		createdAt, err := ParseCreatedAt(header.Cell(row, ColumnCreatedAt), now)
		if err != nil {
			result.Status = RowSkipped
			result.Reason = "invalid " + ColumnCreatedAt + ": " + err.Error()
			report.Skipped++
			report.Rows = append(report.Rows, result)
			continue
		}

		result.Status = RowInserted
		report.Rows = append(report.Rows, result)
		pending = append(pending, pendingInsert{
			result: len(report.Rows) - 1,
			rec:    ImportRecord{Name: name, Email: email, CreatedAt: createdAt},
		})
	}

	return pending
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
