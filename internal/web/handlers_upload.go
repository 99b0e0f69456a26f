package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// multipartMemory is how much of a multipart upload is buffered in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// importResponse is the body returned by a committed import.
type importResponse struct {
	Message       string           `json:"message"`
	TotalInserted int              `json:"totalInserted"`
	TotalRows     int              `json:"totalRows"`
	Skipped       int              `json:"skipped"`
	ImportID      string           `json:"importId"`
	Sheet         string           `json:"sheet"`
	Rows          []core.RowResult `json:"rows"`

	MissingColumns []string `json:"missingColumns,omitempty"`
}

// handleUpload imports users from the spreadsheet in form field "file".
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			respondError(w, r, errFileTooLarge)
		case errors.Is(err, http.ErrNotMultipart):
			respondError(w, r, core.ErrMissingFile)
		default:
			respondError(w, r, &core.ValidationError{Message: "invalid upload form: " + err.Error()})
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, core.ErrMissingFile)
		return
	}
	defer file.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	report, err := s.service.ImportUsers(ctx, header.Filename, file)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, importResponse{
		Message:       "Users inserted successfully!",
		TotalInserted: report.TotalInserted,
		TotalRows:     report.TotalRows,
		Skipped:       report.Skipped,
		ImportID:      report.ImportID,
		Sheet:         report.Sheet,
		Rows:          report.Rows,

		MissingColumns: report.MissingColumns,
	})
}
