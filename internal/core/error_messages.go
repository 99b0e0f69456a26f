package core

// error_messages.go maps technical errors to user-facing messages with a
// support code.
//
// Codes by family:
//
//	VAL001-VAL099  request validation (missing fields, bad ids, bad dates)
//	USR001-USR099  user lookups
//	FILE001-FILE099 uploaded file problems
//	DB001-DB099    database failures
//	REQ001-REQ099  request lifecycle (cancelled, timed out)
//	ERR000         fallback when nothing matches
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Validation
	{"name and email are required", UserMessage{"Name and email are required", "Fill in both the name and the email", "VAL001"}},
	{"invalid user id", UserMessage{"Invalid user id", "Use the numeric id shown in the user list", "VAL002"}},
	{"invalid date", UserMessage{"Invalid date in Created At column", "Use YYYY-MM-DD, MM/DD/YYYY, or leave the cell empty", "VAL003"}},

	// Users
	{"user not found", UserMessage{"User not found", "Refresh the list, the user may already be deleted", "USR001"}},

	// Files
	{"file too large", UserMessage{"File exceeds the maximum upload size", "Split the sheet into smaller files", "FILE001"}},
	{"no file provided", UserMessage{"No file provided", "Choose an .xlsx or .csv file to import", "FILE002"}},
	{"empty file", UserMessage{"The uploaded file is empty", "Upload a sheet with a header row and data rows", "FILE003"}},
	{"legacy .xls", UserMessage{"Old .xls workbooks are not supported", "Save the workbook as .xlsx and try again", "FILE004"}},
	{"not a spreadsheet", UserMessage{"The file is not a spreadsheet", "Upload an .xlsx workbook or a .csv export", "FILE004"}},
	{"invalid csv", UserMessage{"The CSV file could not be read", "Ensure the file is comma-separated text", "FILE005"}},
	{"open workbook", UserMessage{"The workbook could not be opened", "Re-save the workbook in Excel and try again", "FILE006"}},
	{"decode spreadsheet", UserMessage{"The spreadsheet could not be read", "Check the file and try again", "FILE007"}},

	// Database constraints
	{"duplicate key", UserMessage{"A user with these values already exists", "Remove the duplicate rows and try again", "DB001"}},
	{"duplicate entry", UserMessage{"A user with these values already exists", "Remove the duplicate rows and try again", "DB001"}},
	{"unique constraint", UserMessage{"A user with these values already exists", "Remove the duplicate rows and try again", "DB001"}},
	{"not null constraint", UserMessage{"A required value was missing", "Fill in every required column", "DB002"}},
	{"violates not-null", UserMessage{"A required value was missing", "Fill in every required column", "DB002"}},

	// Database connectivity
	{"database config", UserMessage{"Database is not configured", "Set DB_HOST, DB_USER, DB_PASSWORD and DB_NAME", "DB003"}},
	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB004"}},
	{"connection reset", UserMessage{"Database connection was interrupted", "Please try again", "DB005"}},
	{"timeout", UserMessage{"Operation timed out", "Try a smaller file or try again later", "DB006"}},
	{"deadlock", UserMessage{"Database was busy with conflicting operations", "Please try again", "DB007"}},
	{"no such table", UserMessage{"The users table is missing", "Restart the server to create it", "DB008"}},
	{"does not exist", UserMessage{"The users table is missing", "Restart the server to create it", "DB008"}},
	{"doesn't exist", UserMessage{"The users table is missing", "Restart the server to create it", "DB008"}},

	// Request lifecycle
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "REQ001"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try a smaller file or check your connection", "REQ002"}},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// String renders m as "Message (Code: XXX). Action".
func (m UserMessage) String() string {
	if m.Message == "" {
		return ""
	}
	if m.Code == "" {
		return m.Message
	}
	s := fmt.Sprintf("%s (Code: %s)", m.Message, m.Code)
	if m.Action != "" {
		s += ". " + m.Action
	}
	return s
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	return MapError(err).String()
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
