package core

import (
	"regexp"
	"strconv"
	"strings"
)

// emailPattern is the address check applied by the UI and CLI before submitting.
// The server stores whatever it is given.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Normalize trims surrounding whitespace from both fields.
func (in UserInput) Normalize() UserInput {
	return UserInput{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
	}
}

// Validate checks that name and email are present.
func (in UserInput) Validate() error {
	if in.Name == "" || in.Email == "" {
		return &ValidationError{Message: "Name and email are required"}
	}
	return nil
}

// ParseID parses a path id. Only positive integers are accepted.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
