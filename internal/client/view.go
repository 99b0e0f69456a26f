package client

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// SortField is a column the user list can be ordered by.
type SortField string

const (
	SortByID    SortField = "id"
	SortByName  SortField = "name"
	SortByEmail SortField = "email"
)

// ParseSortField accepts id, name or email in any case.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByID, SortByName, SortByEmail:
		return f, nil
	case "":
		return SortByID, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (want id, name or email)", s)
	}
}

// ViewState is the list view the browser UI keeps: a search filter and a
// sort column with direction. The CLI applies the same rules.
type ViewState struct {
	Search string
	SortBy SortField
	Desc   bool
}

// Toggle selects field for sorting. Selecting the current field flips the
// direction; a new field starts ascending.
func (v *ViewState) Toggle(field SortField) {
	if v.SortBy == field {
		v.Desc = !v.Desc
		return
	}
	v.SortBy = field
	v.Desc = false
}

// Apply returns the users matching Search, ordered by SortBy. Matching is a
// case-insensitive substring test on name and email. users is not modified.
func (v ViewState) Apply(users []core.User) []core.User {
	q := strings.ToLower(strings.TrimSpace(v.Search))

	out := make([]core.User, 0, len(users))
	for _, u := range users {
		if q == "" ||
			strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}

	slices.SortStableFunc(out, func(a, b core.User) int {
		var c int
		switch v.SortBy {
		case SortByName:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case SortByEmail:
			c = cmp.Compare(strings.ToLower(a.Email), strings.ToLower(b.Email))
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if v.Desc {
			return -c
		}
		return c
	})
	return out
}
