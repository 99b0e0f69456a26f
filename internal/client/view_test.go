package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

var sample = []core.User{
	{ID: 3, Name: "charlie", Email: "c@example.com"},
	{ID: 1, Name: "Alice", Email: "alice@corp.io"},
	{ID: 2, Name: "bob", Email: "BOB@example.com"},
}

func ids(users []core.User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestViewState_Apply(t *testing.T) {
	tests := []struct {
		name string
		view ViewState
		want []int64
	}{
		{"default sorts by id", ViewState{}, []int64{1, 2, 3}},
		{"id descending", ViewState{SortBy: SortByID, Desc: true}, []int64{3, 2, 1}},
		{"name ignores case", ViewState{SortBy: SortByName}, []int64{1, 2, 3}},
		{"email descending", ViewState{SortBy: SortByEmail, Desc: true}, []int64{3, 2, 1}},
		{"search matches email case-insensitively", ViewState{Search: "EXAMPLE"}, []int64{2, 3}},
		{"search matches name", ViewState{Search: "ali"}, []int64{1}},
		{"search with no hits", ViewState{Search: "zzz"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.view.Apply(sample)))
		})
	}
}

func TestViewState_ApplyLeavesInputAlone(t *testing.T) {
	before := ids(sample)
	ViewState{SortBy: SortByName, Desc: true}.Apply(sample)
	assert.Equal(t, before, ids(sample))
}

func TestViewState_Toggle(t *testing.T) {
	v := ViewState{SortBy: SortByID}

	v.Toggle(SortByID)
	assert.True(t, v.Desc)

	v.Toggle(SortByName)
	assert.Equal(t, SortByName, v.SortBy)
	assert.False(t, v.Desc)

	v.Toggle(SortByName)
	assert.True(t, v.Desc)
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("Email")
	require.NoError(t, err)
	assert.Equal(t, SortByEmail, f)

	f, err = ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByID, f)

	_, err = ParseSortField("createdAt")
	assert.Error(t, err)
}
