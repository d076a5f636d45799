package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseList verifies that the four canonical list names are accepted
// in any case and everything else is rejected.
func TestParseList(t *testing.T) {
	for _, name := range []string{"TODO", "todo", "InProgress", "TOBEREVISED", "done"} {
		l, err := ParseList(name)
		require.NoError(t, err, "ParseList(%q)", name)
		assert.NotEmpty(t, l)
	}

	for _, name := range []string{"", "DOING", "TO DO", "ARCHIVE"} {
		_, err := ParseList(name)
		assert.ErrorIs(t, err, ErrNoSuchList, "ParseList(%q)", name)
	}
}

// TestValidateMove walks the full destination-side transition table.
func TestValidateMove(t *testing.T) {
	cases := []struct {
		src, dst ListName
		want     error
	}{
		{ListTodo, ListInProgress, nil},
		{ListTodo, ListToBeRevised, ErrMoveForbidden},
		{ListTodo, ListDone, ErrMoveForbidden},
		{ListInProgress, ListTodo, ErrMoveForbidden},
		{ListInProgress, ListToBeRevised, nil},
		{ListInProgress, ListDone, nil},
		{ListToBeRevised, ListTodo, ErrMoveForbidden},
		{ListToBeRevised, ListInProgress, nil},
		{ListToBeRevised, ListDone, nil},
		{ListDone, ListTodo, ErrMoveForbidden},
		{ListDone, ListInProgress, ErrMoveForbidden},
		{ListDone, ListToBeRevised, ErrMoveForbidden},
		{ListTodo, ListTodo, ErrSameList},
		{ListDone, ListDone, ErrSameList},
	}
	for _, tc := range cases {
		err := ValidateMove(tc.src, tc.dst)
		if tc.want == nil {
			assert.NoError(t, err, "%s -> %s", tc.src, tc.dst)
		} else {
			assert.ErrorIs(t, err, tc.want, "%s -> %s", tc.src, tc.dst)
		}
	}
}
