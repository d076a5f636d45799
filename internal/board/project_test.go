package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCardHistory verifies that a card is born in TODO and that its history
// is exactly the sequence of lists it visited, with the current list always
// equal to the last entry.
func TestCardHistory(t *testing.T) {
	p := NewProject("site", "alice")
	c := NewCard("deploy", "ship it")
	require.True(t, p.AddCard(c))
	assert.Equal(t, ListTodo, c.CurrentList())

	require.True(t, p.MoveCard("deploy", ListTodo, ListInProgress))
	require.True(t, p.MoveCard("deploy", ListInProgress, ListDone))

	assert.Equal(t, []string{"TODO", "INPROGRESS", "DONE"}, c.History)
	assert.Equal(t, ListDone, c.CurrentList())
}

// TestProjectMembership verifies member bookkeeping: the creator is the
// first member and join order is preserved.
func TestProjectMembership(t *testing.T) {
	p := NewProject("site", "alice")
	assert.True(t, p.HasMember("alice"))
	assert.False(t, p.HasMember("bob"))

	p.AddMember("bob")
	p.AddMember("carol")
	assert.Equal(t, []string{"alice", "bob", "carol"}, p.Members)
}

// TestProjectCards verifies the all-cards index: duplicate names are
// rejected, a moved card stays indexed, and a card absent from the source
// list cannot be moved.
func TestProjectCards(t *testing.T) {
	p := NewProject("site", "alice")
	require.True(t, p.AddCard(NewCard("a", "")))
	assert.False(t, p.AddCard(NewCard("a", "again")))
	require.True(t, p.AddCard(NewCard("b", "")))

	assert.Equal(t, []string{"a", "b"}, p.CardNames())
	assert.Len(t, p.List(ListTodo), 2)

	require.True(t, p.MoveCard("a", ListTodo, ListInProgress))
	assert.Len(t, p.List(ListTodo), 1)
	assert.Len(t, p.List(ListInProgress), 1)
	c, ok := p.Card("a")
	require.True(t, ok)
	assert.Equal(t, ListInProgress, c.CurrentList())

	// "b" is in TODO, not INPROGRESS.
	assert.False(t, p.MoveCard("b", ListInProgress, ListDone))

	assert.False(t, p.AllDone())
	require.True(t, p.MoveCard("a", ListInProgress, ListDone))
	require.True(t, p.MoveCard("b", ListTodo, ListInProgress))
	require.True(t, p.MoveCard("b", ListInProgress, ListDone))
	assert.True(t, p.AllDone())
}

// TestRestoreProject verifies that persisted cards land back in the list
// named by the last entry of their own histories.
func TestRestoreProject(t *testing.T) {
	cards := []*Card{
		{Name: "a", History: []string{"TODO", "INPROGRESS"}},
		{Name: "b", History: []string{"TODO"}},
		{Name: "c", History: []string{"TODO", "INPROGRESS", "DONE"}},
	}
	p, err := RestoreProject("site", []string{"alice", "bob"}, cards)
	require.NoError(t, err)

	assert.Len(t, p.List(ListInProgress), 1)
	assert.Len(t, p.List(ListTodo), 1)
	assert.Len(t, p.List(ListDone), 1)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, p.CardNames())

	_, err = RestoreProject("bad", nil, []*Card{{Name: "x", History: []string{"LIMBO"}}})
	assert.Error(t, err)
}

// TestSnapshotIsDeepCopy verifies that mutating a snapshot does not leak
// back into the live project.
func TestSnapshotIsDeepCopy(t *testing.T) {
	p := NewProject("site", "alice")
	require.True(t, p.AddCard(NewCard("a", "desc")))

	s := p.Snapshot()
	require.Len(t, s.Todo, 1)
	s.Todo[0].History = append(s.Todo[0].History, "DONE")
	s.Members[0] = "mallory"

	c, _ := p.Card("a")
	assert.Equal(t, []string{"TODO"}, c.History)
	assert.Equal(t, "alice", p.Members[0])
}
