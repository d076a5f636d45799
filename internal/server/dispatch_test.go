package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/goboard/internal/mcast"
	"github.com/Tyrowin/goboard/internal/store"
	"github.com/Tyrowin/goboard/internal/wire"
)

func newDispatchServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st := store.New(mcast.NewAllocator(), nil)
	return New(Config{}, st), st
}

// TestDispatchSession drives a whole session through the command table and
// checks that each reply carries the payload its command promises.
func TestDispatchSession(t *testing.T) {
	s, st := newDispatchServer(t)
	st.Register("alice", "secret")

	resp := s.dispatch(&wire.Message{Command: wire.CmdLogin, Nickname: "alice", Password: "secret"})
	require.Equal(t, wire.ReplyOK, resp.Reply)
	require.NotNil(t, resp.User)
	assert.True(t, resp.User.Online)
	assert.Empty(t, resp.User.Password)

	resp = s.dispatch(&wire.Message{Command: wire.CmdCreateProject, Nickname: "alice", Project: "site"})
	assert.Equal(t, wire.ReplyOK, resp.Reply)

	resp = s.dispatch(&wire.Message{Command: wire.CmdListProjects, Nickname: "alice"})
	require.Equal(t, wire.ReplyOK, resp.Reply)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "site", resp.Projects[0].Name)

	resp = s.dispatch(&wire.Message{Command: wire.CmdAddCard, Nickname: "alice", Project: "site", Card: "deploy", Description: "ship it"})
	assert.Equal(t, wire.ReplyOK, resp.Reply)

	resp = s.dispatch(&wire.Message{Command: wire.CmdShowCards, Nickname: "alice", Project: "site"})
	require.Equal(t, wire.ReplyOK, resp.Reply)
	assert.Equal(t, []string{"deploy"}, resp.Cards)

	resp = s.dispatch(&wire.Message{Command: wire.CmdMoveCard, Nickname: "alice", Project: "site", Card: "deploy", Source: "TODO", Dest: "INPROGRESS"})
	assert.Equal(t, wire.ReplyOK, resp.Reply)

	resp = s.dispatch(&wire.Message{Command: wire.CmdShowCard, Nickname: "alice", Project: "site", Card: "deploy"})
	require.Equal(t, wire.ReplyOK, resp.Reply)
	require.NotNil(t, resp.CardDetail)
	assert.Equal(t, []string{"TODO", "INPROGRESS"}, resp.CardDetail.History)

	resp = s.dispatch(&wire.Message{Command: wire.CmdShowMembers, Nickname: "alice", Project: "site"})
	require.Equal(t, wire.ReplyOK, resp.Reply)
	assert.Equal(t, []string{"alice"}, resp.Members)

	resp = s.dispatch(&wire.Message{Command: wire.CmdLogout, Nickname: "alice"})
	assert.Equal(t, wire.ReplyOK, resp.Reply)
}

// TestDispatchErrorReplies checks the error paths surfaced through the
// command table, including the closed-set guarantee for unknown tags.
func TestDispatchErrorReplies(t *testing.T) {
	s, st := newDispatchServer(t)
	st.Register("alice", "secret")

	resp := s.dispatch(&wire.Message{Command: wire.CmdLogin, Nickname: "alice", Password: "nope"})
	assert.Equal(t, wire.ReplyWrongPassword, resp.Reply)
	assert.Nil(t, resp.User)

	resp = s.dispatch(&wire.Message{Command: wire.CmdCancelProject, Nickname: "alice", Project: "ghost"})
	assert.Equal(t, wire.ReplyNonexistentProject, resp.Reply)

	resp = s.dispatch(&wire.Message{Command: "SELF_DESTRUCT"})
	assert.Equal(t, wire.ReplyUnknownError, resp.Reply)
}
