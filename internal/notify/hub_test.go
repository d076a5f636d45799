package notify

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/goboard/internal/board"
	"github.com/Tyrowin/goboard/internal/wire"
)

type fakeRegistrar struct {
	nicknames []string
	reply     wire.Reply
}

func (f *fakeRegistrar) Register(nickname, password string) wire.Reply {
	f.nicknames = append(f.nicknames, nickname)
	return f.reply
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.UsersSource = func() []board.User {
		return []board.User{{Nickname: "alice", Online: true}}
	}
	hub.ProjectsSource = func() []board.ProjectSnapshot {
		return []board.ProjectSnapshot{{Name: "site", Members: []string{"alice"}}}
	}
	go hub.Run()
	t.Cleanup(func() {
		_ = hub.Shutdown(time.Second)
	})
	return hub
}

func dialEvents(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(payload, &ev))
	return ev
}

// TestSubscriberIsSeeded verifies that a fresh subscriber receives the
// current user and project snapshots before any change happens.
func TestSubscriberIsSeeded(t *testing.T) {
	SetAllowedOrigins([]string{"*"})
	hub := startHub(t)
	s := httptest.NewServer(SetupRoutes(hub, &fakeRegistrar{reply: wire.ReplyOK}))
	defer s.Close()

	conn := dialEvents(t, s.URL)

	ev := readEvent(t, conn)
	require.Equal(t, "users", ev.Kind)
	require.Len(t, ev.Users, 1)
	assert.Equal(t, "alice", ev.Users[0].Nickname)
	assert.True(t, ev.Users[0].Online)

	ev = readEvent(t, conn)
	require.Equal(t, "projects", ev.Kind)
	require.Len(t, ev.Projects, 1)
	assert.Equal(t, "site", ev.Projects[0].Name)
}

// TestPublishReachesAllSubscribers verifies fan-out of a change event to
// multiple concurrent subscribers.
func TestPublishReachesAllSubscribers(t *testing.T) {
	SetAllowedOrigins([]string{"*"})
	hub := startHub(t)
	s := httptest.NewServer(SetupRoutes(hub, &fakeRegistrar{reply: wire.ReplyOK}))
	defer s.Close()

	first := dialEvents(t, s.URL)
	second := dialEvents(t, s.URL)
	for _, conn := range []*websocket.Conn{first, second} {
		readEvent(t, conn) // seeded users
		readEvent(t, conn) // seeded projects
	}

	hub.PublishUsers([]board.User{{Nickname: "alice"}, {Nickname: "bob"}})

	for _, conn := range []*websocket.Conn{first, second} {
		ev := readEvent(t, conn)
		require.Equal(t, "users", ev.Kind)
		assert.Len(t, ev.Users, 2)
	}
}
