package store

import (
	"github.com/Tyrowin/goboard/internal/board"
	"github.com/Tyrowin/goboard/internal/wire"
)

// Register adds a user to the registry. Registration is idempotent with
// report: a second attempt for the same nickname leaves the stored entry
// untouched and returns ALREADY_REGISTERED. A successful registration
// triggers a users-changed push.
func (s *Store) Register(nickname, password string) wire.Reply {
	s.usersMu.Lock()
	if _, exists := s.users[nickname]; exists {
		s.usersMu.Unlock()
		return wire.ReplyAlreadyRegistered
	}
	s.users[nickname] = board.NewUser(nickname, password)
	s.userOrder = append(s.userOrder, nickname)
	s.usersMu.Unlock()

	s.usersChanged()
	return wire.ReplyOK
}

// Login checks registration, password, and online state in that order and,
// if all pass, marks the user online. The whole sequence runs under the
// users write lock so two concurrent logins cannot both succeed. The
// returned copy is the public view, with the password blanked like every
// other user copy that leaves the store.
//
// A login does not trigger a users-changed push on its own; the updated
// online flag rides along with the next registration-related snapshot.
func (s *Store) Login(nickname, password string) (wire.Reply, *board.User) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	u, exists := s.users[nickname]
	switch {
	case !exists:
		return wire.ReplyNotRegistered, nil
	case u.Password != password:
		return wire.ReplyWrongPassword, nil
	case u.Online:
		return wire.ReplyAlreadyOnline, nil
	}
	u.Online = true
	pub := u.Public()
	return wire.ReplyOK, &pub
}

// Logout marks the user offline. An unknown nickname is an invariant
// violation (the client was logged in) and surfaces as UNKNOWN_ERROR.
func (s *Store) Logout(nickname string) wire.Reply {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	u, exists := s.users[nickname]
	if !exists {
		return wire.ReplyUnknownError
	}
	u.Online = false
	return wire.ReplyOK
}
