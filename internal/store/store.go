package store

import (
	"log"
	"strings"
	"sync"

	"github.com/Tyrowin/goboard/internal/board"
	"github.com/Tyrowin/goboard/internal/mcast"
)

// Store is the shared domain store. The user registry and the project set
// have separate RWMutexes; operations touching both acquire projects before
// users, consistently, to avoid deadlock. Keyed maps give O(1) lookup while
// the order slices preserve registration and creation order for snapshots.
type Store struct {
	usersMu   sync.RWMutex
	users     map[string]*board.User
	userOrder []string

	projectsMu   sync.RWMutex
	projects     map[string]*board.Project
	projectOrder []string

	alloc *mcast.Allocator
	chat  mcast.Sender

	// Change hooks, invoked after the relevant lock has been released.
	// Set before the server starts taking requests.
	OnUsersChanged    func()
	OnProjectsChanged func()
}

// New creates an empty store backed by the given allocator. A nil sender
// disables chat notifications.
func New(alloc *mcast.Allocator, chat mcast.Sender) *Store {
	return &Store{
		users:    make(map[string]*board.User),
		projects: make(map[string]*board.Project),
		alloc:    alloc,
		chat:     chat,
	}
}

// validName reports whether a client-supplied project or card name can
// serve as a single state-directory path component.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func (s *Store) usersChanged() {
	if s.OnUsersChanged != nil {
		s.OnUsersChanged()
	}
}

func (s *Store) projectsChanged() {
	if s.OnProjectsChanged != nil {
		s.OnProjectsChanged()
	}
}

// sendChat posts a system message to the project's chat group.
// Best-effort: failures are logged, never propagated.
func (s *Store) sendChat(addr string, port int, text string) {
	if s.chat == nil {
		return
	}
	if err := s.chat.Send(addr, port, "[goboard] "+text); err != nil {
		log.Printf("chat message to %s:%d failed: %v", addr, port, err)
	}
}

// UsersSnapshot returns a copy of every registered user, in registration
// order, with passwords blanked.
func (s *Store) UsersSnapshot() []board.User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	out := make([]board.User, 0, len(s.userOrder))
	for _, nick := range s.userOrder {
		out = append(out, s.users[nick].Public())
	}
	return out
}

// PersistedUsers returns a copy of every registered user including
// passwords, for the persistence layer only.
func (s *Store) PersistedUsers() []board.User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	out := make([]board.User, 0, len(s.userOrder))
	for _, nick := range s.userOrder {
		out = append(out, *s.users[nick])
	}
	return out
}

// ProjectsSnapshot returns a deep copy of every project in creation order.
func (s *Store) ProjectsSnapshot() []board.ProjectSnapshot {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	out := make([]board.ProjectSnapshot, 0, len(s.projectOrder))
	for _, name := range s.projectOrder {
		out = append(out, s.projects[name].Snapshot())
	}
	return out
}

// LoadUsers seeds the registry from persisted state. Every restored user is
// forced offline: nobody resumes "online" across a restart.
func (s *Store) LoadUsers(users []board.User) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	for _, u := range users {
		u := u
		u.Online = false
		if _, dup := s.users[u.Nickname]; dup {
			continue
		}
		s.users[u.Nickname] = &u
		s.userOrder = append(s.userOrder, u.Nickname)
	}
}

// LoadProject adopts a restored project, assigning it a live chat address
// through the same allocator sequence used for new projects. Persisted
// addresses are never reused verbatim.
func (s *Store) LoadProject(p *board.Project) error {
	addr, port, err := s.alloc.Next()
	if err != nil {
		return err
	}
	p.ChatAddr, p.ChatPort = addr, port
	s.projectsMu.Lock()
	defer s.projectsMu.Unlock()
	if _, dup := s.projects[p.Name]; dup {
		s.alloc.Release(addr)
		return nil
	}
	s.projects[p.Name] = p
	s.projectOrder = append(s.projectOrder, p.Name)
	return nil
}
