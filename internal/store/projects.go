package store

import (
	"fmt"

	"github.com/Tyrowin/goboard/internal/board"
	"github.com/Tyrowin/goboard/internal/wire"
)

// ListProjects returns snapshots of every project the user is a member of.
func (s *Store) ListProjects(nickname string) (wire.Reply, []board.ProjectSnapshot) {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	out := make([]board.ProjectSnapshot, 0)
	for _, name := range s.projectOrder {
		if p := s.projects[name]; p.HasMember(nickname) {
			out = append(out, p.Snapshot())
		}
	}
	return wire.ReplyOK, out
}

// CreateProject creates a project whose only member is the requester. A
// name unusable as a state-directory path component is rejected before
// anything is allocated. The chat address is allocated up front; if the
// name turns out to be taken the address goes straight back to the reuse
// queue. Success triggers a projects-changed push and a system chat
// message.
func (s *Store) CreateProject(nickname, name string) wire.Reply {
	if !validName(name) {
		return wire.ReplyUnableCreateProject
	}
	addr, port, err := s.alloc.Next()
	if err != nil {
		return wire.ReplyUnableCreateProject
	}
	p := board.NewProject(name, nickname)
	p.ChatAddr, p.ChatPort = addr, port

	s.projectsMu.Lock()
	if _, exists := s.projects[name]; exists {
		s.projectsMu.Unlock()
		s.alloc.Release(addr)
		return wire.ReplyProjectExists
	}
	s.projects[name] = p
	s.projectOrder = append(s.projectOrder, name)
	s.projectsMu.Unlock()

	s.projectsChanged()
	s.sendChat(addr, port, fmt.Sprintf("%s created project %s", nickname, name))
	return wire.ReplyOK
}

// AddMember adds a registered user to a project. All four checks (project
// exists, requester is a member, new member is registered, new member not
// already in) and the mutation run under the projects write lock; the users
// read lock is taken inside it, respecting the projects-before-users lock
// order. A project the requester does not belong to is reported as
// nonexistent. Success triggers a projects-changed push and a chat message.
func (s *Store) AddMember(nickname, projectName, newMember string) wire.Reply {
	s.projectsMu.Lock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		s.projectsMu.Unlock()
		return wire.ReplyNonexistentProject
	}
	s.usersMu.RLock()
	_, registered := s.users[newMember]
	s.usersMu.RUnlock()
	if !registered {
		s.projectsMu.Unlock()
		return wire.ReplyNotRegistered
	}
	if p.HasMember(newMember) {
		s.projectsMu.Unlock()
		return wire.ReplyAlreadyMember
	}
	p.AddMember(newMember)
	addr, port := p.ChatAddr, p.ChatPort
	s.projectsMu.Unlock()

	s.projectsChanged()
	s.sendChat(addr, port, fmt.Sprintf("%s added a new member: %s", nickname, newMember))
	return wire.ReplyOK
}

// ShowMembers returns a project's member list in join order.
func (s *Store) ShowMembers(nickname, projectName string) (wire.Reply, []string) {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		return wire.ReplyNonexistentProject, nil
	}
	return wire.ReplyOK, append([]string(nil), p.Members...)
}

// CancelProject destroys a project once every one of its cards is DONE.
// The freed chat address joins the reuse queue and subscribers get a
// projects-changed push.
func (s *Store) CancelProject(nickname, projectName string) wire.Reply {
	s.projectsMu.Lock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		s.projectsMu.Unlock()
		return wire.ReplyNonexistentProject
	}
	if !p.AllDone() {
		s.projectsMu.Unlock()
		return wire.ReplyCancelForbidden
	}
	addr := p.ChatAddr
	delete(s.projects, projectName)
	for i, name := range s.projectOrder {
		if name == projectName {
			s.projectOrder = append(s.projectOrder[:i], s.projectOrder[i+1:]...)
			break
		}
	}
	s.projectsMu.Unlock()

	s.alloc.Release(addr)
	s.projectsChanged()
	return wire.ReplyOK
}
