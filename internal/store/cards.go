package store

import (
	"errors"
	"fmt"

	"github.com/Tyrowin/goboard/internal/board"
	"github.com/Tyrowin/goboard/internal/wire"
)

// ShowCards returns the names of every card in the project, in the order
// they were added.
func (s *Store) ShowCards(nickname, projectName string) (wire.Reply, []string) {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		return wire.ReplyNonexistentProject, nil
	}
	return wire.ReplyOK, p.CardNames()
}

// ShowCard returns a copy of one card, including its full move history.
func (s *Store) ShowCard(nickname, projectName, cardName string) (wire.Reply, *board.Card) {
	s.projectsMu.RLock()
	defer s.projectsMu.RUnlock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		return wire.ReplyNonexistentProject, nil
	}
	c, ok := p.Card(cardName)
	if !ok {
		return wire.ReplyNonexistentCard, nil
	}
	return wire.ReplyOK, c.Clone()
}

// AddCard creates a card directly into the project's TODO list. Card names
// are unique within a project; a name unusable as a state-directory path
// component is an invariant violation. Success posts a chat message.
func (s *Store) AddCard(nickname, projectName, cardName, description string) wire.Reply {
	if !validName(cardName) {
		return wire.ReplyUnknownError
	}
	s.projectsMu.Lock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		s.projectsMu.Unlock()
		return wire.ReplyNonexistentProject
	}
	if !p.AddCard(board.NewCard(cardName, description)) {
		s.projectsMu.Unlock()
		return wire.ReplyCardExists
	}
	addr, port := p.ChatAddr, p.ChatPort
	s.projectsMu.Unlock()

	s.sendChat(addr, port, fmt.Sprintf("%s added card %s", nickname, cardName))
	return wire.ReplyOK
}

// MoveCard moves a card between two lists of a project. List-name and
// transition validation happen before the project is even looked up, so
// NONEXISTENT_LIST and MOVE_FORBIDDEN are reported regardless of project
// state. The move itself (remove from source, append history, insert into
// destination) is one atomic unit under the projects write lock.
func (s *Store) MoveCard(nickname, projectName, cardName, sourceList, destList string) wire.Reply {
	src, err := board.ParseList(sourceList)
	if err != nil {
		return wire.ReplyNonexistentList
	}
	dst, err := board.ParseList(destList)
	if err != nil {
		return wire.ReplyNonexistentList
	}
	if err := board.ValidateMove(src, dst); err != nil {
		if errors.Is(err, board.ErrSameList) {
			return wire.ReplyCardExists
		}
		return wire.ReplyMoveForbidden
	}

	s.projectsMu.Lock()
	p, exists := s.projects[projectName]
	if !exists || !p.HasMember(nickname) {
		s.projectsMu.Unlock()
		return wire.ReplyNonexistentProject
	}
	if !p.MoveCard(cardName, src, dst) {
		s.projectsMu.Unlock()
		return wire.ReplyNonexistentCard
	}
	addr, port := p.ChatAddr, p.ChatPort
	s.projectsMu.Unlock()

	s.sendChat(addr, port, fmt.Sprintf("%s moved card %s from %s to %s", nickname, cardName, src, dst))
	return wire.ReplyOK
}
