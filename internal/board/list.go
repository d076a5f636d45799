package board

import (
	"errors"
	"strings"
)

// ListName identifies one of the four workflow lists of a project.
type ListName string

const (
	ListTodo        ListName = "TODO"
	ListInProgress  ListName = "INPROGRESS"
	ListToBeRevised ListName = "TOBEREVISED"
	ListDone        ListName = "DONE"
)

var (
	// ErrNoSuchList reports a list name outside the four canonical names.
	ErrNoSuchList = errors.New("board: no such list")
	// ErrSameList reports a move whose source and destination coincide.
	ErrSameList = errors.New("board: card is already in that list")
	// ErrMoveForbidden reports a move rejected by the workflow rules.
	ErrMoveForbidden = errors.New("board: move forbidden")
)

// ParseList normalizes a list name to upper case and validates it against
// the four canonical names.
func ParseList(name string) (ListName, error) {
	switch l := ListName(strings.ToUpper(name)); l {
	case ListTodo, ListInProgress, ListToBeRevised, ListDone:
		return l, nil
	default:
		return "", ErrNoSuchList
	}
}

// ValidateMove applies the workflow rules to a move between two canonical
// lists. The rules are expressed as destination-side constraints:
//
//	TODO        never accepts cards
//	INPROGRESS  accepts from any list except DONE
//	TOBEREVISED accepts only from INPROGRESS
//	DONE        accepts from any list except TODO
//
// A move onto the card's current list is reported as ErrSameList before the
// transition table is consulted.
func ValidateMove(src, dst ListName) error {
	if src == dst {
		return ErrSameList
	}
	switch dst {
	case ListTodo:
		return ErrMoveForbidden
	case ListInProgress:
		if src == ListDone {
			return ErrMoveForbidden
		}
	case ListToBeRevised:
		if src != ListInProgress {
			return ErrMoveForbidden
		}
	case ListDone:
		if src == ListTodo {
			return ErrMoveForbidden
		}
	}
	return nil
}
