package board

import "fmt"

// Project is a named shared workspace: an ordered member list (the creator
// first, then join order), the four workflow lists, an all-cards index, and
// the multicast address/port assigned to its chat channel.
//
// Cards are indexed by name for O(1) lookup; cardOrder preserves insertion
// order for listings and snapshots.
type Project struct {
	Name      string
	Members   []string
	ChatAddr  string
	ChatPort  int
	lists     map[ListName][]*Card
	cards     map[string]*Card
	cardOrder []string
}

// ProjectSnapshot is a serializable deep copy of a project, used for
// subscriber pushes, LIST_PROJECTS responses, and persistence.
type ProjectSnapshot struct {
	Name        string   `json:"name"`
	Members     []string `json:"members"`
	Todo        []Card   `json:"todo"`
	InProgress  []Card   `json:"inProgress"`
	ToBeRevised []Card   `json:"toBeRevised"`
	Done        []Card   `json:"done"`
	ChatAddr    string   `json:"chatAddress"`
	ChatPort    int      `json:"chatPort"`
}

// NewProject creates an empty project whose only member is its creator.
func NewProject(name, creator string) *Project {
	p := &Project{
		Name:    name,
		Members: []string{creator},
		lists:   make(map[ListName][]*Card),
		cards:   make(map[string]*Card),
	}
	return p
}

// RestoreProject rebuilds a project from persisted members and cards. Each
// card is re-inserted into the list named by the last entry of its own
// history and into the all-cards index.
func RestoreProject(name string, members []string, cards []*Card) (*Project, error) {
	p := &Project{
		Name:    name,
		Members: append([]string(nil), members...),
		lists:   make(map[ListName][]*Card),
		cards:   make(map[string]*Card),
	}
	for _, c := range cards {
		if len(c.History) == 0 {
			return nil, fmt.Errorf("card %q has an empty history", c.Name)
		}
		cur, err := ParseList(string(c.CurrentList()))
		if err != nil {
			return nil, fmt.Errorf("card %q: unknown list %q", c.Name, c.CurrentList())
		}
		if _, dup := p.cards[c.Name]; dup {
			return nil, fmt.Errorf("duplicate card %q", c.Name)
		}
		p.lists[cur] = append(p.lists[cur], c)
		p.cards[c.Name] = c
		p.cardOrder = append(p.cardOrder, c.Name)
	}
	return p, nil
}

// HasMember reports whether nickname belongs to the project.
func (p *Project) HasMember(nickname string) bool {
	for _, m := range p.Members {
		if m == nickname {
			return true
		}
	}
	return false
}

// AddMember appends a nickname to the member list. The caller is expected
// to have checked for duplicates.
func (p *Project) AddMember(nickname string) {
	p.Members = append(p.Members, nickname)
}

// Card looks up a card by name in the all-cards index.
func (p *Project) Card(name string) (*Card, bool) {
	c, ok := p.cards[name]
	return c, ok
}

// CardNames returns all card names in insertion order.
func (p *Project) CardNames() []string {
	return append([]string(nil), p.cardOrder...)
}

// List returns the cards currently in the named list, in order.
func (p *Project) List(name ListName) []*Card {
	return p.lists[name]
}

// AddCard places a new card into the TODO list and the all-cards index.
// It reports false if a card of that name already exists.
func (p *Project) AddCard(c *Card) bool {
	if _, dup := p.cards[c.Name]; dup {
		return false
	}
	p.lists[ListTodo] = append(p.lists[ListTodo], c)
	p.cards[c.Name] = c
	p.cardOrder = append(p.cardOrder, c.Name)
	return true
}

// MoveCard moves the named card from src to dst: it is removed from the
// source list, the destination is appended to its history, and it is
// appended to the destination list. The all-cards index keeps pointing at
// the same card. It reports false if the card is not in the source list.
func (p *Project) MoveCard(name string, src, dst ListName) bool {
	idx := -1
	for i, c := range p.lists[src] {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	c := p.lists[src][idx]
	p.lists[src] = append(p.lists[src][:idx], p.lists[src][idx+1:]...)
	c.recordMove(dst)
	p.lists[dst] = append(p.lists[dst], c)
	return true
}

// AllDone reports whether every card of the project is in the DONE list.
func (p *Project) AllDone() bool {
	for _, name := range p.cardOrder {
		if p.cards[name].CurrentList() != ListDone {
			return false
		}
	}
	return true
}

// Snapshot returns a deep copy of the project.
func (p *Project) Snapshot() ProjectSnapshot {
	s := ProjectSnapshot{
		Name:     p.Name,
		Members:  append([]string(nil), p.Members...),
		ChatAddr: p.ChatAddr,
		ChatPort: p.ChatPort,
	}
	copyList := func(l ListName) []Card {
		out := make([]Card, 0, len(p.lists[l]))
		for _, c := range p.lists[l] {
			out = append(out, *c.Clone())
		}
		return out
	}
	s.Todo = copyList(ListTodo)
	s.InProgress = copyList(ListInProgress)
	s.ToBeRevised = copyList(ListToBeRevised)
	s.Done = copyList(ListDone)
	return s
}
