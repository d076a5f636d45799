package board

// Card is a unit of work within a project, identified by name (unique in
// its owning project). Its move history is an append-only sequence of the
// lists it has visited; the current list is always the last entry and is
// never stored separately.
type Card struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	History     []string `json:"history"`
}

// NewCard creates a card in the TODO list.
func NewCard(name, description string) *Card {
	return &Card{
		Name:        name,
		Description: description,
		History:     []string{string(ListTodo)},
	}
}

// CurrentList reports the list the card currently sits in, derived from the
// last entry of its history.
func (c *Card) CurrentList() ListName {
	return ListName(c.History[len(c.History)-1])
}

// recordMove appends the destination list to the card's history.
func (c *Card) recordMove(dst ListName) {
	c.History = append(c.History, string(dst))
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	cp := *c
	cp.History = append([]string(nil), c.History...)
	return &cp
}
