package models

import "github.com/thenoetrevino/dragboard/internal/types"

// Card is the atomic task unit, owned by exactly one list at a time
type Card struct {
	ID          types.CardID `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Order       int          `json:"order"`
	ListID      types.ListID `json:"list_id"`
}

// Key returns the card id. Used by the ordered collection helpers.
func (c *Card) Key() types.CardID {
	return c.ID
}

// Clone returns a copy of the card
func (c *Card) Clone() *Card {
	cp := *c
	return &cp
}
