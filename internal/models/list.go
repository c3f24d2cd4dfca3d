package models

import "github.com/thenoetrevino/dragboard/internal/types"

// List is an ordered column of cards within a board.
// Lists are treated as immutable values once they are part of a board
// snapshot: mutators build a new List instead of editing one in place.
type List struct {
	ID      types.ListID  `json:"id"`
	Title   string        `json:"title"`
	Order   int           `json:"order"`
	BoardID types.BoardID `json:"board_id,omitempty"`
	Cards   []*Card       `json:"cards"`
}

// Key returns the list id. Used by the ordered collection helpers.
func (l *List) Key() types.ListID {
	return l.ID
}

// CardCount returns the number of cards in the list
func (l *List) CardCount() int {
	if l == nil {
		return 0
	}
	return len(l.Cards)
}

// Clone returns a shallow copy of the list. The card slice header is copied
// but the backing array is shared; callers replacing cards must allocate.
func (l *List) Clone() *List {
	c := *l
	return &c
}
