package types

import "strings"

// ID types give the string identifiers handed out by the board API a domain
// meaning. Ids are opaque: the engine never parses them.

// BoardID identifies a board
type BoardID string

// ListID identifies a list within a board
type ListID string

// CardID identifies a card. Card ids are unique across a whole board.
type CardID string

// PlaceholderPrefix marks ids synthesized locally for entities that the
// server has not confirmed yet.
const PlaceholderPrefix = "tmp-"

func (id BoardID) String() string { return string(id) }
func (id ListID) String() string  { return string(id) }
func (id CardID) String() string  { return string(id) }

// IsPlaceholder reports whether the list id was synthesized locally
func (id ListID) IsPlaceholder() bool {
	return strings.HasPrefix(string(id), PlaceholderPrefix)
}

// IsPlaceholder reports whether the card id was synthesized locally
func (id CardID) IsPlaceholder() bool {
	return strings.HasPrefix(string(id), PlaceholderPrefix)
}
