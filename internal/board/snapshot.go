// Package board holds the in-memory hierarchy of the open board: its lists
// and their cards. A Snapshot is immutable; every mutation produces a new
// Snapshot that shares all untouched lists and cards with its predecessor.
package board

import (
	"sort"
	"sync"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/ordered"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// CardLocation describes where a card currently lives
type CardLocation struct {
	ListID    types.ListID
	ListIndex int
	Index     int
}

// Snapshot is one immutable version of the board hierarchy.
// Callers must treat the returned lists and cards as read-only.
type Snapshot struct {
	boardID types.BoardID
	lists   []*models.List

	indexOnce sync.Once
	cardIndex map[types.CardID]CardLocation
}

// Empty is the snapshot of a store with no board loaded
var Empty = &Snapshot{}

func newSnapshot(boardID types.BoardID, lists []*models.List) *Snapshot {
	return &Snapshot{boardID: boardID, lists: lists}
}

// BoardID returns the id of the board this snapshot belongs to
func (s *Snapshot) BoardID() types.BoardID {
	return s.boardID
}

// Lists returns the ordered lists. The slice must not be modified.
func (s *Snapshot) Lists() []*models.List {
	return s.lists
}

// ListCount returns the number of lists on the board
func (s *Snapshot) ListCount() int {
	return len(s.lists)
}

// CardCount returns the number of cards across all lists
func (s *Snapshot) CardCount() int {
	total := 0
	for _, l := range s.lists {
		total += len(l.Cards)
	}
	return total
}

// List returns the list with the given id and its index
func (s *Snapshot) List(id types.ListID) (*models.List, int, bool) {
	idx := ordered.IndexOf(s.lists, id)
	if idx == ordered.NotFound {
		return nil, ordered.NotFound, false
	}
	return s.lists[idx], idx, true
}

// ListAt returns the list at index i, or nil when i is out of range
func (s *Snapshot) ListAt(i int) *models.List {
	if i < 0 || i >= len(s.lists) {
		return nil
	}
	return s.lists[i]
}

// LocateCard returns the current location of a card
func (s *Snapshot) LocateCard(id types.CardID) (CardLocation, bool) {
	s.indexOnce.Do(s.buildIndex)
	loc, ok := s.cardIndex[id]
	return loc, ok
}

// Card returns the card with the given id
func (s *Snapshot) Card(id types.CardID) (*models.Card, bool) {
	loc, ok := s.LocateCard(id)
	if !ok {
		return nil, false
	}
	return s.lists[loc.ListIndex].Cards[loc.Index], true
}

func (s *Snapshot) buildIndex() {
	s.cardIndex = make(map[types.CardID]CardLocation, s.CardCount())
	for li, l := range s.lists {
		for ci, c := range l.Cards {
			s.cardIndex[c.ID] = CardLocation{ListID: l.ID, ListIndex: li, Index: ci}
		}
	}
}

// normalize builds a snapshot from server data: lists and cards are sorted by
// order (stable, so ties keep their array position), each card's ListID is
// forced to its owning list and duplicate card ids are dropped.
func normalize(boardID types.BoardID, in []*models.List) (*Snapshot, []types.CardID) {
	lists := make([]*models.List, 0, len(in))
	seen := make(map[types.CardID]bool)
	seenLists := make(map[types.ListID]bool)
	var dropped []types.CardID

	for _, src := range in {
		if src == nil || seenLists[src.ID] {
			continue
		}
		seenLists[src.ID] = true

		l := src.Clone()
		if l.BoardID == "" {
			l.BoardID = boardID
		}
		cards := make([]*models.Card, 0, len(src.Cards))
		for _, c := range src.Cards {
			if c == nil {
				continue
			}
			if seen[c.ID] {
				dropped = append(dropped, c.ID)
				continue
			}
			seen[c.ID] = true
			cp := c.Clone()
			cp.ListID = l.ID
			cards = append(cards, cp)
		}
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Order < cards[j].Order })
		l.Cards = cards
		lists = append(lists, l)
	}
	sort.SliceStable(lists, func(i, j int) bool { return lists[i].Order < lists[j].Order })

	return newSnapshot(boardID, lists), dropped
}

// withList returns a snapshot whose list at index i is replaced by l
func (s *Snapshot) withList(i int, l *models.List) (*Snapshot, error) {
	lists, err := ordered.ReplaceAt(s.lists, i, l)
	if err != nil {
		return s, err
	}
	return newSnapshot(s.boardID, lists), nil
}

// withLists returns a snapshot with a whole new list sequence
func (s *Snapshot) withLists(lists []*models.List) *Snapshot {
	return newSnapshot(s.boardID, lists)
}

func cardOrder(c *models.Card) int { return c.Order }

func cardWithOrder(c *models.Card, order int) *models.Card {
	cp := c.Clone()
	cp.Order = order
	return cp
}

func listOrder(l *models.List) int { return l.Order }

func listWithOrder(l *models.List, order int) *models.List {
	cp := l.Clone()
	cp.Order = order
	return cp
}

// listWithCards builds a new list value holding cards, renumbered densely
func listWithCards(l *models.List, cards []*models.Card) *models.List {
	cp := l.Clone()
	cp.Cards = ordered.Renumber(cards, cardOrder, cardWithOrder)
	return cp
}
