package board

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/ordered"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// The functions in this file are pure: they never modify the receiver and
// either return a complete new snapshot or the receiver plus an error. A move
// is computed in full before the new snapshot is assembled, so a failure can
// never leave a card in two lists or in none.

// RelocateCard moves a card into targetListID at targetIndex. When the target
// is the card's own list this is a within-list reorder and targetIndex must
// address an existing slot; otherwise targetIndex may equal the target list's
// length to append. Moving a card onto its own position returns the receiver.
func (s *Snapshot) RelocateCard(cardID types.CardID, targetListID types.ListID, targetIndex int) (*Snapshot, error) {
	loc, ok := s.LocateCard(cardID)
	if !ok {
		return s, fmt.Errorf("relocate card %s: %w", cardID, models.ErrCardNotFound)
	}
	target, targetListIdx, ok := s.List(targetListID)
	if !ok {
		return s, fmt.Errorf("relocate card %s to list %s: %w", cardID, targetListID, models.ErrListNotFound)
	}
	source := s.lists[loc.ListIndex]

	if loc.ListIndex == targetListIdx {
		if loc.Index == targetIndex {
			return s, nil
		}
		cards, err := ordered.MoveWithin(source.Cards, loc.Index, targetIndex)
		if err != nil {
			return s, fmt.Errorf("reorder card %s: %w", cardID, models.ErrIndexOutOfRange)
		}
		return s.withList(loc.ListIndex, listWithCards(source, cards))
	}

	remaining, card, err := ordered.RemoveAt(source.Cards, loc.Index)
	if err != nil {
		return s, fmt.Errorf("remove card %s: %w", cardID, models.ErrIndexOutOfRange)
	}
	moved := card.Clone()
	moved.ListID = target.ID
	inserted, err := ordered.InsertAt(target.Cards, targetIndex, moved)
	if err != nil {
		return s, fmt.Errorf("insert card %s into %s: %w", cardID, targetListID, models.ErrIndexOutOfRange)
	}

	lists := make([]*models.List, len(s.lists))
	copy(lists, s.lists)
	lists[loc.ListIndex] = listWithCards(source, remaining)
	lists[targetListIdx] = listWithCards(target, inserted)
	return s.withLists(lists), nil
}

// MoveList reorders a list within the board
func (s *Snapshot) MoveList(listID types.ListID, targetIndex int) (*Snapshot, error) {
	_, idx, ok := s.List(listID)
	if !ok {
		return s, fmt.Errorf("move list %s: %w", listID, models.ErrListNotFound)
	}
	if idx == targetIndex {
		return s, nil
	}
	lists, err := ordered.MoveWithin(s.lists, idx, targetIndex)
	if err != nil {
		return s, fmt.Errorf("move list %s: %w", listID, models.ErrIndexOutOfRange)
	}
	return s.withLists(ordered.Renumber(lists, listOrder, listWithOrder)), nil
}

// RenameList changes a list title
func (s *Snapshot) RenameList(listID types.ListID, title string) (*Snapshot, error) {
	title, err := validTitle(title)
	if err != nil {
		return s, err
	}
	l, idx, ok := s.List(listID)
	if !ok {
		return s, fmt.Errorf("rename list %s: %w", listID, models.ErrListNotFound)
	}
	if l.Title == title {
		return s, nil
	}
	cp := l.Clone()
	cp.Title = title
	return s.withList(idx, cp)
}

// RenameCard changes a card title
func (s *Snapshot) RenameCard(cardID types.CardID, title string) (*Snapshot, error) {
	title, err := validTitle(title)
	if err != nil {
		return s, err
	}
	loc, ok := s.LocateCard(cardID)
	if !ok {
		return s, fmt.Errorf("rename card %s: %w", cardID, models.ErrCardNotFound)
	}
	l := s.lists[loc.ListIndex]
	c := l.Cards[loc.Index]
	if c.Title == title {
		return s, nil
	}
	renamed := c.Clone()
	renamed.Title = title
	cards, err := ordered.ReplaceAt(l.Cards, loc.Index, renamed)
	if err != nil {
		return s, err
	}
	cp := l.Clone()
	cp.Cards = cards
	return s.withList(loc.ListIndex, cp)
}

// DeleteList removes a list and, with it, all of its cards
func (s *Snapshot) DeleteList(listID types.ListID) (*Snapshot, error) {
	_, idx, ok := s.List(listID)
	if !ok {
		return s, fmt.Errorf("delete list %s: %w", listID, models.ErrListNotFound)
	}
	lists, _, err := ordered.RemoveAt(s.lists, idx)
	if err != nil {
		return s, err
	}
	return s.withLists(ordered.Renumber(lists, listOrder, listWithOrder)), nil
}

// DeleteCard removes a single card
func (s *Snapshot) DeleteCard(cardID types.CardID) (*Snapshot, error) {
	loc, ok := s.LocateCard(cardID)
	if !ok {
		return s, fmt.Errorf("delete card %s: %w", cardID, models.ErrCardNotFound)
	}
	l := s.lists[loc.ListIndex]
	cards, _, err := ordered.RemoveAt(l.Cards, loc.Index)
	if err != nil {
		return s, err
	}
	return s.withList(loc.ListIndex, listWithCards(l, cards))
}

// InsertList adds a list (with any cards it carries) at index. index may
// equal ListCount to append.
func (s *Snapshot) InsertList(list *models.List, index int) (*Snapshot, error) {
	if list == nil {
		return s, fmt.Errorf("insert list: %w", models.ErrListNotFound)
	}
	if _, err := validTitle(list.Title); err != nil {
		return s, err
	}
	if _, _, exists := s.List(list.ID); exists {
		return s, fmt.Errorf("insert list %s: %w", list.ID, models.ErrDuplicateID)
	}
	for _, c := range list.Cards {
		if _, exists := s.LocateCard(c.ID); exists {
			return s, fmt.Errorf("insert list %s with card %s: %w", list.ID, c.ID, models.ErrDuplicateID)
		}
	}

	l := list.Clone()
	l.BoardID = s.boardID
	cards := make([]*models.Card, len(list.Cards))
	for i, c := range list.Cards {
		cp := c.Clone()
		cp.ListID = l.ID
		cards[i] = cp
	}
	l = listWithCards(l, cards)

	lists, err := ordered.InsertAt(s.lists, index, l)
	if err != nil {
		return s, fmt.Errorf("insert list %s: %w", list.ID, models.ErrIndexOutOfRange)
	}
	return s.withLists(ordered.Renumber(lists, listOrder, listWithOrder)), nil
}

// InsertCard adds a card to listID at index. index may equal the list's
// card count to append.
func (s *Snapshot) InsertCard(card *models.Card, listID types.ListID, index int) (*Snapshot, error) {
	if card == nil {
		return s, fmt.Errorf("insert card: %w", models.ErrCardNotFound)
	}
	if _, err := validTitle(card.Title); err != nil {
		return s, err
	}
	if _, exists := s.LocateCard(card.ID); exists {
		return s, fmt.Errorf("insert card %s: %w", card.ID, models.ErrDuplicateID)
	}
	l, idx, ok := s.List(listID)
	if !ok {
		return s, fmt.Errorf("insert card %s into %s: %w", card.ID, listID, models.ErrListNotFound)
	}
	c := card.Clone()
	c.ListID = l.ID
	cards, err := ordered.InsertAt(l.Cards, index, c)
	if err != nil {
		return s, fmt.Errorf("insert card %s into %s: %w", card.ID, listID, models.ErrIndexOutOfRange)
	}
	return s.withList(idx, listWithCards(l, cards))
}

// ReplaceList swaps the list identified by oldID for confirmed, keeping its
// position and its cards. Used to apply a server-confirmed entity over a
// locally synthesized placeholder.
func (s *Snapshot) ReplaceList(oldID types.ListID, confirmed *models.List) (*Snapshot, error) {
	old, idx, ok := s.List(oldID)
	if !ok {
		return s, fmt.Errorf("replace list %s: %w", oldID, models.ErrListNotFound)
	}
	if confirmed.ID != oldID {
		if _, _, exists := s.List(confirmed.ID); exists {
			return s, fmt.Errorf("replace list %s with %s: %w", oldID, confirmed.ID, models.ErrDuplicateID)
		}
	}
	l := confirmed.Clone()
	l.BoardID = s.boardID
	l.Order = old.Order
	cards := make([]*models.Card, len(old.Cards))
	for i, c := range old.Cards {
		if c.ListID == l.ID {
			cards[i] = c
			continue
		}
		cp := c.Clone()
		cp.ListID = l.ID
		cards[i] = cp
	}
	l.Cards = cards
	return s.withList(idx, l)
}

// ReplaceCard swaps the card identified by oldID for confirmed, keeping its
// list and position.
func (s *Snapshot) ReplaceCard(oldID types.CardID, confirmed *models.Card) (*Snapshot, error) {
	loc, ok := s.LocateCard(oldID)
	if !ok {
		return s, fmt.Errorf("replace card %s: %w", oldID, models.ErrCardNotFound)
	}
	if confirmed.ID != oldID {
		if _, exists := s.LocateCard(confirmed.ID); exists {
			return s, fmt.Errorf("replace card %s with %s: %w", oldID, confirmed.ID, models.ErrDuplicateID)
		}
	}
	l := s.lists[loc.ListIndex]
	c := confirmed.Clone()
	c.ListID = l.ID
	c.Order = loc.Index
	cards, err := ordered.ReplaceAt(l.Cards, loc.Index, c)
	if err != nil {
		return s, err
	}
	cp := l.Clone()
	cp.Cards = cards
	return s.withList(loc.ListIndex, cp)
}

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", models.ErrEmptyTitle
	}
	if len(title) > models.MaxTitleLength {
		return "", models.ErrTitleTooLong
	}
	return title, nil
}
