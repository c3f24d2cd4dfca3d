package board

import (
	"log/slog"
	"sync"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// Store owns the current Snapshot of the open board and is the only
// component allowed to replace it. Every mutator returns the snapshot that is
// current after the call; when a mutation cannot be resolved the store logs
// the defect, keeps the previous snapshot and returns it along with the error.
type Store struct {
	mu      sync.Mutex
	current *Snapshot
	logger  *slog.Logger
}

// NewStore creates a store with no board loaded
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{current: Empty, logger: logger}
}

// Snapshot returns the current snapshot
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// LoadBoard replaces the whole hierarchy with freshly fetched lists
func (s *Store) LoadBoard(boardID types.BoardID, lists []*models.List) *Snapshot {
	snap, dropped := normalize(boardID, lists)
	for _, id := range dropped {
		s.logger.Warn("duplicate card id in board data, keeping first occurrence",
			"board_id", boardID, "card_id", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	return snap
}

// Reset drops the loaded board
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Empty
}

// Update applies fn to the current snapshot as one atomic state change.
// If fn fails the current snapshot is left untouched.
func (s *Store) Update(op string, fn func(*Snapshot) (*Snapshot, error)) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if err != nil {
		s.logger.Warn("board mutation rejected", "op", op, "board_id", s.current.boardID, "error", err)
		return s.current, err
	}
	if next == nil {
		return s.current, nil
	}
	s.current = next
	return next, nil
}

// RelocateCard moves a card to targetListID at targetIndex
func (s *Store) RelocateCard(cardID types.CardID, targetListID types.ListID, targetIndex int) (*Snapshot, error) {
	return s.Update("relocate_card", func(snap *Snapshot) (*Snapshot, error) {
		return snap.RelocateCard(cardID, targetListID, targetIndex)
	})
}

// MoveList moves a list to targetIndex
func (s *Store) MoveList(listID types.ListID, targetIndex int) (*Snapshot, error) {
	return s.Update("move_list", func(snap *Snapshot) (*Snapshot, error) {
		return snap.MoveList(listID, targetIndex)
	})
}

// RenameList sets a list title
func (s *Store) RenameList(listID types.ListID, title string) (*Snapshot, error) {
	return s.Update("rename_list", func(snap *Snapshot) (*Snapshot, error) {
		return snap.RenameList(listID, title)
	})
}

// RenameCard sets a card title
func (s *Store) RenameCard(cardID types.CardID, title string) (*Snapshot, error) {
	return s.Update("rename_card", func(snap *Snapshot) (*Snapshot, error) {
		return snap.RenameCard(cardID, title)
	})
}

// DeleteList removes a list and its cards
func (s *Store) DeleteList(listID types.ListID) (*Snapshot, error) {
	return s.Update("delete_list", func(snap *Snapshot) (*Snapshot, error) {
		return snap.DeleteList(listID)
	})
}

// DeleteCard removes a card
func (s *Store) DeleteCard(cardID types.CardID) (*Snapshot, error) {
	return s.Update("delete_card", func(snap *Snapshot) (*Snapshot, error) {
		return snap.DeleteCard(cardID)
	})
}

// CreateList appends a list to the board
func (s *Store) CreateList(list *models.List) (*Snapshot, error) {
	return s.Update("create_list", func(snap *Snapshot) (*Snapshot, error) {
		return snap.InsertList(list, snap.ListCount())
	})
}

// CreateCard appends a card to a list
func (s *Store) CreateCard(card *models.Card, listID types.ListID) (*Snapshot, error) {
	return s.Update("create_card", func(snap *Snapshot) (*Snapshot, error) {
		l, _, ok := snap.List(listID)
		if !ok {
			return snap.InsertCard(card, listID, 0)
		}
		return snap.InsertCard(card, listID, len(l.Cards))
	})
}

// ReplaceList applies a server-confirmed list over a placeholder
func (s *Store) ReplaceList(placeholder types.ListID, confirmed *models.List) (*Snapshot, error) {
	return s.Update("replace_list", func(snap *Snapshot) (*Snapshot, error) {
		return snap.ReplaceList(placeholder, confirmed)
	})
}

// ReplaceCard applies a server-confirmed card over a placeholder
func (s *Store) ReplaceCard(placeholder types.CardID, confirmed *models.Card) (*Snapshot, error) {
	return s.Update("replace_card", func(snap *Snapshot) (*Snapshot, error) {
		return snap.ReplaceCard(placeholder, confirmed)
	})
}
