package engine

import (
	"fmt"

	"github.com/thenoetrevino/dragboard/internal/board"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/ordered"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// Undo patches replay a previous position against whatever the board looks
// like when the rollback happens, so indexes are clamped to the current
// sequence lengths.

func restoreCardPlacement(id types.CardID, listID types.ListID, index int) reconcile.Patch {
	return func(s *board.Snapshot) (*board.Snapshot, error) {
		loc, ok := s.LocateCard(id)
		if !ok {
			return s, fmt.Errorf("restore card %s: %w", id, models.ErrCardNotFound)
		}
		list, _, ok := s.List(listID)
		if !ok {
			return s, fmt.Errorf("restore card %s to %s: %w", id, listID, models.ErrListNotFound)
		}
		limit := len(list.Cards)
		if loc.ListID == listID {
			limit--
		}
		return s.RelocateCard(id, listID, ordered.Clamp(index, limit))
	}
}

func restoreListPlacement(id types.ListID, index int) reconcile.Patch {
	return func(s *board.Snapshot) (*board.Snapshot, error) {
		return s.MoveList(id, ordered.Clamp(index, s.ListCount()-1))
	}
}

func restoreList(list *models.List, index int) reconcile.Patch {
	return func(s *board.Snapshot) (*board.Snapshot, error) {
		return s.InsertList(list, ordered.Clamp(index, s.ListCount()))
	}
}

// withoutPlaceholders copies list without cards that are still being
// created. Their create requests settle against a list that no longer
// exists, so a restored placeholder would never be replaced.
func withoutPlaceholders(list *models.List) *models.List {
	cp := list.Clone()
	cp.Cards = make([]*models.Card, 0, len(list.Cards))
	for _, c := range list.Cards {
		if !c.ID.IsPlaceholder() {
			cp.Cards = append(cp.Cards, c)
		}
	}
	return cp
}

func restoreCard(card *models.Card, listID types.ListID, index int) reconcile.Patch {
	return func(s *board.Snapshot) (*board.Snapshot, error) {
		list, _, ok := s.List(listID)
		if !ok {
			return s, fmt.Errorf("restore card %s to %s: %w", card.ID, listID, models.ErrListNotFound)
		}
		return s.InsertCard(card, listID, ordered.Clamp(index, len(list.Cards)))
	}
}
