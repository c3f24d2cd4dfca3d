package reorder

import (
	"fmt"

	"github.com/thenoetrevino/dragboard/internal/board"
	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/ordered"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// CardPlan is a resolved card drop
type CardPlan struct {
	CardID types.CardID
	Placement[types.ListID]
}

// Apply performs the relocation on snap
func (p CardPlan) Apply(snap *board.Snapshot) (*board.Snapshot, error) {
	return snap.RelocateCard(p.CardID, p.To.Container, p.To.Index)
}

// ListPlan is a resolved list drop. Lists have a single container, the board.
type ListPlan struct {
	ListID types.ListID
	Placement[types.BoardID]
}

// Apply performs the reorder on snap
func (p ListPlan) Apply(snap *board.Snapshot) (*board.Snapshot, error) {
	return snap.MoveList(p.ListID, p.To.Index)
}

// PlanCard resolves where a card dropped over target lands. Everything is
// looked up in snap, never in the values captured at drag start, so a drop
// that refers to an entity deleted mid-drag fails to resolve.
func PlanCard(snap *board.Snapshot, cardID types.CardID, over drag.Target) (CardPlan, error) {
	if cardID.IsPlaceholder() {
		return CardPlan{}, fmt.Errorf("drag card %s: %w", cardID, ErrPlaceholder)
	}
	src, ok := snap.LocateCard(cardID)
	if !ok {
		return CardPlan{}, fmt.Errorf("drag card %s: %w", cardID, models.ErrCardNotFound)
	}
	from := Position[types.ListID]{Container: src.ListID, Index: src.Index}

	var (
		targetID  types.ListID
		overIndex = ordered.NotFound
	)
	switch over.Kind {
	case drag.TargetCard:
		if over.CardID.IsPlaceholder() {
			return CardPlan{}, fmt.Errorf("drop card %s over %s: %w", cardID, over.CardID, ErrPlaceholder)
		}
		loc, ok := snap.LocateCard(over.CardID)
		if !ok {
			return CardPlan{}, fmt.Errorf("drop card %s over %s: %w", cardID, over.CardID, models.ErrCardNotFound)
		}
		targetID = loc.ListID
		overIndex = loc.Index
	case drag.TargetList:
		targetID = over.ListID
	default:
		return CardPlan{}, fmt.Errorf("drop card %s: %w", cardID, ErrNoTarget)
	}

	if targetID.IsPlaceholder() {
		return CardPlan{}, fmt.Errorf("drop card %s into %s: %w", cardID, targetID, ErrPlaceholder)
	}
	target, _, ok := snap.List(targetID)
	if !ok {
		return CardPlan{}, fmt.Errorf("drop card %s into %s: %w", cardID, targetID, models.ErrListNotFound)
	}

	return CardPlan{
		CardID:    cardID,
		Placement: place(from, targetID, len(target.Cards), overIndex),
	}, nil
}

// PlanList resolves where a list dropped over target lands. Dropping over a
// card targets the card's list; dropping over the board background appends.
func PlanList(snap *board.Snapshot, listID types.ListID, over drag.Target) (ListPlan, error) {
	if listID.IsPlaceholder() {
		return ListPlan{}, fmt.Errorf("drag list %s: %w", listID, ErrPlaceholder)
	}
	_, srcIndex, ok := snap.List(listID)
	if !ok {
		return ListPlan{}, fmt.Errorf("drag list %s: %w", listID, models.ErrListNotFound)
	}
	boardID := snap.BoardID()
	from := Position[types.BoardID]{Container: boardID, Index: srcIndex}

	overIndex := ordered.NotFound
	switch over.Kind {
	case drag.TargetCard:
		loc, ok := snap.LocateCard(over.CardID)
		if !ok {
			return ListPlan{}, fmt.Errorf("drop list %s over card %s: %w", listID, over.CardID, models.ErrCardNotFound)
		}
		if loc.ListID.IsPlaceholder() {
			return ListPlan{}, fmt.Errorf("drop list %s over %s: %w", listID, loc.ListID, ErrPlaceholder)
		}
		overIndex = loc.ListIndex
	case drag.TargetList:
		if over.ListID.IsPlaceholder() {
			return ListPlan{}, fmt.Errorf("drop list %s over %s: %w", listID, over.ListID, ErrPlaceholder)
		}
		_, idx, ok := snap.List(over.ListID)
		if !ok {
			return ListPlan{}, fmt.Errorf("drop list %s over %s: %w", listID, over.ListID, models.ErrListNotFound)
		}
		overIndex = idx
	case drag.TargetBoard:
	default:
		return ListPlan{}, fmt.Errorf("drop list %s: %w", listID, ErrNoTarget)
	}

	return ListPlan{
		ListID:    listID,
		Placement: place(from, boardID, snap.ListCount(), overIndex),
	}, nil
}

// Plan is either a CardPlan or a ListPlan
type Plan interface {
	Apply(*board.Snapshot) (*board.Snapshot, error)
	IsNoop() bool
}

// PlanDrop dispatches on the dragged entity's kind
func PlanDrop(snap *board.Snapshot, d drag.Drop) (Plan, error) {
	switch d.Active.Kind {
	case drag.KindCard:
		p, err := PlanCard(snap, d.Active.CardID, d.Over)
		if err != nil {
			return nil, err
		}
		return p, nil
	case drag.KindList:
		p, err := PlanList(snap, d.Active.ListID, d.Over)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, ErrKindMismatch
	}
}
