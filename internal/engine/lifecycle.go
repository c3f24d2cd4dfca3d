package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/dragboard/internal/board"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// The lifecycle operations below return user-facing errors (empty titles,
// unconfirmed entities, no credential) because they come from explicit
// commands rather than gestures. Like drops, each applies its mutation
// before returning and hands back the request that persists it.

// CreateList appends a placeholder list and returns the request that creates
// it on the server. Without a credential nothing is created.
func (e *Engine) CreateList(title string) (*reconcile.Request, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.ErrEmptyTitle
	}
	if e.api == nil || !e.api.HasCredential() {
		return nil, remote.ErrNoCredential
	}
	snap := e.store.Snapshot()
	if snap.BoardID() == "" {
		return nil, ErrNoBoard
	}

	order := models.FirstOrder
	if lists := snap.Lists(); len(lists) > 0 {
		highest := lists[0].Order
		for _, l := range lists[1:] {
			highest = max(highest, l.Order)
		}
		order = highest + 1
	}

	tmpID := types.ListID(types.PlaceholderPrefix + e.newID())
	if _, err := e.store.CreateList(&models.List{ID: tmpID, Title: title, Order: order}); err != nil {
		return nil, err
	}

	boardID := snap.BoardID()
	return e.reconciler.Submit(reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityList, ID: tmpID.String(), Field: reconcile.FieldExistence},
		Op:  "create_list",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			created, err := e.api.CreateList(ctx, remote.NewList{Title: title, BoardID: boardID, Order: order})
			if err != nil {
				return nil, err
			}
			return func(s *board.Snapshot) (*board.Snapshot, error) {
				return s.ReplaceList(tmpID, created)
			}, nil
		},
		Undo: func(s *board.Snapshot) (*board.Snapshot, error) {
			return s.DeleteList(tmpID)
		},
	}), nil
}

// CreateCard appends a placeholder card to listID and returns the request
// that creates it on the server
func (e *Engine) CreateCard(listID types.ListID, title string) (*reconcile.Request, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, models.ErrEmptyTitle
	}
	if e.api == nil || !e.api.HasCredential() {
		return nil, remote.ErrNoCredential
	}
	if listID.IsPlaceholder() {
		return nil, fmt.Errorf("add card to list %s: %w", listID, ErrNotConfirmed)
	}
	list, _, ok := e.store.Snapshot().List(listID)
	if !ok {
		return nil, fmt.Errorf("add card to list %s: %w", listID, models.ErrListNotFound)
	}

	order := len(list.Cards)
	tmpID := types.CardID(types.PlaceholderPrefix + e.newID())
	if _, err := e.store.CreateCard(&models.Card{ID: tmpID, Title: title, Order: order}, listID); err != nil {
		return nil, err
	}

	return e.reconciler.Submit(reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityCard, ID: tmpID.String(), Field: reconcile.FieldExistence},
		Op:  "create_card",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			created, err := e.api.CreateCard(ctx, remote.NewCard{Title: title, ListID: listID, Order: order})
			if err != nil {
				return nil, err
			}
			return func(s *board.Snapshot) (*board.Snapshot, error) {
				return s.ReplaceCard(tmpID, created)
			}, nil
		},
		Undo: func(s *board.Snapshot) (*board.Snapshot, error) {
			return s.DeleteCard(tmpID)
		},
	}), nil
}

// RenameList changes a list title. A rename to the current title returns a
// nil request.
func (e *Engine) RenameList(id types.ListID, title string) (*reconcile.Request, error) {
	if id.IsPlaceholder() {
		return nil, fmt.Errorf("rename list %s: %w", id, ErrNotConfirmed)
	}
	before := e.store.Snapshot()
	list, _, ok := before.List(id)
	if !ok {
		return nil, fmt.Errorf("rename list %s: %w", id, models.ErrListNotFound)
	}
	prev := list.Title

	after, err := e.store.RenameList(id, title)
	if err != nil {
		return nil, err
	}
	if after == before {
		return nil, nil
	}
	renamed, _, _ := after.List(id)
	newTitle := renamed.Title

	return e.reconciler.Submit(reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityList, ID: id.String(), Field: reconcile.FieldTitle},
		Op:  "rename_list",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			return nil, e.api.PatchList(ctx, id, remote.ListPatch{Title: &newTitle})
		},
		Undo: func(s *board.Snapshot) (*board.Snapshot, error) {
			return s.RenameList(id, prev)
		},
	}), nil
}

// RenameCard changes a card title
func (e *Engine) RenameCard(id types.CardID, title string) (*reconcile.Request, error) {
	if id.IsPlaceholder() {
		return nil, fmt.Errorf("rename card %s: %w", id, ErrNotConfirmed)
	}
	before := e.store.Snapshot()
	card, ok := before.Card(id)
	if !ok {
		return nil, fmt.Errorf("rename card %s: %w", id, models.ErrCardNotFound)
	}
	prev := card.Title

	after, err := e.store.RenameCard(id, title)
	if err != nil {
		return nil, err
	}
	if after == before {
		return nil, nil
	}
	renamed, _ := after.Card(id)
	newTitle := renamed.Title

	return e.reconciler.Submit(reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityCard, ID: id.String(), Field: reconcile.FieldTitle},
		Op:  "rename_card",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			return nil, e.api.PatchCard(ctx, id, remote.CardPatch{Title: &newTitle})
		},
		Undo: func(s *board.Snapshot) (*board.Snapshot, error) {
			return s.RenameCard(id, prev)
		},
	}), nil
}

// DeleteList removes a list and its cards. A failed delete puts the list
// back, with its cards, at its previous index.
func (e *Engine) DeleteList(id types.ListID) (*reconcile.Request, error) {
	if id.IsPlaceholder() {
		return nil, fmt.Errorf("delete list %s: %w", id, ErrNotConfirmed)
	}
	list, idx, ok := e.store.Snapshot().List(id)
	if !ok {
		return nil, fmt.Errorf("delete list %s: %w", id, models.ErrListNotFound)
	}
	if _, err := e.store.DeleteList(id); err != nil {
		return nil, err
	}

	return e.reconciler.Submit(reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityList, ID: id.String(), Field: reconcile.FieldExistence},
		Op:  "delete_list",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			return nil, e.api.DeleteList(ctx, id)
		},
		Undo: restoreList(withoutPlaceholders(list), idx),
	}), nil
}

// DeleteCard removes a card
func (e *Engine) DeleteCard(id types.CardID) (*reconcile.Request, error) {
	if id.IsPlaceholder() {
		return nil, fmt.Errorf("delete card %s: %w", id, ErrNotConfirmed)
	}
	snap := e.store.Snapshot()
	loc, ok := snap.LocateCard(id)
	if !ok {
		return nil, fmt.Errorf("delete card %s: %w", id, models.ErrCardNotFound)
	}
	card, _ := snap.Card(id)
	if _, err := e.store.DeleteCard(id); err != nil {
		return nil, err
	}

	return e.reconciler.Submit(reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityCard, ID: id.String(), Field: reconcile.FieldExistence},
		Op:  "delete_card",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			return nil, e.api.DeleteCard(ctx, id)
		},
		Undo: restoreCard(card, loc.ListID, loc.Index),
	}), nil
}
