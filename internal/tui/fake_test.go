package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// fakeAPI is an in-memory engine.Remote that records persistence calls
type fakeAPI struct {
	mu     sync.Mutex
	lists  []*models.List
	calls  []string
	fail   error
	nextID int
}

func (f *fakeAPI) record(format string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.fail
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) HasCredential() bool { return true }

func (f *fakeAPI) GetBoardLists(ctx context.Context, boardID types.BoardID) ([]*models.List, error) {
	return f.lists, nil
}

func (f *fakeAPI) PatchCard(ctx context.Context, id types.CardID, patch remote.CardPatch) error {
	switch {
	case patch.Title != nil:
		return f.record("PATCH card %s title=%s", id, *patch.Title)
	default:
		return f.record("PATCH card %s list=%s order=%d", id, *patch.ListID, *patch.Order)
	}
}

func (f *fakeAPI) PatchList(ctx context.Context, id types.ListID, patch remote.ListPatch) error {
	if patch.Title != nil {
		return f.record("PATCH list %s title=%s", id, *patch.Title)
	}
	return f.record("PATCH list %s order=%d", id, *patch.Order)
}

func (f *fakeAPI) CreateList(ctx context.Context, in remote.NewList) (*models.List, error) {
	if err := f.record("POST list %s", in.Title); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return &models.List{ID: types.ListID(fmt.Sprintf("srv-l%d", f.nextID)), Title: in.Title, Order: in.Order, Cards: []*models.Card{}}, nil
}

func (f *fakeAPI) CreateCard(ctx context.Context, in remote.NewCard) (*models.Card, error) {
	if err := f.record("POST card %s", in.Title); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return &models.Card{ID: types.CardID(fmt.Sprintf("srv-c%d", f.nextID)), Title: in.Title, Order: in.Order, ListID: in.ListID}, nil
}

func (f *fakeAPI) DeleteList(ctx context.Context, id types.ListID) error {
	return f.record("DELETE list %s", id)
}

func (f *fakeAPI) DeleteCard(ctx context.Context, id types.CardID) error {
	return f.record("DELETE card %s", id)
}
