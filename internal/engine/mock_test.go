package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// apiCall records one call made to the mock API
type apiCall struct {
	Method string
	ID     string
	Body   any
}

// mockAPI is a hand-written Remote for tests. Calls are recorded in order;
// failNext makes the next N calls return err.
type mockAPI struct {
	mu       sync.Mutex
	token    bool
	lists    []*models.List
	calls    []apiCall
	failErr  error
	failLeft int
	nextID   int
	// block, when set, makes every call wait until the context is done
	block bool
}

func newMockAPI(lists []*models.List) *mockAPI {
	return &mockAPI{token: true, lists: lists}
}

func (m *mockAPI) HasCredential() bool { return m.token }

func (m *mockAPI) failNext(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLeft = n
	m.failErr = err
}

func (m *mockAPI) Calls() []apiCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]apiCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockAPI) record(ctx context.Context, method, id string, body any) error {
	m.mu.Lock()
	m.calls = append(m.calls, apiCall{Method: method, ID: id, Body: body})
	block := m.block
	var err error
	if m.failLeft > 0 {
		m.failLeft--
		err = m.failErr
	}
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (m *mockAPI) GetBoardLists(ctx context.Context, boardID types.BoardID) ([]*models.List, error) {
	if err := m.record(ctx, "GetBoardLists", boardID.String(), nil); err != nil {
		return nil, err
	}
	return m.lists, nil
}

func (m *mockAPI) PatchCard(ctx context.Context, id types.CardID, patch remote.CardPatch) error {
	return m.record(ctx, "PatchCard", id.String(), patch)
}

func (m *mockAPI) PatchList(ctx context.Context, id types.ListID, patch remote.ListPatch) error {
	return m.record(ctx, "PatchList", id.String(), patch)
}

func (m *mockAPI) CreateList(ctx context.Context, in remote.NewList) (*models.List, error) {
	if err := m.record(ctx, "CreateList", "", in); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.nextID++
	id := fmt.Sprintf("srv-l%d", m.nextID)
	m.mu.Unlock()
	return &models.List{ID: types.ListID(id), Title: in.Title, Order: in.Order, BoardID: in.BoardID}, nil
}

func (m *mockAPI) CreateCard(ctx context.Context, in remote.NewCard) (*models.Card, error) {
	if err := m.record(ctx, "CreateCard", "", in); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.nextID++
	id := fmt.Sprintf("srv-c%d", m.nextID)
	m.mu.Unlock()
	return &models.Card{ID: types.CardID(id), Title: in.Title, Order: in.Order, ListID: in.ListID}, nil
}

func (m *mockAPI) DeleteList(ctx context.Context, id types.ListID) error {
	return m.record(ctx, "DeleteList", id.String(), nil)
}

func (m *mockAPI) DeleteCard(ctx context.Context, id types.CardID) error {
	return m.record(ctx, "DeleteCard", id.String(), nil)
}
