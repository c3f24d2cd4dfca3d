package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thenoetrevino/dragboard/internal/backend"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// TestOwner is the subject of tokens minted by StartBackend
const TestOwner = "tester"

// Backend is a reference board API running on an in-memory database
type Backend struct {
	URL   string
	Token string
	Repo  *backend.Repository
}

// StartBackend serves the board API from an httptest server. Everything is
// torn down by t.Cleanup.
func StartBackend(t *testing.T) *Backend {
	t.Helper()

	db, err := backend.OpenDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	auth, err := backend.NewAuth("test-secret")
	if err != nil {
		t.Fatalf("Failed to create auth: %v", err)
	}
	token, err := auth.Mint(TestOwner, time.Hour)
	if err != nil {
		t.Fatalf("Failed to mint token: %v", err)
	}

	repo := backend.NewRepository(db)
	srv := httptest.NewServer(backend.NewServer(repo, auth, nil, nil).Handler())
	t.Cleanup(srv.Close)

	return &Backend{URL: srv.URL, Token: token, Repo: repo}
}

// SeedBoard creates a board with one list per row. Each row is the
// list title followed by its card titles. It returns the board id and the
// lists as stored.
func (b *Backend) SeedBoard(t *testing.T, rows ...[]string) (types.BoardID, []*models.List) {
	t.Helper()
	ctx := context.Background()

	board, err := b.Repo.CreateBoard(ctx, TestOwner, "Test Board")
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}
	for i, s := range rows {
		list, err := b.Repo.CreateList(ctx, TestOwner, board.ID.String(), s[0], i)
		if err != nil {
			t.Fatalf("Failed to create list %q: %v", s[0], err)
		}
		for j, title := range s[1:] {
			if _, err := b.Repo.CreateCard(ctx, TestOwner, list.ID.String(), title, "", j); err != nil {
				t.Fatalf("Failed to create card %q: %v", title, err)
			}
		}
	}
	return board.ID, b.Lists(t, board.ID)
}

// Lists returns the stored lists of a board
func (b *Backend) Lists(t *testing.T, boardID types.BoardID) []*models.List {
	t.Helper()
	lists, err := b.Repo.BoardLists(context.Background(), TestOwner, boardID.String())
	if err != nil {
		t.Fatalf("Failed to load board %s: %v", boardID, err)
	}
	return lists
}

// Titles renders lists as their title followed by card titles
func Titles(lists []*models.List) [][]string {
	out := make([][]string, 0, len(lists))
	for _, l := range lists {
		row := []string{l.Title}
		for _, c := range l.Cards {
			row = append(row, c.Title)
		}
		out = append(out, row)
	}
	return out
}
