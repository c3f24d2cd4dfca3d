package backend

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dragboard/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates a migrated in-memory database
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

// seedBoard creates a board owned by owner with one list per row.
// Each row is the list title followed by its card titles.
func seedBoard(t *testing.T, repo *Repository, owner string, rows ...[]string) (*models.Board, []*models.List) {
	t.Helper()
	ctx := context.Background()
	board, err := repo.CreateBoard(ctx, owner, "Board")
	require.NoError(t, err)
	for i, s := range rows {
		list, err := repo.CreateList(ctx, owner, board.ID.String(), s[0], i)
		require.NoError(t, err)
		for j, title := range s[1:] {
			_, err := repo.CreateCard(ctx, owner, list.ID.String(), title, "", j)
			require.NoError(t, err)
		}
	}
	lists, err := repo.BoardLists(ctx, owner, board.ID.String())
	require.NoError(t, err)
	return board, lists
}

// cardTitles returns the card titles of each list, in order
func cardTitles(lists []*models.List) [][]string {
	out := make([][]string, 0, len(lists))
	for _, l := range lists {
		titles := make([]string, 0, len(l.Cards))
		for _, c := range l.Cards {
			titles = append(titles, c.Title)
		}
		out = append(out, titles)
	}
	return out
}

func requireDense(t *testing.T, lists []*models.List) {
	t.Helper()
	for i, l := range lists {
		require.Equal(t, i, l.Order, "list %s", l.ID)
		for j, c := range l.Cards {
			require.Equal(t, j, c.Order, "card %s", c.ID)
		}
	}
}

func testAuth(t *testing.T) *Auth {
	t.Helper()
	auth, err := NewAuth("test-secret")
	require.NoError(t, err)
	return auth
}

func mint(t *testing.T, auth *Auth, subject string) string {
	t.Helper()
	token, err := auth.Mint(subject, time.Hour)
	require.NoError(t, err)
	return token
}
