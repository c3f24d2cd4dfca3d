package backend_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dragboard/internal/backend"
	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// layout renders lists as title followed by card titles, for comparison
func layout(lists []*models.List) [][]string {
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

func drain(t *testing.T, r *engine.Runner) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	results, err := r.Drain(ctx)
	require.NoError(t, err)
	for _, res := range results {
		require.Equal(t, reconcile.Confirmed, res.Outcome, "%s: %v", res.Op, res.Err)
	}
}

func TestEngineAgainstBackend(t *testing.T) {
	ctx := context.Background()

	db, err := backend.OpenDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth, err := backend.NewAuth("integration-secret")
	require.NoError(t, err)
	token, err := auth.Mint("alice", time.Hour)
	require.NoError(t, err)

	srv := httptest.NewServer(backend.NewServer(backend.NewRepository(db), auth, nil, nil).Handler())
	t.Cleanup(srv.Close)

	client := remote.NewClient(srv.URL, token)
	created, err := client.CreateBoard(ctx, "Sprint")
	require.NoError(t, err)

	e := engine.New(client, engine.WithPolicy(reconcile.Policy{Timeout: 2 * time.Second, MaxRetries: 1, RetryBaseDelay: time.Millisecond}))
	require.NoError(t, e.Load(ctx, created.ID))
	r := engine.NewRunner(ctx, e)
	t.Cleanup(r.Close)

	for _, title := range []string{"Todo", "Done"} {
		req, err := e.CreateList(title)
		require.NoError(t, err)
		r.Go(req)
		drain(t, r)
	}
	todo := e.Snapshot().ListAt(0).ID
	done := e.Snapshot().ListAt(1).ID
	assert.False(t, todo.IsPlaceholder())

	for _, title := range []string{"A", "B", "C"} {
		req, err := e.CreateCard(todo, title)
		require.NoError(t, err)
		r.Go(req)
		drain(t, r)
	}

	cardID := func(title string) types.CardID {
		for _, l := range e.Snapshot().Lists() {
			for _, c := range l.Cards {
				if c.Title == title {
					return c.ID
				}
			}
		}
		t.Fatalf("card %q not found", title)
		return ""
	}

	// C over A: [C A B]
	require.True(t, e.DragStartCard(cardID("C")))
	r.Go(e.DragEnd(drag.OverCard(cardID("A"))))
	// B into the empty list
	require.True(t, e.DragStartCard(cardID("B")))
	r.Go(e.DragEnd(drag.OverList(done)))
	// Done before Todo
	require.True(t, e.DragStartList(done))
	r.Go(e.DragEnd(drag.OverList(todo)))
	drain(t, r)

	want := [][]string{{"Done", "B"}, {"Todo", "C", "A"}}
	assert.Equal(t, want, layout(e.Snapshot().Lists()))

	server, err := client.GetBoardLists(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(layout(e.Snapshot().Lists()), layout(server)); diff != "" {
		t.Errorf("server diverged from local board (-local +server):\n%s", diff)
	}
	for i, l := range server {
		assert.Equal(t, i, l.Order)
		for j, c := range l.Cards {
			assert.Equal(t, j, c.Order)
		}
	}
}
