package board

import (
	"testing"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// fixture builds lists from a compact description: list id -> card ids
func fixture(rows ...[]string) []*models.List {
	lists := make([]*models.List, 0, len(rows))
	for i, s := range rows {
		l := &models.List{ID: types.ListID(s[0]), Title: "List " + s[0], Order: i}
		for j, c := range s[1:] {
			l.Cards = append(l.Cards, &models.Card{
				ID:     types.CardID(c),
				Title:  "Card " + c,
				Order:  j,
				ListID: l.ID,
			})
		}
		lists = append(lists, l)
	}
	return lists
}

// cardIDs returns the card ids of a list, in order
func cardIDs(t *testing.T, snap *Snapshot, listID string) []string {
	t.Helper()
	l, _, ok := snap.List(types.ListID(listID))
	if !ok {
		t.Fatalf("list %s not found", listID)
	}
	out := make([]string, len(l.Cards))
	for i, c := range l.Cards {
		out[i] = string(c.ID)
	}
	return out
}

func listIDs(snap *Snapshot) []string {
	out := make([]string, snap.ListCount())
	for i, l := range snap.Lists() {
		out[i] = string(l.ID)
	}
	return out
}

// assertDenseOrders checks order == index for every list and card
func assertDenseOrders(t *testing.T, snap *Snapshot) {
	t.Helper()
	for _, l := range snap.Lists() {
		for i, c := range l.Cards {
			if c.Order != i {
				t.Errorf("card %s in list %s has order %d, want %d", c.ID, l.ID, c.Order, i)
			}
			if c.ListID != l.ID {
				t.Errorf("card %s has list_id %s, but lives in %s", c.ID, c.ListID, l.ID)
			}
		}
	}
}
