package board

import (
	"errors"
	"testing"

	"github.com/thenoetrevino/dragboard/internal/models"
)

func TestStore_LoadAndReset(t *testing.T) {
	s := NewStore(nil)
	if s.Snapshot() != Empty {
		t.Fatal("Expected new store to hold the empty snapshot")
	}

	snap := s.LoadBoard("b1", fixture([]string{"l1", "a"}, []string{"l2", "a"}))
	if snap.BoardID() != "b1" {
		t.Errorf("Expected board b1, got %s", snap.BoardID())
	}
	if snap.CardCount() != 1 {
		t.Errorf("Expected duplicate card to be dropped, got %d cards", snap.CardCount())
	}

	s.Reset()
	if s.Snapshot().ListCount() != 0 {
		t.Error("Expected reset store to have no lists")
	}
}

func TestStore_FailedMutationKeepsState(t *testing.T) {
	s := NewStore(nil)
	before := s.LoadBoard("b1", fixture([]string{"l1", "a"}))

	after, err := s.RelocateCard("missing", "l1", 0)
	if !errors.Is(err, models.ErrCardNotFound) {
		t.Fatalf("Expected ErrCardNotFound, got %v", err)
	}
	if after != before || s.Snapshot() != before {
		t.Error("Expected failed mutation to keep the current snapshot")
	}
}

func TestStore_CreateAppends(t *testing.T) {
	s := NewStore(nil)
	s.LoadBoard("b1", fixture([]string{"l1", "a"}))

	if _, err := s.CreateCard(&models.Card{ID: "tmp-c", Title: "new"}, "l1"); err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	snap, err := s.CreateList(&models.List{ID: "tmp-l", Title: "Later"})
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	if got := cardIDs(t, snap, "l1"); len(got) != 2 || got[1] != "tmp-c" {
		t.Errorf("Expected placeholder card appended, got %v", got)
	}
	if got := listIDs(snap); len(got) != 2 || got[1] != "tmp-l" {
		t.Errorf("Expected placeholder list appended, got %v", got)
	}

	if _, err := s.CreateCard(&models.Card{ID: "tmp-d", Title: "x"}, "nope"); !errors.Is(err, models.ErrListNotFound) {
		t.Errorf("Expected ErrListNotFound, got %v", err)
	}
}

func TestStore_UpdateNilKeepsState(t *testing.T) {
	s := NewStore(nil)
	before := s.LoadBoard("b1", fixture([]string{"l1"}))

	got, err := s.Update("noop", func(*Snapshot) (*Snapshot, error) { return nil, nil })
	if err != nil || got != before {
		t.Errorf("Expected nil result to keep snapshot, err=%v", err)
	}
}
