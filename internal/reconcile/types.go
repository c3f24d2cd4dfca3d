// Package reconcile sends optimistic board mutations to the remote authority
// and decides what happens to local state when they resolve. Every mutation
// gets one request; a newer mutation for the same entity supersedes the older
// one, and a failed request rolls the entity back to its last confirmed state.
package reconcile

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/dragboard/internal/board"
)

// EntityKind is the type of the mutated entity
type EntityKind int

const (
	EntityCard EntityKind = iota
	EntityList
)

func (k EntityKind) String() string {
	if k == EntityList {
		return "list"
	}
	return "card"
}

// Field is the aspect of an entity a mutation touches. Mutations of
// different fields of the same entity never supersede each other.
type Field int

const (
	// FieldPlacement covers the container and index of an entity
	FieldPlacement Field = iota
	// FieldTitle covers renames
	FieldTitle
	// FieldExistence covers creates and deletes
	FieldExistence
)

func (f Field) String() string {
	switch f {
	case FieldPlacement:
		return "placement"
	case FieldTitle:
		return "title"
	case FieldExistence:
		return "existence"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Key identifies the state a request is responsible for
type Key struct {
	Kind  EntityKind
	ID    string
	Field Field
}

func (k Key) String() string {
	return k.Kind.String() + ":" + k.ID + ":" + k.Field.String()
}

// Patch transforms a snapshot. Undo patches restore prior state, confirm
// patches apply what the server returned.
type Patch func(*board.Snapshot) (*board.Snapshot, error)

// Call performs the remote side of a mutation. It may return a patch to
// apply on success, e.g. swapping a placeholder for the server entity.
type Call func(ctx context.Context) (Patch, error)

// Mutation is an optimistic change that has already been applied locally
type Mutation struct {
	Key Key
	// Op names the operation in logs and metrics, e.g. "move_card"
	Op   string
	Call Call
	// Undo restores the state the entity had right before this mutation
	Undo Patch
}

// Outcome is how a request resolved
type Outcome int

const (
	// Confirmed means the server accepted the mutation
	Confirmed Outcome = iota
	// Failed means the request failed after all retries and the entity was rolled back
	Failed
	// Superseded means a newer mutation for the same key made this result irrelevant
	Superseded
	// Skipped means no request was sent because there is no credential
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	case Superseded:
		return "superseded"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the explicit outcome of one request
type Result struct {
	Key        Key
	Op         string
	Generation uint64
	Outcome    Outcome
	Attempts   int
	Err        error

	confirm Patch
}
