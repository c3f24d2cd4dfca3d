// Package reorder turns a released drag into a concrete placement: which
// container the entity ends up in and at which index. Cards within lists and
// lists within the board go through the same placement rule.
package reorder

import "github.com/thenoetrevino/dragboard/internal/ordered"

// Position is an index within a container
type Position[C comparable] struct {
	Container C
	Index     int
}

// Placement is a resolved move from one position to another
type Placement[C comparable] struct {
	From Position[C]
	To   Position[C]
}

// IsNoop reports whether the entity would land exactly where it started
func (p Placement[C]) IsNoop() bool {
	return p.From == p.To
}

// CrossContainer reports whether the entity changes container
func (p Placement[C]) CrossContainer() bool {
	return p.From.Container != p.To.Container
}

// place computes where a dragged entity lands.
//
// overIndex is the index of the sibling under the pointer inside target, or
// ordered.NotFound when the pointer is over the container itself. targetLen is
// the current length of the target container, which still includes the
// dragged entity when target is its own container.
//
// Over a sibling, the entity takes the sibling's index: within the same
// container the sibling shifts away from the entity's old slot, across
// containers the entity is inserted before the sibling. Over the container
// itself the entity always goes to the end, never the start.
func place[C comparable](from Position[C], target C, targetLen, overIndex int) Placement[C] {
	to := Position[C]{Container: target}
	switch {
	case overIndex != ordered.NotFound:
		to.Index = overIndex
	case target == from.Container:
		to.Index = targetLen - 1
	default:
		to.Index = targetLen
	}
	return Placement[C]{From: from, To: to}
}
