// Package drag models one pointer-drag gesture as an explicit two-state
// machine. The session never touches board state: it records what is being
// dragged and what the pointer is over, and hands both back on release.
package drag

import (
	"fmt"

	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// State is the phase of the drag session
type State int

const (
	// Idle means no gesture is active
	Idle State = iota
	// Dragging means an entity has been picked up and not yet released
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Kind is the type of entity being dragged
type Kind int

const (
	KindCard Kind = iota
	KindList
)

func (k Kind) String() string {
	if k == KindList {
		return "list"
	}
	return "card"
}

// Entity is the dragged card or list. Card and List hold the values captured
// at drag start so the overlay can keep rendering them even if the board
// changes underneath.
type Entity struct {
	Kind Kind
	// CardID is set when Kind is KindCard
	CardID types.CardID
	// ListID is the list being dragged, or the origin list of a dragged card
	ListID types.ListID
	// OriginIndex is the entity's index within its origin container
	OriginIndex int

	Card *models.Card
	List *models.List
}

// CardEntity describes a card picked up from listID at index
func CardEntity(card *models.Card, index int) Entity {
	return Entity{Kind: KindCard, CardID: card.ID, ListID: card.ListID, OriginIndex: index, Card: card}
}

// ListEntity describes a list picked up at index
func ListEntity(list *models.List, index int) Entity {
	return Entity{Kind: KindList, ListID: list.ID, OriginIndex: index, List: list}
}

// IsPlaceholder reports whether the entity was synthesized locally and has
// not been confirmed by the server yet
func (e Entity) IsPlaceholder() bool {
	if e.Kind == KindCard {
		return e.CardID.IsPlaceholder()
	}
	return e.ListID.IsPlaceholder()
}

func (e Entity) valid() bool {
	if e.Kind == KindCard {
		return e.CardID != ""
	}
	return e.ListID != ""
}

// TargetKind is what the pointer is over
type TargetKind int

const (
	// TargetNone means the pointer is outside every droppable area
	TargetNone TargetKind = iota
	// TargetCard means the pointer is over a card
	TargetCard
	// TargetList means the pointer is over a list's header or body
	TargetList
	// TargetBoard means the pointer is over the board background
	TargetBoard
)

// Target identifies the element or container under the pointer
type Target struct {
	Kind   TargetKind
	CardID types.CardID
	ListID types.ListID
}

// None is the empty target
var None = Target{}

// OverCard targets a card
func OverCard(id types.CardID) Target { return Target{Kind: TargetCard, CardID: id} }

// OverList targets a list container
func OverList(id types.ListID) Target { return Target{Kind: TargetList, ListID: id} }

// OverBoard targets the board background
func OverBoard() Target { return Target{Kind: TargetBoard} }

// IsNone reports whether the target is empty
func (t Target) IsNone() bool { return t.Kind == TargetNone }

// Drop is the outcome of a drag released over a valid target
type Drop struct {
	Active Entity
	Over   Target
}

// Session tracks at most one in-progress gesture. It is not safe for
// concurrent use; the UI loop owns it.
type Session struct {
	state  State
	active Entity
	hover  Target
}

// NewSession creates an idle session
func NewSession() *Session {
	return &Session{}
}

// State returns the current phase
func (s *Session) State() State { return s.state }

// Dragging reports whether a gesture is active
func (s *Session) Dragging() bool { return s.state == Dragging }

// Active returns the dragged entity. Only meaningful while dragging.
func (s *Session) Active() (Entity, bool) {
	return s.active, s.state == Dragging
}

// Hovered returns the current hover target
func (s *Session) Hovered() Target { return s.hover }

// Start picks up an entity. Sessions are strictly sequential: starting while
// already dragging is rejected and the active session is left untouched.
func (s *Session) Start(e Entity) error {
	if s.state == Dragging {
		return ErrAlreadyDragging
	}
	if !e.valid() {
		return ErrInvalidEntity
	}
	s.state = Dragging
	s.active = e
	s.hover = None
	return nil
}

// Hover records the target under the pointer. It reports whether the target
// changed so callers can skip redundant renders.
func (s *Session) Hover(t Target) (bool, error) {
	if s.state != Dragging {
		return false, ErrNotDragging
	}
	if s.hover == t {
		return false, nil
	}
	s.hover = t
	return true, nil
}

// End releases the entity over t and returns to Idle. The returned bool is
// false when t is empty, in which case the release is a cancel.
func (s *Session) End(t Target) (Drop, bool, error) {
	if s.state != Dragging {
		return Drop{}, false, ErrNotDragging
	}
	drop := Drop{Active: s.active, Over: t}
	s.reset()
	if t.IsNone() {
		return Drop{}, false, nil
	}
	return drop, true, nil
}

// Cancel aborts an active gesture. It reports whether a session was active.
func (s *Session) Cancel() bool {
	if s.state != Dragging {
		return false
	}
	s.reset()
	return true
}

// Discard drops any session state without producing a drop. Used when the
// board is closed mid-gesture.
func (s *Session) Discard() {
	s.reset()
}

func (s *Session) reset() {
	s.state = Idle
	s.active = Entity{}
	s.hover = None
}
