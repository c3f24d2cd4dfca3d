// Package engine coordinates the drag-and-drop board: it owns the board
// store, the drag session and the reconciler, turns gestures into optimistic
// mutations and hands back the persistence work as requests.
//
// Every Engine method must be called from a single goroutine (the UI loop).
// Requests returned by the engine may be performed on any goroutine, but
// their results must be passed back through Settle on the loop goroutine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thenoetrevino/dragboard/internal/board"
	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/reorder"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// Remote is the board API as seen by the engine. *remote.Client satisfies it.
type Remote interface {
	HasCredential() bool
	GetBoardLists(ctx context.Context, boardID types.BoardID) ([]*models.List, error)
	PatchCard(ctx context.Context, id types.CardID, patch remote.CardPatch) error
	PatchList(ctx context.Context, id types.ListID, patch remote.ListPatch) error
	CreateList(ctx context.Context, in remote.NewList) (*models.List, error)
	CreateCard(ctx context.Context, in remote.NewCard) (*models.Card, error)
	DeleteList(ctx context.Context, id types.ListID) error
	DeleteCard(ctx context.Context, id types.CardID) error
}

// Engine is the board coordinator
type Engine struct {
	api        Remote
	store      *board.Store
	session    *drag.Session
	reconciler *reconcile.Reconciler
	notes      *Notifications
	logger     *slog.Logger
	newID      func() string
}

// Option configures an Engine
type Option func(*engineConfig)

type engineConfig struct {
	logger  *slog.Logger
	policy  reconcile.Policy
	metrics *reconcile.Metrics
	newID   func() string
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) { c.logger = l }
}

// WithPolicy sets the persistence timeout and retry policy
func WithPolicy(p reconcile.Policy) Option {
	return func(c *engineConfig) { c.policy = p }
}

// WithMetrics sets the reconciler metrics
func WithMetrics(m *reconcile.Metrics) Option {
	return func(c *engineConfig) { c.metrics = m }
}

// WithIDGenerator replaces the placeholder id source
func WithIDGenerator(fn func() string) Option {
	return func(c *engineConfig) { c.newID = fn }
}

// New creates an engine with no board open
func New(api Remote, opts ...Option) *Engine {
	cfg := engineConfig{
		logger: slog.Default(),
		policy: reconcile.DefaultPolicy(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	store := board.NewStore(cfg.logger)
	return &Engine{
		api:     api,
		store:   store,
		session: drag.NewSession(),
		reconciler: reconcile.New(store, api,
			reconcile.WithPolicy(cfg.policy),
			reconcile.WithLogger(cfg.logger),
			reconcile.WithMetrics(cfg.metrics)),
		notes:  newNotifications(),
		logger: cfg.logger,
		newID:  cfg.newID,
	}
}

// Snapshot returns the current board state
func (e *Engine) Snapshot() *board.Snapshot {
	return e.store.Snapshot()
}

// Session returns the drag session for rendering the overlay and hover state
func (e *Engine) Session() *drag.Session {
	return e.session
}

// Notifications returns the user notification queue
func (e *Engine) Notifications() *Notifications {
	return e.notes
}

// Pending returns the number of entities with an unconfirmed mutation
func (e *Engine) Pending() int {
	return e.reconciler.Pending()
}

// ============================================================================
// BOARD LIFECYCLE
// ============================================================================

// Fetch loads a board's lists from the API. It does not touch engine state
// and may run on any goroutine.
func (e *Engine) Fetch(ctx context.Context, boardID types.BoardID) ([]*models.List, error) {
	lists, err := e.api.GetBoardLists(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("fetch board %s: %w", boardID, err)
	}
	return lists, nil
}

// Open replaces the in-memory board with lists. It must not be called while
// a drag is active.
func (e *Engine) Open(boardID types.BoardID, lists []*models.List) error {
	if e.session.Dragging() {
		return ErrDragInProgress
	}
	e.reconciler.CancelAll()
	snap := e.store.LoadBoard(boardID, lists)
	e.logger.Info("board opened", "board_id", boardID, "lists", snap.ListCount(), "cards", snap.CardCount())
	return nil
}

// Load fetches and opens a board in one step. Only for callers that may block.
func (e *Engine) Load(ctx context.Context, boardID types.BoardID) error {
	lists, err := e.Fetch(ctx, boardID)
	if err != nil {
		return err
	}
	return e.Open(boardID, lists)
}

// Close discards any active drag without mutating the board, aborts
// in-flight requests and unloads the board.
func (e *Engine) Close() {
	if e.session.Dragging() {
		e.logger.Debug("discarding drag session on close")
	}
	e.session.Discard()
	e.reconciler.CancelAll()
	e.store.Reset()
}

// ============================================================================
// DRAG GESTURES
// ============================================================================

// DragStartCard picks up a card. It reports whether a drag started; cards
// that are still being created cannot be dragged.
func (e *Engine) DragStartCard(id types.CardID) bool {
	snap := e.store.Snapshot()
	loc, ok := snap.LocateCard(id)
	if !ok {
		e.logger.Warn("drag start on unknown card", "card_id", id)
		return false
	}
	card, _ := snap.Card(id)
	return e.startDrag(drag.CardEntity(card, loc.Index))
}

// DragStartList picks up a list
func (e *Engine) DragStartList(id types.ListID) bool {
	list, idx, ok := e.store.Snapshot().List(id)
	if !ok {
		e.logger.Warn("drag start on unknown list", "list_id", id)
		return false
	}
	return e.startDrag(drag.ListEntity(list, idx))
}

func (e *Engine) startDrag(ent drag.Entity) bool {
	if ent.IsPlaceholder() {
		e.logger.Debug("ignoring drag of unconfirmed entity", "kind", ent.Kind.String(), "card_id", ent.CardID, "list_id", ent.ListID)
		return false
	}
	if err := e.session.Start(ent); err != nil {
		e.logger.Warn("drag start rejected", "kind", ent.Kind.String(), "card_id", ent.CardID, "list_id", ent.ListID, "error", err)
		return false
	}
	return true
}

// DragOver updates the hover target. It never mutates the board and reports
// whether the hover target changed.
func (e *Engine) DragOver(t drag.Target) bool {
	changed, err := e.session.Hover(t)
	if err != nil {
		return false
	}
	return changed
}

// DragCancel aborts the active drag with no board mutation
func (e *Engine) DragCancel() {
	if e.session.Cancel() {
		e.logger.Debug("drag cancelled")
	}
}

// DragEnd releases the dragged entity over t. The board is updated before
// DragEnd returns. The returned request persists the move; it is nil when
// nothing changed, the drop was a cancel, or the drop could not be resolved.
func (e *Engine) DragEnd(t drag.Target) *reconcile.Request {
	d, ok, err := e.session.End(t)
	if err != nil {
		e.logger.Warn("drag end without active session", "error", err)
		return nil
	}
	if !ok {
		e.logger.Debug("drag released outside any target")
		return nil
	}

	snap := e.store.Snapshot()
	plan, err := reorder.PlanDrop(snap, d)
	if err != nil {
		e.logger.Warn("drop could not be resolved",
			"kind", d.Active.Kind.String(),
			"card_id", d.Active.CardID,
			"list_id", d.Active.ListID,
			"error", err)
		return nil
	}
	if plan.IsNoop() {
		return nil
	}

	if _, err := e.store.Update("drop_"+d.Active.Kind.String(), plan.Apply); err != nil {
		return nil
	}

	switch p := plan.(type) {
	case reorder.CardPlan:
		return e.reconciler.Submit(e.cardPlacement(p))
	case reorder.ListPlan:
		return e.reconciler.Submit(e.listPlacement(p))
	}
	return nil
}

func (e *Engine) cardPlacement(p reorder.CardPlan) reconcile.Mutation {
	id, listID, order := p.CardID, p.To.Container, p.To.Index
	from := p.From
	return reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityCard, ID: id.String(), Field: reconcile.FieldPlacement},
		Op:  "move_card",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			return nil, e.api.PatchCard(ctx, id, remote.CardPatch{ListID: &listID, Order: &order})
		},
		Undo: restoreCardPlacement(id, from.Container, from.Index),
	}
}

func (e *Engine) listPlacement(p reorder.ListPlan) reconcile.Mutation {
	id, order := p.ListID, p.To.Index
	from := p.From.Index
	return reconcile.Mutation{
		Key: reconcile.Key{Kind: reconcile.EntityList, ID: id.String(), Field: reconcile.FieldPlacement},
		Op:  "move_list",
		Call: func(ctx context.Context) (reconcile.Patch, error) {
			return nil, e.api.PatchList(ctx, id, remote.ListPatch{Order: &order})
		},
		Undo: restoreListPlacement(id, from),
	}
}

// ============================================================================
// SETTLEMENT
// ============================================================================

// Settle applies a finished request's result and queues a notification when
// a change had to be reverted
func (e *Engine) Settle(res reconcile.Result) reconcile.Result {
	res, _ = e.reconciler.Settle(res)
	switch res.Outcome {
	case reconcile.Failed:
		e.notes.Add(LevelError, failureMessage(res))
	case reconcile.Skipped:
		e.logger.Debug("change kept local, no credential", "op", res.Op, "key", res.Key.String())
	}
	return res
}

func failureMessage(res reconcile.Result) string {
	what := res.Key.Kind.String()
	switch res.Key.Field {
	case reconcile.FieldPlacement:
		return fmt.Sprintf("Could not save %s position; change reverted", what)
	case reconcile.FieldTitle:
		return fmt.Sprintf("Could not rename %s; title restored", what)
	}
	if errors.Is(res.Err, remote.ErrNoCredential) {
		return "Not signed in; change reverted"
	}
	return fmt.Sprintf("Could not save %s; change reverted", what)
}
