// Package tui is the terminal front end of the board. It renders the engine's
// snapshot and translates mouse press, motion and release into drag gestures.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dragboard/internal/config"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/types"
)

// press records a left-button press that has not become a drag yet
type press struct {
	x, y int
	hit  hit
}

type formKind int

const (
	formNone formKind = iota
	formNewList
	formNewCard
	formRenameList
	formRenameCard
)

// form is the single-line title prompt used for create and rename
type form struct {
	kind   formKind
	input  textinput.Model
	listID types.ListID
	cardID types.CardID
}

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	engine  *engine.Engine
	boardID types.BoardID
	keys    config.KeyMappings
	styles  styles
	logger  *slog.Logger

	width, height int

	press    *press
	dragging bool

	selList types.ListID
	selCard types.CardID

	form form

	// quitting is set once quit was requested while requests were in flight
	quitting    bool
	saveTimeout time.Duration
}

// New creates the TUI model for one board. ctx bounds every request the
// model starts; cancel it to abort them.
func New(ctx context.Context, e *engine.Engine, boardID types.BoardID, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	return Model{
		ctx:     ctx,
		engine:  e,
		boardID: boardID,
		keys:    cfg.KeyMappings,
		styles:  newStyles(cfg.ColorScheme),
		logger:  slog.Default().With("component", "tui"),

		saveTimeout: cfg.Sync.Timeout * time.Duration(cfg.Sync.Retries()+1),
	}
}

// Init loads the board and starts the notification ticker
// Required by tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchBoard(m.ctx, m.engine, m.boardID), tick())
}

func (m Model) layout() layout {
	return computeLayout(m.engine.Snapshot(), m.width, m.height)
}

// selectedList returns the selected list, falling back to the first list
func (m Model) selectedList() (*models.List, int, bool) {
	snap := m.engine.Snapshot()
	if l, i, ok := snap.List(m.selList); ok {
		return l, i, true
	}
	if l := snap.ListAt(0); l != nil {
		return l, 0, true
	}
	return nil, -1, false
}

// selectedCard returns the selected card when it still exists
func (m Model) selectedCard() (*models.Card, bool) {
	if m.selCard == "" {
		return nil, false
	}
	return m.engine.Snapshot().Card(m.selCard)
}

// reselect drops selections that no longer resolve
func (m *Model) reselect() {
	snap := m.engine.Snapshot()
	if _, ok := snap.Card(m.selCard); !ok {
		m.selCard = ""
	}
	if loc, ok := snap.LocateCard(m.selCard); ok {
		m.selList = loc.ListID
	}
	if _, _, ok := snap.List(m.selList); !ok {
		m.selList = ""
		if l := snap.ListAt(0); l != nil {
			m.selList = l.ID
		}
	}
}

func (m *Model) notify(level engine.NotificationLevel, message string) {
	m.engine.Notifications().Add(level, message)
}
