package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/types"
)

const (
	notificationTTL  = 5 * time.Second
	notificationTick = 500 * time.Millisecond
)

// boardFetchedMsg carries a board load that ran off the update loop
type boardFetchedMsg struct {
	boardID types.BoardID
	lists   []*models.List
	err     error
}

// settledMsg carries a finished persistence request back to the update loop
type settledMsg struct {
	result reconcile.Result
}

type tickMsg time.Time

// quitDeadlineMsg ends the wait for in-flight requests on quit
type quitDeadlineMsg struct{}

func fetchBoard(ctx context.Context, e *engine.Engine, boardID types.BoardID) tea.Cmd {
	return func() tea.Msg {
		lists, err := e.Fetch(ctx, boardID)
		return boardFetchedMsg{boardID: boardID, lists: lists, err: err}
	}
}

// persist runs req off the update loop. A nil request yields no command.
func persist(ctx context.Context, req *reconcile.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return settledMsg{result: req.Do(ctx)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(notificationTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func quitDeadline(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return quitDeadlineMsg{}
	})
}
