package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
)

// Update handles all incoming messages and updates the model accordingly
// Required by tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardFetchedMsg:
		return m.handleFetched(msg), nil

	case settledMsg:
		m.engine.Settle(msg.result)
		m.reselect()
		if m.quitting && m.engine.Pending() == 0 {
			return m.quit()
		}
		return m, nil

	case quitDeadlineMsg:
		if !m.quitting {
			return m, nil
		}
		m.logger.Warn("quitting with unsaved changes", "pending", m.engine.Pending())
		return m.quit()

	case tickMsg:
		m.engine.Notifications().Expire(notificationTTL)
		return m, tick()

	case tea.MouseMsg:
		if m.form.kind != formNone || m.quitting {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.form.kind != formNone {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleFetched(msg boardFetchedMsg) Model {
	if msg.err != nil {
		m.logger.Error("failed to load board", "board_id", msg.boardID, "error", msg.err)
		m.notify(engine.LevelError, describeError("Could not load board", msg.err))
		return m
	}
	if err := m.engine.Open(msg.boardID, msg.lists); err != nil {
		m.notify(engine.LevelWarning, "Refresh skipped while dragging")
		return m
	}
	m.reselect()
	return m
}

// ============================================================================
// POINTER GESTURES
// ============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	h := m.layout().hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.dragging {
			return m, nil
		}
		m.selectHit(h)
		if h.kind == hitCard || h.kind == hitListHeader {
			m.press = &press{x: msg.X, y: msg.Y, hit: h}
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.dragging {
			if m.press == nil || distance(m.press.x, m.press.y, msg.X, msg.Y) < dragActivationDistance {
				return m, nil
			}
			m.dragging = m.startDrag(m.press.hit)
			m.press = nil
			if !m.dragging {
				return m, nil
			}
		}
		m.engine.DragOver(h.target())
		return m, nil

	case tea.MouseActionRelease:
		m.press = nil
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		req := m.engine.DragEnd(h.target())
		m.reselect()
		return m, persist(m.ctx, req)
	}
	return m, nil
}

func (m *Model) startDrag(h hit) bool {
	switch h.kind {
	case hitCard:
		return m.engine.DragStartCard(h.cardID)
	case hitListHeader:
		return m.engine.DragStartList(h.listID)
	}
	return false
}

func (m *Model) selectHit(h hit) {
	switch h.kind {
	case hitCard:
		m.selList, m.selCard = h.listID, h.cardID
	case hitList, hitListHeader:
		m.selList, m.selCard = h.listID, ""
	}
}

// ============================================================================
// KEYBOARD
// ============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == m.keys.Quit {
		return m.requestQuit()
	}
	if m.quitting {
		return m, nil
	}

	if m.dragging {
		if key == m.keys.CancelDrag {
			m.engine.DragCancel()
			m.dragging = false
		}
		return m, nil
	}

	switch key {
	case m.keys.CancelDrag:
		m.press = nil
		return m, nil
	case m.keys.Refresh:
		return m, fetchBoard(m.ctx, m.engine, m.boardID)
	case m.keys.NewList:
		return m.openForm(formNewList, "New list title", "")
	case m.keys.NewCard:
		if _, _, ok := m.selectedList(); !ok {
			m.notify(engine.LevelWarning, "Create a list first")
			return m, nil
		}
		return m.openForm(formNewCard, "New card title", "")
	case m.keys.Rename:
		if card, ok := m.selectedCard(); ok {
			return m.openForm(formRenameCard, "Card title", card.Title)
		}
		if list, _, ok := m.selectedList(); ok {
			return m.openForm(formRenameList, "List title", list.Title)
		}
		return m, nil
	case m.keys.Delete:
		return m.deleteSelected()
	case "left", "h":
		m.moveListSelection(-1)
	case "right", "l":
		m.moveListSelection(1)
	case "up", "k":
		m.moveCardSelection(-1)
	case "down", "j":
		m.moveCardSelection(1)
	}
	return m, nil
}

// requestQuit discards any drag and quits once in-flight requests have
// settled, or after saveTimeout. A second quit key skips the wait.
func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if m.quitting {
		m.logger.Warn("quit forced with unsaved changes", "pending", m.engine.Pending())
		return m.quit()
	}
	m.engine.DragCancel()
	m.dragging = false
	m.press = nil

	pending := m.engine.Pending()
	if pending == 0 {
		return m.quit()
	}
	m.quitting = true
	m.notify(engine.LevelInfo, fmt.Sprintf("Saving %d pending change(s), press %s again to quit now", pending, m.keys.Quit))
	return m, quitDeadline(m.saveTimeout)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.engine.Close()
	return m, tea.Quit
}

func (m *Model) moveListSelection(delta int) {
	_, i, ok := m.selectedList()
	if !ok {
		return
	}
	if l := m.engine.Snapshot().ListAt(i + delta); l != nil {
		m.selList, m.selCard = l.ID, ""
	}
}

func (m *Model) moveCardSelection(delta int) {
	list, _, ok := m.selectedList()
	if !ok || len(list.Cards) == 0 {
		return
	}
	next := 0
	if loc, ok := m.engine.Snapshot().LocateCard(m.selCard); ok {
		next = max(0, min(loc.Index+delta, len(list.Cards)-1))
	}
	m.selList, m.selCard = list.ID, list.Cards[next].ID
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	var (
		req *reconcile.Request
		err error
	)
	if card, ok := m.selectedCard(); ok {
		req, err = m.engine.DeleteCard(card.ID)
	} else if list, _, ok := m.selectedList(); ok {
		req, err = m.engine.DeleteList(list.ID)
	} else {
		return m, nil
	}
	if err != nil {
		m.notify(engine.LevelWarning, describeError("Could not delete", err))
		return m, nil
	}
	m.reselect()
	return m, persist(m.ctx, req)
}

// ============================================================================
// FORMS
// ============================================================================

func (m Model) openForm(kind formKind, placeholder, value string) (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = models.MaxTitleLength
	input.Width = listWidth * 2
	input.SetValue(value)

	f := form{kind: kind, input: input}
	if list, _, ok := m.selectedList(); ok {
		f.listID = list.ID
	}
	if card, ok := m.selectedCard(); ok {
		f.cardID = card.ID
	}
	m.form = f
	cmd := m.form.input.Focus()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = form{}
		return m, nil
	case m.keys.SubmitForm:
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.form.input, cmd = m.form.input.Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	title := f.input.Value()

	var (
		req *reconcile.Request
		err error
	)
	switch f.kind {
	case formNewList:
		req, err = m.engine.CreateList(title)
	case formNewCard:
		req, err = m.engine.CreateCard(f.listID, title)
	case formRenameList:
		req, err = m.engine.RenameList(f.listID, title)
	case formRenameCard:
		req, err = m.engine.RenameCard(f.cardID, title)
	}
	if errors.Is(err, models.ErrEmptyTitle) {
		// keep the form open for another attempt
		m.notify(engine.LevelWarning, "Title cannot be empty")
		return m, nil
	}

	m.form = form{}
	if err != nil {
		m.notify(engine.LevelError, describeError("Could not save", err))
		return m, nil
	}
	return m, persist(m.ctx, req)
}

// describeError turns an engine error into a short user-facing message
func describeError(prefix string, err error) string {
	switch {
	case errors.Is(err, remote.ErrNoCredential):
		return prefix + ": not signed in"
	case errors.Is(err, engine.ErrNotConfirmed):
		return prefix + ": still being created"
	case errors.Is(err, models.ErrTitleTooLong):
		return fmt.Sprintf("%s: title exceeds %d characters", prefix, models.MaxTitleLength)
	}
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: server returned %d", prefix, apiErr.StatusCode)
	}
	return prefix + ": " + strings.TrimSpace(err.Error())
}
