package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/engine"
	"github.com/thenoetrevino/dragboard/internal/models"
	"github.com/thenoetrevino/dragboard/internal/reconcile"
	"github.com/thenoetrevino/dragboard/internal/remote"
	"github.com/thenoetrevino/dragboard/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// TEST HELPERS
// ============================================================================

// Screen positions for the fixture board l1 [A B C], l2 [D]
var (
	posA        = [2]int{5, 4}
	posC        = [2]int{5, 10}
	posD        = [2]int{35, 4}
	posL1Header = [2]int{5, 2}
	posL2Header = [2]int{35, 2}
	posL2Footer = [2]int{35, 6}
	posBoard    = [2]int{100, 20}
)

func fixtureLists() []*models.List {
	return []*models.List{
		{ID: "l1", Title: "Todo", Order: 0, Cards: []*models.Card{
			{ID: "A", Title: "A", Order: 0, ListID: "l1"},
			{ID: "B", Title: "B", Order: 1, ListID: "l1"},
			{ID: "C", Title: "C", Order: 2, ListID: "l1"},
		}},
		{ID: "l2", Title: "Done", Order: 1, Cards: []*models.Card{
			{ID: "D", Title: "D", Order: 0, ListID: "l2"},
		}},
	}
}

func setupModel(t *testing.T) (Model, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{lists: fixtureLists()}
	e := engine.New(api, engine.WithPolicy(reconcile.Policy{Timeout: time.Second, MaxRetries: 0, RetryBaseDelay: time.Millisecond}))
	t.Cleanup(e.Close)

	m := New(context.Background(), e, "b1", nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = send(t, m, fetchBoard(context.Background(), e, "b1")())
	return m, api
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

// run executes a persistence command and feeds its result back
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(settledMsg)
	require.True(t, ok, "expected settledMsg, got %T", msg)
	m, _ = send(t, m, msg)
	return m
}

func mouse(pos [2]int, action tea.MouseAction) tea.MouseMsg {
	button := tea.MouseButtonLeft
	if action == tea.MouseActionRelease {
		button = tea.MouseButtonNone
	}
	return tea.MouseMsg{X: pos[0], Y: pos[1], Action: action, Button: button}
}

// dragTo performs press at from, motion to over, and release at over
func dragTo(t *testing.T, m Model, from, over [2]int) (Model, tea.Cmd) {
	t.Helper()
	m, _ = send(t, m, mouse(from, tea.MouseActionPress))
	m, _ = send(t, m, mouse(over, tea.MouseActionMotion))
	return send(t, m, mouse(over, tea.MouseActionRelease))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func cardsOf(t *testing.T, m Model, listID types.ListID) []types.CardID {
	t.Helper()
	l, _, ok := m.engine.Snapshot().List(listID)
	require.True(t, ok, "list %s", listID)
	ids := make([]types.CardID, 0, len(l.Cards))
	for _, c := range l.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// ============================================================================
// HIT TESTING
// ============================================================================

func TestLayout_HitTest(t *testing.T) {
	m, _ := setupModel(t)
	lay := m.layout()

	tests := []struct {
		name string
		pos  [2]int
		want hit
	}{
		{name: "first card", pos: posA, want: hit{kind: hitCard, listID: "l1", cardID: "A"}},
		{name: "card top border", pos: [2]int{5, 3}, want: hit{kind: hitCard, listID: "l1", cardID: "A"}},
		{name: "last card", pos: posC, want: hit{kind: hitCard, listID: "l1", cardID: "C"}},
		{name: "other list card", pos: posD, want: hit{kind: hitCard, listID: "l2", cardID: "D"}},
		{name: "list header", pos: posL1Header, want: hit{kind: hitListHeader, listID: "l1"}},
		{name: "list border beside card", pos: [2]int{0, 4}, want: hit{kind: hitList, listID: "l1"}},
		{name: "list footer", pos: posL2Footer, want: hit{kind: hitList, listID: "l2"}},
		{name: "gap between lists", pos: [2]int{28, 4}, want: hit{kind: hitBoard}},
		{name: "board background", pos: posBoard, want: hit{kind: hitBoard}},
		{name: "header bar", pos: [2]int{5, 0}, want: hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lay.hitTest(tt.pos[0], tt.pos[1]))
		})
	}
}

func TestHit_Target(t *testing.T) {
	assert.Equal(t, drag.OverCard("A"), hit{kind: hitCard, listID: "l1", cardID: "A"}.target())
	assert.Equal(t, drag.OverList("l1"), hit{kind: hitListHeader, listID: "l1"}.target())
	assert.Equal(t, drag.OverList("l1"), hit{kind: hitList, listID: "l1"}.target())
	assert.Equal(t, drag.OverBoard(), hit{kind: hitBoard}.target())
	assert.True(t, hit{}.target().IsNone())
}

// ============================================================================
// GESTURES
// ============================================================================

func TestDrag_CardWithinList(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, mouse(posC, tea.MouseActionPress))
	m, _ = send(t, m, mouse(posA, tea.MouseActionMotion))
	assert.True(t, m.dragging)
	assert.Equal(t, drag.OverCard("A"), m.engine.Session().Hovered())
	assert.Contains(t, m.View(), "moving card")

	m, cmd := send(t, m, mouse(posA, tea.MouseActionRelease))
	assert.False(t, m.dragging)
	assert.Equal(t, []types.CardID{"C", "A", "B"}, cardsOf(t, m, "l1"))

	m = run(t, m, cmd)
	assert.Equal(t, []string{"PATCH card C list=l1 order=0"}, api.Calls())
	assert.Zero(t, m.engine.Pending())
}

func TestDrag_CardOntoOtherList(t *testing.T) {
	m, api := setupModel(t)

	m, cmd := dragTo(t, m, posA, posL2Footer)
	m = run(t, m, cmd)

	assert.Equal(t, []types.CardID{"B", "C"}, cardsOf(t, m, "l1"))
	assert.Equal(t, []types.CardID{"D", "A"}, cardsOf(t, m, "l2"))
	assert.Equal(t, []string{"PATCH card A list=l2 order=1"}, api.Calls())
}

func TestDrag_ListByHeader(t *testing.T) {
	m, api := setupModel(t)

	m, cmd := dragTo(t, m, posL2Header, posL1Header)
	m = run(t, m, cmd)

	lists := m.engine.Snapshot().Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, types.ListID("l2"), lists[0].ID)
	assert.Equal(t, []string{"PATCH list l2 order=0"}, api.Calls())
}

func TestDrag_ClickDoesNotMove(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, mouse(posC, tea.MouseActionPress))
	m, cmd := send(t, m, mouse(posC, tea.MouseActionRelease))

	assert.Nil(t, cmd)
	assert.False(t, m.dragging)
	assert.Equal(t, types.CardID("C"), m.selCard)
	assert.Equal(t, []types.CardID{"A", "B", "C"}, cardsOf(t, m, "l1"))
	assert.Empty(t, api.Calls())
}

func TestDrag_EscapeCancels(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, mouse(posA, tea.MouseActionPress))
	m, _ = send(t, m, mouse(posD, tea.MouseActionMotion))
	require.True(t, m.dragging)

	m, _ = send(t, m, key("esc"))
	assert.False(t, m.dragging)
	assert.False(t, m.engine.Session().Dragging())

	m, cmd := send(t, m, mouse(posD, tea.MouseActionRelease))
	assert.Nil(t, cmd)
	assert.Equal(t, []types.CardID{"A", "B", "C"}, cardsOf(t, m, "l1"))
	assert.Empty(t, api.Calls())
}

func TestDrag_CardOverBoardIsNoop(t *testing.T) {
	m, api := setupModel(t)

	m, cmd := dragTo(t, m, posA, posBoard)

	assert.Nil(t, cmd)
	assert.Equal(t, []types.CardID{"A", "B", "C"}, cardsOf(t, m, "l1"))
	assert.Empty(t, api.Calls())
}

func TestDrag_FailureRevertsAndNotifies(t *testing.T) {
	m, api := setupModel(t)
	api.fail = &remote.APIError{StatusCode: 400, Method: "PATCH", Path: "/api/cards/C"}

	m, cmd := dragTo(t, m, posC, posA)
	assert.Equal(t, []types.CardID{"C", "A", "B"}, cardsOf(t, m, "l1"))

	m = run(t, m, cmd)
	assert.Equal(t, []types.CardID{"A", "B", "C"}, cardsOf(t, m, "l1"))
	assert.True(t, m.engine.Notifications().HasAny())
	assert.Contains(t, m.View(), "change reverted")
}

func TestDrag_RightButtonIgnored(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = send(t, m, tea.MouseMsg{X: posA[0], Y: posA[1], Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m, _ = send(t, m, mouse(posD, tea.MouseActionMotion))
	assert.False(t, m.dragging)
}

// ============================================================================
// KEYBOARD
// ============================================================================

func TestKeys_CreateCard(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, mouse(posL2Header, tea.MouseActionPress))
	m, _ = send(t, m, mouse(posL2Header, tea.MouseActionRelease))
	m, _ = send(t, m, key("a"))
	require.Equal(t, formNewCard, m.form.kind)

	m, _ = send(t, m, key("Write docs"))
	m, cmd := send(t, m, key("enter"))
	assert.Equal(t, formNone, m.form.kind)

	ids := cardsOf(t, m, "l2")
	require.Len(t, ids, 2)
	assert.True(t, ids[1].IsPlaceholder())

	m = run(t, m, cmd)
	assert.Equal(t, []string{"POST card Write docs"}, api.Calls())
	ids = cardsOf(t, m, "l2")
	assert.False(t, ids[1].IsPlaceholder())
}

func TestKeys_EmptyTitleKeepsForm(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = send(t, m, key("L"))
	require.Equal(t, formNewList, m.form.kind)

	m, cmd := send(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, formNewList, m.form.kind)

	m, _ = send(t, m, key("esc"))
	assert.Equal(t, formNone, m.form.kind)
}

func TestKeys_RenameSelectedCard(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, mouse(posA, tea.MouseActionPress))
	m, _ = send(t, m, mouse(posA, tea.MouseActionRelease))
	m, _ = send(t, m, key("e"))
	require.Equal(t, formRenameCard, m.form.kind)
	assert.Equal(t, "A", m.form.input.Value())

	m, _ = send(t, m, key("2"))
	m, cmd := send(t, m, key("enter"))
	m = run(t, m, cmd)

	card, ok := m.engine.Snapshot().Card("A")
	require.True(t, ok)
	assert.Equal(t, "A2", card.Title)
	assert.Equal(t, []string{"PATCH card A title=A2"}, api.Calls())
}

func TestKeys_DeleteSelectedCard(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, key("l"))
	m, _ = send(t, m, key("j"))
	require.Equal(t, types.CardID("D"), m.selCard)

	m, cmd := send(t, m, key("d"))
	assert.Empty(t, cardsOf(t, m, "l2"))
	assert.Empty(t, m.selCard)

	run(t, m, cmd)
	assert.Equal(t, []string{"DELETE card D"}, api.Calls())
}

func TestKeys_QuitDiscardsDrag(t *testing.T) {
	m, api := setupModel(t)

	m, _ = send(t, m, mouse(posA, tea.MouseActionPress))
	m, _ = send(t, m, mouse(posD, tea.MouseActionMotion))
	require.True(t, m.dragging)

	m, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.engine.Session().Dragging())
	assert.Empty(t, api.Calls())
}

func TestKeys_QuitWaitsForInFlightSave(t *testing.T) {
	m, api := setupModel(t)

	m, save := dragTo(t, m, posA, posL2Footer)
	require.NotNil(t, save)

	m, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd, "quit must wait on a deadline, not exit")
	assert.True(t, m.quitting)
	assert.Equal(t, 1, m.engine.Pending())
	assert.Contains(t, m.View(), "Saving 1 pending")

	// input is ignored while saving
	m, cmd2 := send(t, m, key("n"))
	assert.Nil(t, cmd2)
	assert.Equal(t, formNone, m.form.kind)

	m, cmd = send(t, m, save())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Zero(t, m.engine.Pending())
	assert.Equal(t, []string{"PATCH card A list=l2 order=1"}, api.Calls())
}

func TestKeys_SecondQuitSkipsWait(t *testing.T) {
	m, api := setupModel(t)

	m, save := dragTo(t, m, posA, posL2Footer)
	require.NotNil(t, save)

	m, _ = send(t, m, key("q"))
	require.True(t, m.quitting)

	m, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Zero(t, m.engine.Pending())
	assert.Empty(t, api.Calls())
}

func TestKeys_QuitDeadline(t *testing.T) {
	m, _ := setupModel(t)

	m, cmd := send(t, m, quitDeadlineMsg{})
	assert.Nil(t, cmd, "a stale deadline must not quit")

	m, save := dragTo(t, m, posA, posL2Footer)
	require.NotNil(t, save)
	m, _ = send(t, m, key("q"))

	m, cmd = send(t, m, quitDeadlineMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Zero(t, m.engine.Pending())
}

func TestRefresh_SkippedWhileDragging(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = send(t, m, mouse(posA, tea.MouseActionPress))
	m, _ = send(t, m, mouse(posD, tea.MouseActionMotion))
	m, _ = send(t, m, fetchBoard(context.Background(), m.engine, "b1")())

	assert.True(t, m.engine.Session().Dragging())
	assert.Contains(t, m.View(), "Refresh skipped")
}

func TestFetchError_Notifies(t *testing.T) {
	m, _ := setupModel(t)

	m, _ = send(t, m, boardFetchedMsg{boardID: "b1", err: errors.New("boom")})
	assert.Contains(t, m.View(), "Could not load board")
}

func TestView_RendersBoard(t *testing.T) {
	m, _ := setupModel(t)

	view := m.View()
	for _, s := range []string{"Todo (3)", "Done (1)", "A", "D", "new list"} {
		assert.Contains(t, view, s)
	}
}

func TestTick_ExpiresAndReschedules(t *testing.T) {
	m, _ := setupModel(t)
	m.notify(engine.LevelInfo, "hello")

	_, cmd := send(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
}
