package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/dragboard/internal/drag"
	"github.com/thenoetrevino/dragboard/internal/models"
)

// View renders the board
// Required by tea.Model interface
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.viewHeader(), m.viewBoard(), m.viewFooter()}
	for _, n := range m.engine.Notifications().All() {
		sections = append(sections, m.styles.renderNotification(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	snap := m.engine.Snapshot()
	title := "dragboard"
	if id := snap.BoardID(); id != "" {
		title += " · board " + id.String()
	}
	right := ""
	if n := m.engine.Pending(); n > 0 {
		right = fmt.Sprintf("saving %d…", n)
	}
	left := m.styles.header.Render(title)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + m.styles.subtle.Render(right)
}

func (m Model) viewBoard() string {
	snap := m.engine.Snapshot()
	if snap.ListCount() == 0 {
		return m.styles.subtle.Render(fmt.Sprintf("No lists yet. Press %s to add one.", m.keys.NewList))
	}

	active, dragging := m.engine.Session().Active()
	hovered := m.engine.Session().Hovered()

	boxes := make([]string, 0, 2*snap.ListCount())
	for i, l := range snap.Lists() {
		if i > 0 {
			boxes = append(boxes, strings.Repeat(" ", listGap))
		}
		boxes = append(boxes, m.viewList(l, active, dragging, hovered))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) viewList(l *models.List, active drag.Entity, dragging bool, hovered drag.Target) string {
	header := m.styles.listName.Render(truncate(fmt.Sprintf("%s (%d)", l.Title, len(l.Cards)), listWidth-4))
	if l.ID.IsPlaceholder() {
		header = m.styles.subtle.Render(truncate(l.Title+" (saving)", listWidth-4))
	}

	rows := make([]string, 0, len(l.Cards)+2)
	rows = append(rows, header)
	for _, c := range l.Cards {
		rows = append(rows, m.viewCard(c, active, dragging, hovered))
	}
	footer := ""
	if len(l.Cards) == 0 {
		footer = m.styles.subtle.Render("drop cards here")
	}
	rows = append(rows, footer)

	style := m.styles.list
	switch {
	case dragging && active.Kind == drag.KindList && active.ListID == l.ID:
		style = m.styles.listGhost
	case dragging && hovered.Kind == drag.TargetList && hovered.ListID == l.ID:
		style = m.styles.listTarget
	case !dragging && m.selList == l.ID && m.selCard == "":
		style = m.styles.listSelected
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (m Model) viewCard(c *models.Card, active drag.Entity, dragging bool, hovered drag.Target) string {
	style := m.styles.card
	switch {
	case c.ID.IsPlaceholder():
		style = m.styles.cardPending
	case dragging && active.Kind == drag.KindCard && active.CardID == c.ID:
		style = m.styles.cardGhost
	case dragging && hovered.Kind == drag.TargetCard && hovered.CardID == c.ID:
		style = m.styles.cardTarget
	case !dragging && m.selCard == c.ID:
		style = m.styles.cardSelected
	}
	return style.Render(truncate(c.Title, listWidth-2*cardInset-2))
}

func (m Model) viewFooter() string {
	if m.form.kind != formNone {
		return m.styles.form.Render(m.form.input.View())
	}

	if active, ok := m.engine.Session().Active(); ok {
		what := active.Kind.String()
		return m.styles.subtle.Render(fmt.Sprintf("moving %s · release to drop · %s to cancel", what, m.keys.CancelDrag))
	}

	help := fmt.Sprintf("drag to move · %s new list · %s new card · %s rename · %s delete · %s refresh · %s quit",
		m.keys.NewList, m.keys.NewCard, m.keys.Rename, m.keys.Delete, m.keys.Refresh, m.keys.Quit)
	return m.styles.subtle.Render(help)
}

// truncate shortens s to at most width cells
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
