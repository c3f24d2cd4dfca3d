package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/dragboard/internal/config"
	"github.com/thenoetrevino/dragboard/internal/engine"
)

// styles are built once from the configured color scheme
type styles struct {
	header   lipgloss.Style
	subtle   lipgloss.Style
	listName lipgloss.Style

	list         lipgloss.Style
	listSelected lipgloss.Style
	listTarget   lipgloss.Style
	listGhost    lipgloss.Style

	card         lipgloss.Style
	cardSelected lipgloss.Style
	cardTarget   lipgloss.Style
	cardGhost    lipgloss.Style
	cardPending  lipgloss.Style

	form lipgloss.Style

	notes map[engine.NotificationLevel]noteStyle
}

type noteStyle struct {
	icon string
	fg   lipgloss.Color
	bg   lipgloss.Color
}

func newStyles(cs config.ColorScheme) styles {
	list := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(cs.ListBorder)).
		Padding(0, 1).
		Width(listWidth - 2)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(cs.CardBorder)).
		Foreground(lipgloss.Color(cs.Normal)).
		Width(listWidth - 2*cardInset - 2)

	return styles{
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Title)).Bold(true),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Subtle)),
		listName: lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Title)).Bold(true),

		list:         list,
		listSelected: list.BorderForeground(lipgloss.Color(cs.Accent)),
		listTarget:   list.BorderForeground(lipgloss.Color(cs.DropTarget)),
		listGhost:    list.BorderForeground(lipgloss.Color(cs.Ghost)).Foreground(lipgloss.Color(cs.Ghost)),

		card:         card,
		cardSelected: card.BorderForeground(lipgloss.Color(cs.Accent)),
		cardTarget:   card.BorderForeground(lipgloss.Color(cs.DropTarget)),
		cardGhost:    card.BorderForeground(lipgloss.Color(cs.Ghost)).Foreground(lipgloss.Color(cs.Ghost)),
		cardPending:  card.BorderForeground(lipgloss.Color(cs.Pending)).Italic(true),

		form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cs.Accent)).
			Padding(0, 1),

		notes: map[engine.NotificationLevel]noteStyle{
			engine.LevelInfo:    {icon: "🔔", fg: lipgloss.Color(cs.InfoFg), bg: lipgloss.Color(cs.InfoBg)},
			engine.LevelWarning: {icon: "⚠", fg: lipgloss.Color(cs.WarningFg), bg: lipgloss.Color(cs.WarningBg)},
			engine.LevelError:   {icon: "✕", fg: lipgloss.Color(cs.ErrorFg), bg: lipgloss.Color(cs.ErrorBg)},
		},
	}
}

// renderNotification renders a compact single-line notification
func (s styles) renderNotification(n engine.Notification) string {
	st, ok := s.notes[n.Level]
	if !ok {
		st = s.notes[engine.LevelInfo]
	}
	return lipgloss.NewStyle().
		Foreground(st.fg).
		Background(st.bg).
		Padding(0, 1).
		Render(st.icon + " " + n.Message)
}
