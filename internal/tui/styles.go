package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-bongabdo/internal/config"
)

type styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
}

func newStyles() styles {
	cell := lipgloss.NewStyle().Width(config.TUICellWidth).Align(lipgloss.Right)
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(config.TUIColorTitle)),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Header:   cell.Bold(true),
		Day:      cell,
		Today: cell.
			Bold(true).
			Foreground(lipgloss.Color(config.TUIColorToday)).
			Background(lipgloss.Color(config.TUIColorTodayB)),
		Weekend: cell.Foreground(lipgloss.Color(config.TUIColorFriday)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(config.TUIColorDim)).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
