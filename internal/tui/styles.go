package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/domain"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#7AA2F7")
	colorMuted   = lipgloss.Color("#666666")
	colorGreen   = lipgloss.Color("#2ECC71")
	colorYellow  = lipgloss.Color("#F39C12")
	colorRed     = lipgloss.Color("#E74C3C")
	colorFg      = lipgloss.Color("#C0CAF5")
	colorSubtle  = lipgloss.Color("#414868")
	colorDeep    = lipgloss.Color("#2EC4B6")
	colorNoise   = lipgloss.Color("#FF6B6B")
)

// Styles
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	yellowStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	badgeGreenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1B26")).
			Background(colorGreen).
			Padding(0, 1)

	badgeYellowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1A1B26")).
				Background(colorYellow).
				Padding(0, 1)

	badgeRedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1B26")).
			Background(colorRed).
			Padding(0, 1)
)

// statusBadge renders the traffic-light badge for a status.
func statusBadge(s domain.Status) string {
	switch s {
	case domain.StatusGreen:
		return badgeGreenStyle.Render("GREEN")
	case domain.StatusRed:
		return badgeRedStyle.Render("RED")
	default:
		return badgeYellowStyle.Render("YELLOW")
	}
}
