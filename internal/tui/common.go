package tui

import (
	"fmt"

	"github.com/sadopc/vectoros/internal/domain"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewWeek
	viewMonth
	viewVector
	viewNotes
)

var viewNames = []string{"Today", "Week", "Month", "Vector", "Notes"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type daySavedMsg struct{}
type weekSavedMsg struct{}
type monthSavedMsg struct{ locked bool }
type vectorSavedMsg struct{}
type projectSavedMsg struct{}
type noteSavedMsg struct{}

// --- Helpers ---

// formatMinutes renders minutes as "Hh MMm".
func formatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatOptInt(v *int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *v)
}

func formatOptString(v *string) string {
	if v == nil {
		return "—"
	}
	return *v
}

func trendArrow(t domain.TrendKind) string {
	switch t {
	case domain.TrendUp:
		return "↑"
	case domain.TrendDown:
		return "↓"
	case domain.TrendFlat:
		return "→"
	default:
		return "·"
	}
}

func scoreOrBlank(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
