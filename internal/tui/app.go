package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView viewState
	showHelp   bool

	today  todayModel
	week   weekModel
	month  monthModel
	vector vectorModel
	notes  notesModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewToday,
		today:      newTodayModel(s),
		week:       newWeekModel(s),
		month:      newMonthModel(s),
		vector:     newVectorModel(s),
		notes:      newNotesModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.today.refresh()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.week.setSize(a.width, contentHeight)
		a.month.setSize(a.width, contentHeight)
		a.vector.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Forms capture all input while open.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, a.today.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewWeek
			return a, a.week.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewMonth
			return a, a.month.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewVector
			return a, a.vector.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewNotes
			return a, a.notes.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case statusMsg:
		a.status = msg.text
		return a, nil

	case daySavedMsg:
		a.status = "Day saved"
		return a, a.today.refresh()

	case weekSavedMsg:
		a.status = "Week review saved"
		return a, a.week.refresh()

	case monthSavedMsg:
		if msg.locked {
			a.status = "Month review locked"
		} else {
			a.status = "Month review saved"
		}
		return a, a.month.refresh()

	case vectorSavedMsg:
		a.status = "Vector updated"
		return a, a.vector.refresh()

	case projectSavedMsg:
		a.status = "Project saved"
		return a, a.vector.refresh()

	case noteSavedMsg:
		a.status = "Note saved"
		return a, a.notes.refresh()
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewWeek:
		a.week, cmd = a.week.update(msg)
	case viewMonth:
		a.month, cmd = a.month.update(msg)
	case viewVector:
		a.vector, cmd = a.vector.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewWeek:
		return a.week.formActive
	case viewMonth:
		return a.month.formActive
	case viewVector:
		return a.vector.formActive
	case viewNotes:
		return a.notes.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.refresh()
	case viewWeek:
		return a.week.refresh()
	case viewMonth:
		return a.month.refresh()
	case viewVector:
		return a.vector.refresh()
	case viewNotes:
		return a.notes.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewWeek:
		content = a.week.view()
	case viewMonth:
		content = a.month.view()
	case viewVector:
		content = a.vector.view()
	case viewNotes:
		content = a.notes.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("vector os")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}
