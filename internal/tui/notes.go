package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/dateutil"
	"github.com/sadopc/vectoros/internal/store"
)

type notesModel struct {
	store  *store.Store
	width  int
	height int

	date    string
	notes   []store.NoteItem
	archive []store.NoteItem
	cursor  int

	formActive bool
	form       *huh.Form

	text *string
}

func newNotesModel(s *store.Store) notesModel {
	text := ""
	return notesModel{
		store: s,
		date:  dateutil.Today(),
		text:  &text,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

type notesDataMsg struct {
	notes   []store.NoteItem
	archive []store.NoteItem
}

func (n notesModel) refresh() tea.Cmd {
	date := n.date
	return func() tea.Msg {
		notes, err := n.store.NotesForDate(date)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		archive, err := n.store.NotesArchive(date, 100)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return notesDataMsg{notes: notes, archive: archive}
	}
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notesDataMsg:
		n.notes = msg.notes
		n.archive = msg.archive
		if n.cursor >= len(n.notes) {
			n.cursor = max(0, len(n.notes)-1)
		}
		return n, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if n.cursor > 0 {
				n.cursor--
			}
		case key.Matches(msg, keys.Down):
			if n.cursor < len(n.notes)-1 {
				n.cursor++
			}
		case key.Matches(msg, keys.Left):
			n.date = dateutil.AddDays(n.date, -1)
			return n, n.refresh()
		case key.Matches(msg, keys.Right):
			n.date = dateutil.AddDays(n.date, 1)
			return n, n.refresh()
		case key.Matches(msg, keys.New):
			return n.showForm()
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(n.notes) > 0 {
				note := n.notes[n.cursor]
				return n, n.toggle(note)
			}
		}
	}
	return n, nil
}

func (n notesModel) toggle(note store.NoteItem) tea.Cmd {
	return func() tea.Msg {
		if err := n.store.SetNoteDone(note.ID, !note.Done, note.Date); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return noteSavedMsg{}
	}
}

func (n notesModel) showForm() (notesModel, tea.Cmd) {
	*n.text = ""
	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Note").Value(n.text),
		),
	).WithShowHelp(true).WithShowErrors(true)
	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		date, text := n.date, *n.text
		return n, func() tea.Msg {
			if err := n.store.AddNote(date, text); err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
			return noteSavedMsg{}
		}
	}

	return n, cmd
}

func renderNote(note store.NoteItem, selected bool) string {
	check := "[ ]"
	style := normalItemStyle
	if note.Done {
		check = "[x]"
		style = mutedStyle
	}
	cursor := "  "
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	return style.Render(fmt.Sprintf("%s%s %s", cursor, check, note.Text))
}

func (n notesModel) view() string {
	if n.formActive && n.form != nil {
		title := titleStyle.Render("New note " + n.date)
		return panelStyle.Width(n.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Notes "+n.date))
	rows = append(rows, "")

	if len(n.notes) == 0 {
		rows = append(rows, mutedStyle.Render("  No notes for this date. Press n to add one."))
	}
	for i, note := range n.notes {
		rows = append(rows, "  "+renderNote(note, i == n.cursor))
	}

	if len(n.archive) > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Archive"))
		for _, note := range n.archive {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %s  ", note.Date))+renderNote(note, false))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle done  ←/→: change day"))

	return panelStyle.Width(n.width - 4).Render(strings.Join(rows, "\n"))
}
