package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/dateutil"
	"github.com/sadopc/vectoros/internal/domain"
	"github.com/sadopc/vectoros/internal/store"
)

type todayModel struct {
	store  *store.Store
	width  int
	height int

	date     string
	day      *store.Day
	projects []store.Project

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	deepTime     *string
	deepHours    *string
	deepMinutes  *string
	noiseTime    *string
	noiseHours   *string
	noiseMinutes *string
	sleepTime    *string
	sleepHours   *string
	sleepMinutes *string
	sleepDecimal *string
	sleepQuality *string
	sleepNote    *string
	steps        *string
	training     *[]string
	keyMoves     map[int64]*string
}

func newTodayModel(s *store.Store) todayModel {
	var (
		dt, dh, dm, nt, nh, nm        = "", "", "", "", "", ""
		st, sh, sm, sd, sq, sn, steps = "", "", "", "", "", "", ""
		training                      []string
	)
	return todayModel{
		store:        s,
		date:         dateutil.Today(),
		deepTime:     &dt,
		deepHours:    &dh,
		deepMinutes:  &dm,
		noiseTime:    &nt,
		noiseHours:   &nh,
		noiseMinutes: &nm,
		sleepTime:    &st,
		sleepHours:   &sh,
		sleepMinutes: &sm,
		sleepDecimal: &sd,
		sleepQuality: &sq,
		sleepNote:    &sn,
		steps:        &steps,
		training:     &training,
		keyMoves:     map[int64]*string{},
	}
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type todayDataMsg struct {
	day      *store.Day
	projects []store.Project
}

func (t todayModel) refresh() tea.Cmd {
	date := t.date
	return func() tea.Msg {
		if _, err := t.store.EnsureActiveProject(); err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		day, err := t.store.DayByDate(date)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		projects, err := t.store.ActiveProjects()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return todayDataMsg{day: day, projects: projects}
	}
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case todayDataMsg:
		t.day = msg.day
		t.projects = msg.projects
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			t.date = dateutil.AddDays(t.date, -1)
			return t, t.refresh()
		case key.Matches(msg, keys.Right):
			t.date = dateutil.AddDays(t.date, 1)
			return t, t.refresh()
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return t.showForm()
		}
	}
	return t, nil
}

func (t todayModel) showForm() (todayModel, tea.Cmd) {
	*t.deepTime, *t.deepHours, *t.deepMinutes = "", "", ""
	*t.noiseTime, *t.noiseHours, *t.noiseMinutes = "", "", ""
	*t.sleepTime, *t.sleepHours, *t.sleepMinutes, *t.sleepDecimal = "", "", "", ""
	*t.sleepQuality, *t.sleepNote, *t.steps = "", "", ""
	*t.training = nil
	t.keyMoves = map[int64]*string{}

	if d := t.day; d != nil {
		*t.deepHours = fmt.Sprintf("%d", d.DeepMinutes/60)
		*t.deepMinutes = fmt.Sprintf("%d", d.DeepMinutes%60)
		*t.noiseHours = fmt.Sprintf("%d", d.NoiseMinutes/60)
		*t.noiseMinutes = fmt.Sprintf("%d", d.NoiseMinutes%60)
		if d.SleepHours != nil {
			*t.sleepDecimal = fmt.Sprintf("%.2f", *d.SleepHours)
		}
		*t.sleepQuality = scoreOrBlank(d.SleepQuality)
		if d.SleepNote != nil {
			*t.sleepNote = *d.SleepNote
		}
		*t.steps = fmt.Sprintf("%d", d.Steps)
		for _, m := range d.TrainingModes {
			if m != domain.TrainingNone {
				*t.training = append(*t.training, string(m))
			}
		}
	}

	scoreOptions := []huh.Option[string]{huh.NewOption("—", "")}
	for i := 1; i <= 5; i++ {
		scoreOptions = append(scoreOptions, huh.NewOption(fmt.Sprintf("%d", i), fmt.Sprintf("%d", i)))
	}

	trainingOptions := []huh.Option[string]{
		huh.NewOption("light", string(domain.TrainingLight)),
		huh.NewOption("strength", string(domain.TrainingStrength)),
		huh.NewOption("cardio", string(domain.TrainingCardio)),
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Deep focus (HH:MM)").Description("Overrides the parts below").Value(t.deepTime),
			huh.NewInput().Title("Deep focus hours").Value(t.deepHours),
			huh.NewInput().Title("Deep focus minutes").Value(t.deepMinutes),
			huh.NewInput().Title("Noise (HH:MM)").Value(t.noiseTime),
			huh.NewInput().Title("Noise hours").Value(t.noiseHours),
			huh.NewInput().Title("Noise minutes").Value(t.noiseMinutes),
		).Title("Focus"),
		huh.NewGroup(
			huh.NewInput().Title("Sleep (HH:MM)").Value(t.sleepTime),
			huh.NewInput().Title("Sleep hours part").Value(t.sleepHours),
			huh.NewInput().Title("Sleep minutes part").Value(t.sleepMinutes),
			huh.NewInput().Title("Sleep hours (decimal)").Value(t.sleepDecimal),
			huh.NewSelect[string]().Title("Sleep quality").Options(scoreOptions...).Value(t.sleepQuality),
			huh.NewInput().Title("Sleep note").Value(t.sleepNote),
		).Title("Sleep"),
		huh.NewGroup(
			huh.NewInput().Title("Steps").Value(t.steps),
			huh.NewMultiSelect[string]().Title("Training").Options(trainingOptions...).Value(t.training),
		).Title("Body"),
	}

	if len(t.projects) > 0 {
		var fields []huh.Field
		for _, p := range t.projects {
			v := ""
			if t.day != nil {
				for _, e := range t.day.ProjectEntries {
					if e.ProjectID == p.ID && e.KeyMove != nil {
						v = *e.KeyMove
					}
				}
			}
			ptr := &v
			t.keyMoves[p.ID] = ptr
			fields = append(fields, huh.NewInput().Title("Key move — "+p.Name).Value(ptr))
		}
		groups = append(groups, huh.NewGroup(fields...).Title("Key moves"))
	}

	t.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	t.formActive = true
	return t, t.form.Init()
}

func (t todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		return t, t.save()
	}

	return t, cmd
}

// save normalizes every field and upserts the day. Unparseable input
// is clamped or defaulted, never rejected.
func (t todayModel) save() tea.Cmd {
	payload := store.DayPayload{
		Date:         t.date,
		DeepMinutes:  domain.ResolveDurationMinutes(*t.deepTime, *t.deepHours, *t.deepMinutes),
		NoiseMinutes: domain.ResolveDurationMinutes(*t.noiseTime, *t.noiseHours, *t.noiseMinutes),
		SleepHours:   domain.ResolveSleepHours(*t.sleepTime, *t.sleepHours, *t.sleepMinutes, *t.sleepDecimal),
		SleepQuality: domain.ParseScore(*t.sleepQuality),
		SleepNote:    optText(*t.sleepNote),
		Steps:        domain.ParseSteps(*t.steps),
	}
	payload.TrainingModes = domain.NormalizeTrainingModes(*t.training)

	for _, p := range t.projects {
		ptr, ok := t.keyMoves[p.ID]
		if !ok {
			continue
		}
		entry := store.DayProjectEntry{ProjectID: p.ID, KeyMove: optText(*ptr)}
		payload.ProjectEntries = append(payload.ProjectEntries, entry)
		if payload.KeyMove == nil && entry.KeyMove != nil {
			payload.KeyMove = entry.KeyMove
		}
	}

	return func() tea.Msg {
		if err := t.store.UpsertDay(payload); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return daySavedMsg{}
	}
}

func optText(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

func (t todayModel) view() string {
	if t.formActive && t.form != nil {
		title := titleStyle.Render("Log day " + t.date)
		return panelStyle.Width(t.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View()),
		)
	}

	status := domain.StatusYellow
	if t.day != nil {
		status = domain.DayStatus(t.day.DeepMinutes, t.day.NoiseMinutes)
	}

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Day "+t.date), "  ", statusBadge(status),
	))
	rows = append(rows, "")

	if t.day == nil {
		rows = append(rows, mutedStyle.Render("Nothing logged yet. Press e to log this day."))
	} else {
		d := t.day
		rows = append(rows, fmt.Sprintf("  %-16s %s", "Deep focus", highlightStyle.Render(formatMinutes(d.DeepMinutes))))
		rows = append(rows, fmt.Sprintf("  %-16s %s", "Noise", formatMinutes(d.NoiseMinutes)))
		rows = append(rows, fmt.Sprintf("  %-16s %s", "Steps", fmt.Sprintf("%d", d.Steps)))
		rows = append(rows, fmt.Sprintf("  %-16s %sh  quality %s", "Sleep",
			formatOptFloat(d.SleepHours), formatOptInt(d.SleepQuality)))
		if d.SleepNote != nil {
			rows = append(rows, fmt.Sprintf("  %-16s %s", "Sleep note", *d.SleepNote))
		}

		var modes []string
		for _, m := range d.TrainingModes {
			modes = append(modes, string(m))
		}
		rows = append(rows, fmt.Sprintf("  %-16s %s", "Training", strings.Join(modes, ", ")))

		if len(d.ProjectEntries) > 0 {
			rows = append(rows, "")
			rows = append(rows, titleStyle.Render("  Key moves"))
			names := map[int64]string{}
			for _, p := range t.projects {
				names[p.ID] = p.Name
			}
			for _, e := range d.ProjectEntries {
				name := names[e.ProjectID]
				if name == "" {
					name = fmt.Sprintf("project %d", e.ProjectID)
				}
				rows = append(rows, fmt.Sprintf("    %s: %s", name, formatOptString(e.KeyMove)))
			}
		} else if d.KeyMove != nil {
			rows = append(rows, fmt.Sprintf("  %-16s %s", "Key move", *d.KeyMove))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit  ←/→: change day"))

	return panelStyle.Width(t.width - 4).Render(strings.Join(rows, "\n"))
}
