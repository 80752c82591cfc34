package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/domain"
	"github.com/sadopc/vectoros/internal/store"
)

type vectorModel struct {
	store  *store.Store
	width  int
	height int

	vector   *store.Vector
	projects []store.Project
	cursor   int

	formActive bool
	form       *huh.Form
	formType   string // "vector", "project", "edit_project"

	// Vector form fields
	startDate    *string
	horizon      *string
	incomeTarget *string
	sleepHours   *string
	sleepMinutes *string
	sleepDecimal *string
	weightMin    *string
	weightMax    *string
	goal         *string
	maxHours     *string

	// Project form fields
	projectName  *string
	projectHours *string
	projectGoal  *string

	editingID int64
}

func newVectorModel(s *store.Store) vectorModel {
	var (
		sd, hz, it, sh, sm, sdec = "", "", "", "", "", ""
		wmin, wmax, goal, mh     = "", "", "", ""
		pn, ph, pg               = "", "", ""
	)
	return vectorModel{
		store:        s,
		startDate:    &sd,
		horizon:      &hz,
		incomeTarget: &it,
		sleepHours:   &sh,
		sleepMinutes: &sm,
		sleepDecimal: &sdec,
		weightMin:    &wmin,
		weightMax:    &wmax,
		goal:         &goal,
		maxHours:     &mh,
		projectName:  &pn,
		projectHours: &ph,
		projectGoal:  &pg,
	}
}

func (v *vectorModel) setSize(w, h int) {
	v.width = w
	v.height = h
}

type vectorDataMsg struct {
	vector   *store.Vector
	projects []store.Project
}

func (v vectorModel) refresh() tea.Cmd {
	return func() tea.Msg {
		vec, err := v.store.EnsureVector()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		projects, err := v.store.ListProjects()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return vectorDataMsg{vector: vec, projects: projects}
	}
}

func (v vectorModel) update(msg tea.Msg) (vectorModel, tea.Cmd) {
	if v.formActive && v.form != nil {
		return v.updateForm(msg)
	}

	switch msg := msg.(type) {
	case vectorDataMsg:
		v.vector = msg.vector
		v.projects = msg.projects
		if v.cursor >= len(v.projects) {
			v.cursor = max(0, len(v.projects)-1)
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, keys.Down):
			if v.cursor < len(v.projects)-1 {
				v.cursor++
			}
		case key.Matches(msg, keys.Edit):
			return v.showVectorForm()
		case key.Matches(msg, keys.New):
			return v.showProjectForm(false)
		case key.Matches(msg, keys.Enter):
			if len(v.projects) > 0 {
				return v.showProjectForm(true)
			}
		}
	}
	return v, nil
}

func (v vectorModel) showVectorForm() (vectorModel, tea.Cmd) {
	vec := v.vector
	if vec == nil {
		return v, nil
	}
	*v.startDate = vec.StartDate
	*v.horizon = fmt.Sprintf("%d", vec.HorizonMonths)
	*v.incomeTarget = fmt.Sprintf("%d", vec.IncomeTarget)
	*v.sleepHours, *v.sleepMinutes, *v.sleepDecimal = "", "", ""
	if vec.SleepTargetHours != nil {
		*v.sleepDecimal = fmt.Sprintf("%.2f", *vec.SleepTargetHours)
	}
	*v.weightMin = fmt.Sprintf("%.1f", vec.WeightMin)
	*v.weightMax = fmt.Sprintf("%.1f", vec.WeightMax)
	*v.goal = vec.ProjectGoal
	*v.maxHours = fmt.Sprintf("%d", vec.MaxHoursWeek)
	v.formType = "vector"

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(v.startDate),
			huh.NewInput().Title("Horizon (months)").Value(v.horizon),
			huh.NewInput().Title("Income target").Value(v.incomeTarget),
			huh.NewInput().Title("Max hours / week").Value(v.maxHours),
		).Title("Target"),
		huh.NewGroup(
			huh.NewInput().Title("Sleep target hours part").Value(v.sleepHours),
			huh.NewInput().Title("Sleep target minutes part").Value(v.sleepMinutes),
			huh.NewInput().Title("Sleep target (decimal)").Value(v.sleepDecimal),
			huh.NewInput().Title("Weight min (kg)").Value(v.weightMin),
			huh.NewInput().Title("Weight max (kg)").Value(v.weightMax),
		).Title("Body"),
		huh.NewGroup(
			huh.NewInput().Title("Project goal").Value(v.goal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	v.formActive = true
	return v, v.form.Init()
}

func (v vectorModel) showProjectForm(edit bool) (vectorModel, tea.Cmd) {
	*v.projectName, *v.projectHours, *v.projectGoal = "", "", ""
	if edit {
		p := v.projects[v.cursor]
		*v.projectName = p.Name
		*v.projectHours = fmt.Sprintf("%d", p.MaxHoursWeek)
		if p.Goal != nil {
			*v.projectGoal = *p.Goal
		}
		v.formType = "edit_project"
		v.editingID = p.ID
	} else {
		v.formType = "project"
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project name").Value(v.projectName),
			huh.NewInput().Title("Max hours / week").Value(v.projectHours),
			huh.NewInput().Title("Goal").Value(v.projectGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	v.formActive = true
	return v, v.form.Init()
}

func (v vectorModel) updateForm(msg tea.Msg) (vectorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			v.formActive = false
			v.form = nil
			return v, nil
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.formActive = false
		switch v.formType {
		case "vector":
			return v, v.saveVector()
		case "project":
			name, hours, goal := *v.projectName, *v.projectHours, optText(*v.projectGoal)
			return v, func() tea.Msg {
				if err := v.store.AddOrActivateProject(name, domain.ParseMoney(hours), goal); err != nil {
					return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
				}
				return projectSavedMsg{}
			}
		case "edit_project":
			id, name, hours, goal := v.editingID, *v.projectName, *v.projectHours, optText(*v.projectGoal)
			return v, func() tea.Msg {
				if err := v.store.UpdateProject(id, name, domain.ParseMoney(hours), goal); err != nil {
					return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
				}
				return projectSavedMsg{}
			}
		}
	}

	return v, cmd
}

func (v vectorModel) saveVector() tea.Cmd {
	wmin, wmax := domain.NormalizeWeightRange(
		domain.ParseWeight(*v.weightMin, domain.MinWeight),
		domain.ParseWeight(*v.weightMax, domain.MaxWeight),
	)
	sleepTarget := domain.SleepHoursFromParts(*v.sleepHours, *v.sleepMinutes)
	if sleepTarget == nil {
		sleepTarget = domain.SleepHoursFromString(*v.sleepDecimal)
	}

	payload := store.VectorPayload{
		StartDate:        strings.TrimSpace(*v.startDate),
		HorizonMonths:    defaultInt(*v.horizon, 12),
		IncomeTarget:     domain.ParseMoney(*v.incomeTarget),
		SleepTargetHours: sleepTarget,
		WeightMin:        wmin,
		WeightMax:        wmax,
		ProjectGoal:      strings.TrimSpace(*v.goal),
		MaxHoursWeek:     defaultInt(*v.maxHours, 0),
	}
	return func() tea.Msg {
		if err := v.store.UpdateVector(payload); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return vectorSavedMsg{}
	}
}

func defaultInt(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	return domain.ParseMoney(raw)
}

func (v vectorModel) view() string {
	if v.formActive && v.form != nil {
		title := "Edit vector"
		switch v.formType {
		case "project":
			title = "New project"
		case "edit_project":
			title = "Edit project"
		}
		return panelStyle.Width(v.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", v.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Vector"))
	rows = append(rows, "")

	if vec := v.vector; vec != nil {
		rows = append(rows, fmt.Sprintf("  %-18s %s, %d months", "Horizon", vec.StartDate, vec.HorizonMonths))
		rows = append(rows, fmt.Sprintf("  %-18s %d / month", "Income target", vec.IncomeTarget))
		rows = append(rows, fmt.Sprintf("  %-18s %sh", "Sleep target", formatOptFloat(vec.SleepTargetHours)))
		rows = append(rows, fmt.Sprintf("  %-18s %.1f — %.1f kg", "Weight range", vec.WeightMin, vec.WeightMax))
		rows = append(rows, fmt.Sprintf("  %-18s %d h/week", "Max hours", vec.MaxHoursWeek))
		rows = append(rows, fmt.Sprintf("  %-18s %s", "Project goal", vec.ProjectGoal))
	}

	rows = append(rows, "")
	rows = append(rows, titleStyle.Render("  Projects"))
	if len(v.projects) == 0 {
		rows = append(rows, mutedStyle.Render("    No projects yet. Press n to add one."))
	}
	for i, p := range v.projects {
		cursor := "    "
		style := normalItemStyle
		if i == v.cursor {
			cursor = "  > "
			style = selectedItemStyle
		}
		active := " "
		if p.IsActive {
			active = greenStyle.Render("●")
		}
		line := style.Render(fmt.Sprintf("%s%s %-24s %2d h/week", cursor, active, p.Name, p.MaxHoursWeek))
		if p.Goal != nil {
			line += mutedStyle.Render("  " + *p.Goal)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit vector  n: new/activate project  enter: edit project"))

	return panelStyle.Width(v.width - 4).Render(strings.Join(rows, "\n"))
}
