package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/dateutil"
	"github.com/sadopc/vectoros/internal/domain"
	"github.com/sadopc/vectoros/internal/store"
)

type weekModel struct {
	store  *store.Store
	width  int
	height int

	anchor string // any date inside the shown week
	week   *store.Week
	report *store.WeekReport
	days   []store.Day

	chart barchart.Model

	formActive bool
	form       *huh.Form

	trajectory *string
	note       *string
}

func newWeekModel(s *store.Store) weekModel {
	tr, note := "", ""
	return weekModel{
		store:      s,
		anchor:     dateutil.Today(),
		chart:      barchart.New(60, 10),
		trajectory: &tr,
		note:       &note,
	}
}

func (w *weekModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

type weekDataMsg struct {
	week   *store.Week
	report *store.WeekReport
	days   []store.Day
}

func (w weekModel) refresh() tea.Cmd {
	start, _ := dateutil.WeekRange(w.anchor)
	return func() tea.Msg {
		week, err := w.store.WeekByStart(start)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		report, err := w.store.WeekReportFor(start)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		var days []store.Day
		for i := 0; i < 7; i++ {
			d, err := w.store.DayByDate(dateutil.AddDays(start, i))
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
			}
			if d != nil {
				days = append(days, *d)
			}
		}
		return weekDataMsg{week: week, report: report, days: days}
	}
}

func (w weekModel) update(msg tea.Msg) (weekModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case weekDataMsg:
		w.week = msg.week
		w.report = msg.report
		w.days = msg.days
		w.buildChart()
		return w, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			w.anchor = dateutil.AddDays(w.anchor, -7)
			return w, w.refresh()
		case key.Matches(msg, keys.Right):
			w.anchor = dateutil.AddDays(w.anchor, 7)
			return w, w.refresh()
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return w.showForm()
		}
	}
	return w, nil
}

func (w *weekModel) buildChart() {
	chartWidth := w.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	w.chart = barchart.New(chartWidth, 10)

	start, _ := dateutil.WeekRange(w.anchor)
	byDate := map[string]store.Day{}
	for _, d := range w.days {
		byDate[d.Date] = d
	}

	deepStyle := lipgloss.NewStyle().Foreground(colorDeep)
	noiseStyle := lipgloss.NewStyle().Foreground(colorNoise)

	var bars []barchart.BarData
	for i := 0; i < 7; i++ {
		iso := dateutil.AddDays(start, i)
		t, _ := dateutil.ParseISO(iso)
		label := t.Format("Mon")

		values := []barchart.BarValue{
			{Name: "deep", Value: 0, Style: deepStyle},
			{Name: "noise", Value: 0, Style: noiseStyle},
		}
		if d, ok := byDate[iso]; ok {
			values[0].Value = float64(d.DeepMinutes) / 60
			values[1].Value = float64(d.NoiseMinutes) / 60
		}
		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	w.chart.PushAll(bars)
	w.chart.Draw()
}

func (w weekModel) showForm() (weekModel, tea.Cmd) {
	*w.trajectory, *w.note = "", ""
	if w.week != nil {
		*w.trajectory = scoreOrBlank(w.week.TrajectoryQuality)
		if w.week.Note != nil {
			*w.note = *w.week.Note
		}
	}

	options := []huh.Option[string]{huh.NewOption("—", "")}
	for i := 1; i <= 5; i++ {
		options = append(options, huh.NewOption(fmt.Sprintf("%d", i), fmt.Sprintf("%d", i)))
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Trajectory quality").Options(options...).Value(w.trajectory),
			huh.NewText().Title("Note").Value(w.note),
		),
	).WithShowHelp(true).WithShowErrors(true)

	w.formActive = true
	return w, w.form.Init()
}

func (w weekModel) updateForm(msg tea.Msg) (weekModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			w.formActive = false
			w.form = nil
			return w, nil
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.formActive = false
		start, _ := dateutil.WeekRange(w.anchor)
		trajectory := domain.ParseScore(*w.trajectory)
		note := optText(*w.note)
		return w, func() tea.Msg {
			if err := w.store.UpsertWeek(start, trajectory, note); err != nil {
				return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
			}
			return weekSavedMsg{}
		}
	}

	return w, cmd
}

func (w weekModel) view() string {
	start, end := dateutil.WeekRange(w.anchor)

	if w.formActive && w.form != nil {
		title := titleStyle.Render(fmt.Sprintf("Week review %s — %s", start, end))
		return panelStyle.Width(w.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", w.form.View()),
		)
	}

	var trajectory *int
	if w.week != nil {
		trajectory = w.week.TrajectoryQuality
	}

	flagCount := 0
	var flagLines, softLines []string
	if w.report != nil {
		flagCount = len(w.report.Deviation.Flags)
		for _, f := range w.report.Deviation.Flags {
			flagLines = append(flagLines, redStyle.Render("  ⚑ "+f))
		}
		for _, f := range w.report.Deviation.SoftFlags {
			softLines = append(softLines, yellowStyle.Render("  ○ "+f))
		}
	}
	status := domain.WeekStatus(trajectory, flagCount)

	var rows []string
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("Week %s — %s", start, end)), "  ", statusBadge(status),
	))
	rows = append(rows, "")
	rows = append(rows, w.chart.View())
	rows = append(rows, "")

	if r := w.report; r != nil {
		c := r.Current
		rows = append(rows, fmt.Sprintf("  %-18s %s", "Deep focus", highlightStyle.Render(formatMinutes(c.DeepMinutes))))
		rows = append(rows, fmt.Sprintf("  %-18s %s (%d%% of tracked)", "Noise", formatMinutes(c.NoiseMinutes), c.NoisePercent))
		rows = append(rows, fmt.Sprintf("  %-18s %d total, %d/day", "Steps", c.StepsTotal, c.AvgSteps))
		rows = append(rows, fmt.Sprintf("  %-18s %d", "Key moves", c.KeyMoves))
		rows = append(rows, fmt.Sprintf("  %-18s %d", "Training days", c.Trainings))
		rows = append(rows, fmt.Sprintf("  %-18s %.1f", "Speed", c.Speed))
		rows = append(rows, fmt.Sprintf("  %-18s avg %s  min %s  max %s  %s vs last week  (%d tracked)",
			"Sleep", formatOptFloat(c.SleepAvg), formatOptFloat(c.SleepMin), formatOptFloat(c.SleepMax),
			trendArrow(r.Deviation.SleepTrend), c.SleepTrackedDays))
	}

	if w.week != nil {
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("  %-18s %s", "Trajectory", formatOptInt(trajectory)))
		if w.week.Note != nil {
			rows = append(rows, fmt.Sprintf("  %-18s %s", "Note", *w.week.Note))
		}
	}

	if len(flagLines) > 0 {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("  Flags"))
		rows = append(rows, flagLines...)
	}
	if len(softLines) > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Advisory"))
		rows = append(rows, softLines...)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: review  ←/→: change week"))

	return panelStyle.Width(w.width - 4).Render(strings.Join(rows, "\n"))
}
