package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/vectoros/internal/dateutil"
	"github.com/sadopc/vectoros/internal/domain"
	"github.com/sadopc/vectoros/internal/store"
)

type monthModel struct {
	store  *store.Store
	width  int
	height int

	monthKey   string
	review     *store.MonthReview
	vector     *store.Vector
	stats      domain.RangeStats
	sleepTrend domain.TrendKind
	weeks      []dateutil.WeekSpan

	formActive bool
	form       *huh.Form

	incomeActual *string
	incomeDone   *bool
	trajectory   *string
	note         *string
	lock         *bool
	weekIncome   map[string]*string
}

func newMonthModel(s *store.Store) monthModel {
	income, tr, note := "", "", ""
	done, lock := false, false
	return monthModel{
		store:        s,
		monthKey:     dateutil.MonthKey(time.Now()),
		incomeActual: &income,
		incomeDone:   &done,
		trajectory:   &tr,
		note:         &note,
		lock:         &lock,
		weekIncome:   map[string]*string{},
	}
}

func (m *monthModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type monthDataMsg struct {
	review     *store.MonthReview
	vector     *store.Vector
	stats      domain.RangeStats
	sleepTrend domain.TrendKind
	weeks      []dateutil.WeekSpan
}

func (m monthModel) refresh() tea.Cmd {
	monthKey := m.monthKey
	return func() tea.Msg {
		review, err := m.store.MonthReviewByKey(monthKey)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		vector, err := m.store.EnsureVector()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		start, end := dateutil.MonthRange(monthKey)
		stats, err := m.store.RangeDayStats(start, end)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		trend, err := m.store.SleepTrendVsPrevMonth(monthKey, stats.SleepAvg)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return monthDataMsg{
			review:     review,
			vector:     vector,
			stats:      stats,
			sleepTrend: trend,
			weeks:      dateutil.MonthWeeks(monthKey),
		}
	}
}

func (m monthModel) update(msg tea.Msg) (monthModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case monthDataMsg:
		m.review = msg.review
		m.vector = msg.vector
		m.stats = msg.stats
		m.sleepTrend = msg.sleepTrend
		m.weeks = msg.weeks
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.monthKey = dateutil.AddMonths(m.monthKey, -1)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.monthKey = dateutil.AddMonths(m.monthKey, 1)
			return m, m.refresh()
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter), key.Matches(msg, keys.Lock):
			if m.review != nil && m.review.Locked {
				return m, func() tea.Msg {
					return statusMsg{text: "Month review is locked"}
				}
			}
			return m.showForm()
		}
	}
	return m, nil
}

func (m monthModel) showForm() (monthModel, tea.Cmd) {
	*m.incomeActual, *m.trajectory, *m.note = "", "", ""
	*m.incomeDone, *m.lock = false, false
	m.weekIncome = map[string]*string{}

	if r := m.review; r != nil {
		if r.IncomeActual != nil {
			*m.incomeActual = fmt.Sprintf("%d", *r.IncomeActual)
		}
		*m.incomeDone = r.IncomeDone
		*m.trajectory = scoreOrBlank(r.TrajectoryQuality)
		if r.Note != nil {
			*m.note = *r.Note
		}
	}

	options := []huh.Option[string]{huh.NewOption("—", "")}
	for i := 1; i <= 5; i++ {
		options = append(options, huh.NewOption(fmt.Sprintf("%d", i), fmt.Sprintf("%d", i)))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Actual income").Value(m.incomeActual),
			huh.NewConfirm().Title("Income fully entered?").Value(m.incomeDone),
			huh.NewSelect[string]().Title("Trajectory quality").Options(options...).Value(m.trajectory),
			huh.NewText().Title("Note").Value(m.note),
		).Title("Review"),
	}

	var weekFields []huh.Field
	for _, span := range m.weeks {
		v := ""
		if m.review != nil {
			if income, ok := m.review.WeekIncome[span.Start]; ok {
				v = fmt.Sprintf("%d", income)
			}
		}
		ptr := &v
		m.weekIncome[span.Start] = ptr
		weekFields = append(weekFields, huh.NewInput().
			Title(fmt.Sprintf("Income %s — %s", span.Start, span.End)).Value(ptr))
	}
	if len(weekFields) > 0 {
		groups = append(groups, huh.NewGroup(weekFields...).Title("Weekly income"))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().Title("Lock this month?").Description("Locking is permanent").Value(m.lock),
	))

	m.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m monthModel) updateForm(msg tea.Msg) (monthModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.save()
	}

	return m, cmd
}

func (m monthModel) save() tea.Cmd {
	payload := store.MonthReviewPayload{
		Month:             m.monthKey,
		IncomeDone:        *m.incomeDone,
		TrajectoryQuality: domain.ParseScore(*m.trajectory),
		Note:              optText(*m.note),
		WeekIncome:        map[string]int{},
		Lock:              *m.lock,
	}
	if strings.TrimSpace(*m.incomeActual) != "" {
		v := domain.ParseMoney(*m.incomeActual)
		payload.IncomeActual = &v
	}
	for weekStart, ptr := range m.weekIncome {
		if strings.TrimSpace(*ptr) == "" {
			continue
		}
		payload.WeekIncome[weekStart] = domain.ParseMoney(*ptr)
	}

	locked := payload.Lock
	return func() tea.Msg {
		if err := m.store.UpsertMonthReview(payload); err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return monthSavedMsg{locked: locked}
	}
}

func (m monthModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Month review " + m.monthKey)
		return panelStyle.Width(m.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	var rows []string
	header := titleStyle.Render("Month " + m.monthKey)
	if m.review != nil && m.review.Locked {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "  ", badgeRedStyle.Render("LOCKED"))
	}
	rows = append(rows, header)
	rows = append(rows, "")

	if m.vector != nil {
		var actual *int
		if m.review != nil {
			actual = m.review.IncomeActual
		}
		income := domain.IncomeStatus(m.vector.IncomeTarget, actual)
		line := fmt.Sprintf("  %-18s target %d, actual %s — %s", "Income",
			m.vector.IncomeTarget, formatOptInt(actual), incomeLabel(income.Kind))
		if income.Delta != nil {
			line += fmt.Sprintf(" (%+d)", *income.Delta)
		}
		rows = append(rows, line)
	}

	rows = append(rows, fmt.Sprintf("  %-18s %s", "Deep focus", formatMinutes(m.stats.DeepMinutes)))
	rows = append(rows, fmt.Sprintf("  %-18s %d%% of tracked", "Noise share", m.stats.NoisePercent))
	rows = append(rows, fmt.Sprintf("  %-18s %d", "Key moves", m.stats.KeyMoves))
	rows = append(rows, fmt.Sprintf("  %-18s avg %s  %s vs last month", "Sleep",
		formatOptFloat(m.stats.SleepAvg), trendArrow(m.sleepTrend)))

	if r := m.review; r != nil {
		rows = append(rows, fmt.Sprintf("  %-18s %s", "Trajectory", formatOptInt(r.TrajectoryQuality)))
		if r.Note != nil {
			rows = append(rows, fmt.Sprintf("  %-18s %s", "Note", *r.Note))
		}
	}

	if len(m.weeks) > 0 {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("  Weeks"))
		for _, span := range m.weeks {
			income := "—"
			if m.review != nil {
				if v, ok := m.review.WeekIncome[span.Start]; ok {
					income = fmt.Sprintf("%d", v)
				}
			}
			rows = append(rows, fmt.Sprintf("    %s — %s  income %s", span.Start, span.End, income))
		}
	}

	rows = append(rows, "")
	hint := "  e: review  ←/→: change month"
	if m.review != nil && m.review.Locked {
		hint = "  locked — read only  ←/→: change month"
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(m.width - 4).Render(strings.Join(rows, "\n"))
}

func incomeLabel(k domain.IncomeStatusKind) string {
	switch k {
	case domain.IncomeAhead:
		return greenStyle.Render("ahead")
	case domain.IncomeBehind:
		return redStyle.Render("behind")
	default:
		return yellowStyle.Render("on track")
	}
}
