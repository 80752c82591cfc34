package store

import (
	"testing"

	"github.com/sadopc/vectoros/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// insertDay is a test helper that writes a minimal day row.
func insertDay(t *testing.T, s *Store, date string, deep, noise int) {
	t.Helper()
	if err := s.UpsertDay(DayPayload{Date: date, DeepMinutes: deep, NoiseMinutes: noise}); err != nil {
		t.Fatalf("insert day %s: %v", date, err)
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/vectoros.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

// ============================================================
// Vector
// ============================================================

func TestEnsureVectorDefaults(t *testing.T) {
	s := newTestStore(t)

	v, err := s.EnsureVector()
	if err != nil {
		t.Fatal(err)
	}
	if v.ID != 1 {
		t.Fatalf("expected singleton id 1, got %d", v.ID)
	}
	if v.HorizonMonths != 12 || v.IncomeTarget != 500 || v.MaxHoursWeek != 35 {
		t.Fatalf("unexpected defaults: %+v", v)
	}
	if v.WeightMin != 73 || v.WeightMax != 75 {
		t.Fatalf("unexpected weight corridor: %v..%v", v.WeightMin, v.WeightMax)
	}
	if v.SleepTargetHours != nil {
		t.Fatal("sleep target should default to unset")
	}
	if v.ProjectGoal != "1 completed commercial product" {
		t.Fatalf("unexpected project goal %q", v.ProjectGoal)
	}
	if v.StartDate == "" {
		t.Fatal("start date should be set")
	}

	// Second call must return the same row, not reseed.
	again, err := s.EnsureVector()
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != v.ID || again.StartDate != v.StartDate {
		t.Fatal("EnsureVector should be idempotent")
	}
}

func TestUpdateVector(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateVector(VectorPayload{
		StartDate:        "2026-01-05",
		HorizonMonths:    6,
		IncomeTarget:     1200,
		SleepTargetHours: floatPtr(7.5),
		WeightMin:        70,
		WeightMax:        72,
		ProjectGoal:      "ship the tracker",
		MaxHoursWeek:     30,
	})
	if err != nil {
		t.Fatal(err)
	}

	v, _ := s.EnsureVector()
	if v.StartDate != "2026-01-05" || v.HorizonMonths != 6 || v.IncomeTarget != 1200 {
		t.Fatalf("update failed: %+v", v)
	}
	if v.SleepTargetHours == nil || *v.SleepTargetHours != 7.5 {
		t.Fatalf("sleep target = %v", v.SleepTargetHours)
	}
	if v.ProjectGoal != "ship the tracker" || v.MaxHoursWeek != 30 {
		t.Fatalf("update failed: %+v", v)
	}
}

func TestUpdateVectorInvalidStartDate(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateVector(VectorPayload{StartDate: "not-a-date", HorizonMonths: 12}); err != nil {
		t.Fatal(err)
	}
	v, _ := s.EnsureVector()
	if v.StartDate == "not-a-date" || v.StartDate == "" {
		t.Fatalf("invalid start date should fall back to today, got %q", v.StartDate)
	}
}

// ============================================================
// Projects
// ============================================================

func TestAddOrActivateProject(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddOrActivateProject("Tracker", 20, strPtr("v1 release")); err != nil {
		t.Fatal(err)
	}
	active, _ := s.ActiveProject()
	if active == nil || active.Name != "Tracker" {
		t.Fatalf("active = %+v", active)
	}
	if active.MaxHoursWeek != 20 || active.Goal == nil || *active.Goal != "v1 release" {
		t.Fatalf("unexpected project: %+v", active)
	}
}

func TestAddOrActivateProjectBlankName(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddOrActivateProject("   ", 10, nil); err != nil {
		t.Fatal(err)
	}
	projects, _ := s.ListProjects()
	if len(projects) != 0 {
		t.Fatal("blank name should be a no-op")
	}
}

func TestAddOrActivateProjectSwitchesActive(t *testing.T) {
	s := newTestStore(t)

	s.AddOrActivateProject("First", 10, nil)
	s.AddOrActivateProject("Second", 15, nil)

	active, _ := s.ActiveProjects()
	if len(active) != 1 || active[0].Name != "Second" {
		t.Fatalf("expected only Second active, got %+v", active)
	}
	all, _ := s.ListProjects()
	if len(all) != 2 {
		t.Fatalf("expected 2 projects total, got %d", len(all))
	}
}

func TestAddOrActivateProjectCaseInsensitive(t *testing.T) {
	s := newTestStore(t)

	s.AddOrActivateProject("Tracker", 10, nil)
	s.AddOrActivateProject("Other", 5, nil)
	if err := s.AddOrActivateProject("TRACKER", 25, strPtr("new goal")); err != nil {
		t.Fatal(err)
	}

	all, _ := s.ListProjects()
	if len(all) != 2 {
		t.Fatalf("reactivation should not insert a duplicate, got %d rows", len(all))
	}
	active, _ := s.ActiveProject()
	if active == nil || active.Name != "Tracker" {
		t.Fatalf("active = %+v", active)
	}
	if active.MaxHoursWeek != 25 || active.Goal == nil || *active.Goal != "new goal" {
		t.Fatalf("reactivation should refresh fields: %+v", active)
	}
}

func TestEnsureActiveProjectFromVectorGoal(t *testing.T) {
	s := newTestStore(t)

	p, err := s.EnsureActiveProject()
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("expected a project")
	}
	v, _ := s.EnsureVector()
	if p.Name != v.ProjectGoal {
		t.Fatalf("project name %q should come from vector goal %q", p.Name, v.ProjectGoal)
	}
	if p.MaxHoursWeek != v.MaxHoursWeek {
		t.Fatalf("max hours %d != vector %d", p.MaxHoursWeek, v.MaxHoursWeek)
	}

	// Existing active project short-circuits.
	again, _ := s.EnsureActiveProject()
	if again.ID != p.ID {
		t.Fatal("second call should return the same project")
	}
}

func TestUpdateProject(t *testing.T) {
	s := newTestStore(t)
	s.AddOrActivateProject("Old", 10, nil)
	p, _ := s.ActiveProject()

	if err := s.UpdateProject(p.ID, "New name", 12, strPtr("goal")); err != nil {
		t.Fatal(err)
	}
	updated, _ := s.ActiveProject()
	if updated.Name != "New name" || updated.MaxHoursWeek != 12 {
		t.Fatalf("update failed: %+v", updated)
	}
}

func TestUpdateProjectGuards(t *testing.T) {
	s := newTestStore(t)
	s.AddOrActivateProject("Keep", 10, nil)
	p, _ := s.ActiveProject()

	s.UpdateProject(p.ID, "   ", 99, nil)
	s.UpdateProject(0, "Other", 99, nil)

	unchanged, _ := s.ActiveProject()
	if unchanged.Name != "Keep" || unchanged.MaxHoursWeek != 10 {
		t.Fatalf("guarded updates should be no-ops: %+v", unchanged)
	}
}

// ============================================================
// Days
// ============================================================

func TestDayByDateMissing(t *testing.T) {
	s := newTestStore(t)
	d, err := s.DayByDate("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if d != nil {
		t.Fatal("expected nil for an unlogged date")
	}
}

func TestUpsertDayRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.AddOrActivateProject("Tracker", 20, nil)
	p, _ := s.ActiveProject()

	payload := DayPayload{
		Date:          "2026-08-24",
		DeepMinutes:   95,
		NoiseMinutes:  30,
		SleepHours:    floatPtr(7.25),
		SleepQuality:  intPtr(4),
		SleepNote:     strPtr("late coffee"),
		Steps:         8200,
		KeyMove:       strPtr("shipped parser"),
		TrainingModes: []domain.TrainingMode{domain.TrainingLight, domain.TrainingStrength},
		ProjectEntries: []DayProjectEntry{
			{ProjectID: p.ID, KeyMove: strPtr("shipped parser")},
		},
	}
	if err := s.UpsertDay(payload); err != nil {
		t.Fatal(err)
	}

	d, err := s.DayByDate("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if d == nil {
		t.Fatal("expected day")
	}
	if d.DeepMinutes != 95 || d.NoiseMinutes != 30 || d.Steps != 8200 {
		t.Fatalf("unexpected day: %+v", d)
	}
	if d.SleepHours == nil || *d.SleepHours != 7.25 {
		t.Fatalf("sleep hours = %v", d.SleepHours)
	}
	if d.SleepQuality == nil || *d.SleepQuality != 4 {
		t.Fatalf("sleep quality = %v", d.SleepQuality)
	}
	if len(d.TrainingModes) != 2 {
		t.Fatalf("training modes = %v", d.TrainingModes)
	}
	if len(d.ProjectEntries) != 1 || d.ProjectEntries[0].ProjectID != p.ID {
		t.Fatalf("project entries = %+v", d.ProjectEntries)
	}
	if d.ProjectEntries[0].KeyMove == nil || *d.ProjectEntries[0].KeyMove != "shipped parser" {
		t.Fatalf("key move = %v", d.ProjectEntries[0].KeyMove)
	}
}

func TestUpsertDayReplacesChildren(t *testing.T) {
	s := newTestStore(t)
	s.AddOrActivateProject("Tracker", 20, nil)
	p, _ := s.ActiveProject()

	s.UpsertDay(DayPayload{
		Date:          "2026-08-24",
		DeepMinutes:   60,
		TrainingModes: []domain.TrainingMode{domain.TrainingLight, domain.TrainingCardio},
		ProjectEntries: []DayProjectEntry{
			{ProjectID: p.ID, KeyMove: strPtr("draft")},
		},
	})
	// Second save of the same date fully replaces both child sets.
	if err := s.UpsertDay(DayPayload{
		Date:          "2026-08-24",
		DeepMinutes:   120,
		TrainingModes: []domain.TrainingMode{domain.TrainingStrength},
	}); err != nil {
		t.Fatal(err)
	}

	d, _ := s.DayByDate("2026-08-24")
	if d.DeepMinutes != 120 {
		t.Fatalf("deep = %d", d.DeepMinutes)
	}
	if len(d.TrainingModes) != 1 || d.TrainingModes[0] != domain.TrainingStrength {
		t.Fatalf("training modes = %v", d.TrainingModes)
	}
	if len(d.ProjectEntries) != 0 {
		t.Fatalf("project entries should be cleared, got %+v", d.ProjectEntries)
	}

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM days WHERE date = ?`, "2026-08-24").Scan(&count)
	if count != 1 {
		t.Fatalf("expected 1 day row, got %d", count)
	}
}

func TestUpsertDayNoneModeNotStored(t *testing.T) {
	s := newTestStore(t)

	s.UpsertDay(DayPayload{
		Date:          "2026-08-24",
		TrainingModes: []domain.TrainingMode{domain.TrainingNone},
	})

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM day_training`).Scan(&count)
	if count != 0 {
		t.Fatalf("none should not be stored, got %d rows", count)
	}

	// Reads still surface it as the explicit no-training marker.
	d, _ := s.DayByDate("2026-08-24")
	if len(d.TrainingModes) != 1 || d.TrainingModes[0] != domain.TrainingNone {
		t.Fatalf("training modes = %v", d.TrainingModes)
	}
}

// ============================================================
// Weeks
// ============================================================

func TestWeekByStartMissing(t *testing.T) {
	s := newTestStore(t)
	w, err := s.WeekByStart("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if w != nil {
		t.Fatal("expected nil for an unsaved week")
	}
}

func TestUpsertWeek(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpsertWeek("2026-08-24", intPtr(3), strPtr("steady")); err != nil {
		t.Fatal(err)
	}
	w, _ := s.WeekByStart("2026-08-24")
	if w == nil || w.TrajectoryQuality == nil || *w.TrajectoryQuality != 3 {
		t.Fatalf("week = %+v", w)
	}

	// Updating the same week clears optional fields when nil.
	if err := s.UpsertWeek("2026-08-24", nil, nil); err != nil {
		t.Fatal(err)
	}
	w, _ = s.WeekByStart("2026-08-24")
	if w.TrajectoryQuality != nil || w.Note != nil {
		t.Fatalf("fields should be cleared: %+v", w)
	}

	var count int
	s.db.QueryRow(`SELECT COUNT(*) FROM weeks`).Scan(&count)
	if count != 1 {
		t.Fatalf("expected 1 week row, got %d", count)
	}
}

// ============================================================
// Month reviews
// ============================================================

func TestMonthReviewRoundTrip(t *testing.T) {
	s := newTestStore(t)

	err := s.UpsertMonthReview(MonthReviewPayload{
		Month:             "2026-08",
		IncomeActual:      intPtr(520),
		IncomeDone:        true,
		TrajectoryQuality: intPtr(4),
		Note:              strPtr("good month"),
		WeekIncome:        map[string]int{"2026-08-03": 120, "2026-08-10": 200},
	})
	if err != nil {
		t.Fatal(err)
	}

	m, err := s.MonthReviewByKey("2026-08")
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("expected review")
	}
	if m.IncomeActual == nil || *m.IncomeActual != 520 || !m.IncomeDone {
		t.Fatalf("income = %v done=%v", m.IncomeActual, m.IncomeDone)
	}
	if m.Locked || m.LockedAt != nil {
		t.Fatal("should not be locked")
	}
	if len(m.WeekIncome) != 2 || m.WeekIncome["2026-08-10"] != 200 {
		t.Fatalf("week income = %v", m.WeekIncome)
	}
}

func TestMonthReviewByKeyMissing(t *testing.T) {
	s := newTestStore(t)
	m, err := s.MonthReviewByKey("2026-08")
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Fatal("expected nil for a month with no review")
	}
}

func TestMonthReviewWeekIncomeReplaced(t *testing.T) {
	s := newTestStore(t)

	s.UpsertMonthReview(MonthReviewPayload{
		Month:      "2026-08",
		WeekIncome: map[string]int{"2026-08-03": 100, "2026-08-10": 100},
	})
	s.UpsertMonthReview(MonthReviewPayload{
		Month:      "2026-08",
		WeekIncome: map[string]int{"2026-08-17": 300},
	})

	m, _ := s.MonthReviewByKey("2026-08")
	if len(m.WeekIncome) != 1 || m.WeekIncome["2026-08-17"] != 300 {
		t.Fatalf("week income should be fully replaced, got %v", m.WeekIncome)
	}
}

func TestMonthReviewLockIsOneWay(t *testing.T) {
	s := newTestStore(t)

	s.UpsertMonthReview(MonthReviewPayload{
		Month:        "2026-08",
		IncomeActual: intPtr(500),
		Lock:         true,
	})
	m, _ := s.MonthReviewByKey("2026-08")
	if !m.Locked || m.LockedAt == nil {
		t.Fatalf("lock should stick with timestamp: %+v", m)
	}

	// A later save against the locked month is silently ignored.
	err := s.UpsertMonthReview(MonthReviewPayload{
		Month:        "2026-08",
		IncomeActual: intPtr(999),
		Note:         strPtr("should not land"),
		WeekIncome:   map[string]int{"2026-08-03": 999},
	})
	if err != nil {
		t.Fatalf("locked save should not error: %v", err)
	}

	m, _ = s.MonthReviewByKey("2026-08")
	if *m.IncomeActual != 500 {
		t.Fatalf("locked review changed: income = %d", *m.IncomeActual)
	}
	if m.Note != nil || len(m.WeekIncome) != 0 {
		t.Fatalf("locked review changed: %+v", m)
	}
	if !m.Locked {
		t.Fatal("lock dropped")
	}
}

func TestMonthReviewLockOnExisting(t *testing.T) {
	s := newTestStore(t)

	s.UpsertMonthReview(MonthReviewPayload{Month: "2026-08", IncomeActual: intPtr(400)})
	s.UpsertMonthReview(MonthReviewPayload{Month: "2026-08", IncomeActual: intPtr(450), Lock: true})

	m, _ := s.MonthReviewByKey("2026-08")
	if !m.Locked || m.LockedAt == nil {
		t.Fatal("expected lock with timestamp")
	}
	if *m.IncomeActual != 450 {
		t.Fatalf("locking save should still write values, got %d", *m.IncomeActual)
	}
}

// ============================================================
// Notes
// ============================================================

func TestAddNoteAndList(t *testing.T) {
	s := newTestStore(t)

	s.AddNote("2026-08-24", "first")
	s.AddNote("2026-08-24", "second")
	s.AddNote("2026-08-25", "other day")

	notes, err := s.NotesForDate("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	// Creation order
	if notes[0].Text != "first" || notes[1].Text != "second" {
		t.Fatalf("wrong order: %+v", notes)
	}
}

func TestAddNoteBlank(t *testing.T) {
	s := newTestStore(t)
	s.AddNote("2026-08-24", "   ")
	notes, _ := s.NotesForDate("2026-08-24")
	if len(notes) != 0 {
		t.Fatal("blank note should be a no-op")
	}
}

func TestSetNoteDone(t *testing.T) {
	s := newTestStore(t)
	s.AddNote("2026-08-24", "todo")
	notes, _ := s.NotesForDate("2026-08-24")

	if err := s.SetNoteDone(notes[0].ID, true, "2026-08-24"); err != nil {
		t.Fatal(err)
	}
	notes, _ = s.NotesForDate("2026-08-24")
	if !notes[0].Done {
		t.Fatal("note should be done")
	}

	s.SetNoteDone(notes[0].ID, false, "2026-08-24")
	notes, _ = s.NotesForDate("2026-08-24")
	if notes[0].Done {
		t.Fatal("note should be un-done")
	}
}

func TestSetNoteDoneScopedToDate(t *testing.T) {
	s := newTestStore(t)
	s.AddNote("2026-08-24", "todo")
	notes, _ := s.NotesForDate("2026-08-24")

	// Wrong date: no row matches, nothing flips.
	s.SetNoteDone(notes[0].ID, true, "2026-08-25")
	notes, _ = s.NotesForDate("2026-08-24")
	if notes[0].Done {
		t.Fatal("toggle against the wrong date should not land")
	}
}

func TestSetNoteDoneGuard(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetNoteDone(0, true, "2026-08-24"); err != nil {
		t.Fatalf("non-positive id should be a no-op, got %v", err)
	}
}

func TestNotesArchive(t *testing.T) {
	s := newTestStore(t)
	s.AddNote("2026-08-20", "old one")
	s.AddNote("2026-08-22", "old two")
	s.AddNote("2026-08-24", "today")

	archive, err := s.NotesArchive("2026-08-24", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(archive) != 2 {
		t.Fatalf("expected 2 archived notes, got %d", len(archive))
	}
	// Newest first
	if archive[0].Date != "2026-08-22" || archive[1].Date != "2026-08-20" {
		t.Fatalf("wrong order: %+v", archive)
	}

	limited, _ := s.NotesArchive("2026-08-24", 1)
	if len(limited) != 1 {
		t.Fatalf("limit not applied, got %d", len(limited))
	}
}

// ============================================================
// Range stats
// ============================================================

func TestRangeDayStatsEmpty(t *testing.T) {
	s := newTestStore(t)
	stats, err := s.RangeDayStats("2026-08-24", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if stats.DaysCount != 0 || stats.DeepMinutes != 0 || stats.NoisePercent != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.SleepAvg != nil {
		t.Fatal("sleep avg should be unset with no tracked days")
	}
}

func TestRangeDayStatsAggregation(t *testing.T) {
	s := newTestStore(t)

	s.UpsertDay(DayPayload{
		Date: "2026-08-24", DeepMinutes: 120, NoiseMinutes: 40,
		Steps: 6000, SleepHours: floatPtr(7.0),
		TrainingModes: []domain.TrainingMode{domain.TrainingLight},
		KeyMove:       strPtr("wrote spec"),
	})
	s.UpsertDay(DayPayload{
		Date: "2026-08-25", DeepMinutes: 180, NoiseMinutes: 60,
		Steps: 9000, SleepHours: floatPtr(8.5),
	})
	// Outside the range: must not count.
	s.UpsertDay(DayPayload{Date: "2026-08-31", DeepMinutes: 999})

	stats, err := s.RangeDayStats("2026-08-24", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if stats.DeepMinutes != 300 || stats.NoiseMinutes != 100 {
		t.Fatalf("minutes = %d/%d", stats.DeepMinutes, stats.NoiseMinutes)
	}
	if stats.DaysCount != 2 || stats.StepsTotal != 15000 || stats.AvgSteps != 7500 {
		t.Fatalf("steps = %+v", stats)
	}
	if stats.NoisePercent != 25 {
		t.Fatalf("noise%% = %d", stats.NoisePercent)
	}
	if stats.KeyMoves != 1 || stats.Trainings != 1 {
		t.Fatalf("keymoves=%d trainings=%d", stats.KeyMoves, stats.Trainings)
	}
	// speed = 300/60 + 1*2
	if stats.Speed != 7 {
		t.Fatalf("speed = %v", stats.Speed)
	}
	if stats.SleepTrackedDays != 2 || stats.SleepAvg == nil || *stats.SleepAvg != 7.75 {
		t.Fatalf("sleep = %+v", stats)
	}
	if stats.SleepConsistency == nil || *stats.SleepConsistency != 1.5 {
		t.Fatalf("consistency = %v", stats.SleepConsistency)
	}
}

func TestRangeDayStatsKeyMovesPerProject(t *testing.T) {
	s := newTestStore(t)
	s.AddOrActivateProject("A", 10, nil)
	a, _ := s.ActiveProject()
	s.AddOrActivateProject("B", 10, nil)
	b, _ := s.ActiveProject()

	// With project entries present, key moves count per project and the
	// day-level field is ignored.
	s.UpsertDay(DayPayload{
		Date:    "2026-08-24",
		KeyMove: strPtr("day-level leftover"),
		ProjectEntries: []DayProjectEntry{
			{ProjectID: a.ID, KeyMove: strPtr("shipped A")},
			{ProjectID: b.ID, KeyMove: strPtr("shipped B")},
		},
	})
	// Blank project key move does not count.
	s.UpsertDay(DayPayload{
		Date: "2026-08-25",
		ProjectEntries: []DayProjectEntry{
			{ProjectID: a.ID, KeyMove: strPtr("   ")},
		},
	})
	// No entries: the day-level key move is the fallback.
	s.UpsertDay(DayPayload{Date: "2026-08-26", KeyMove: strPtr("solo move")})

	stats, err := s.RangeDayStats("2026-08-24", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if stats.KeyMoves != 3 {
		t.Fatalf("key moves = %d, want 3", stats.KeyMoves)
	}
}

// ============================================================
// Week report
// ============================================================

func TestWeekReportFlags(t *testing.T) {
	s := newTestStore(t)

	// Previous week: low deep work, no key moves.
	insertDay(t, s, "2026-08-18", 100, 0)
	// Current week: low deep work, no key moves, heavy noise share.
	insertDay(t, s, "2026-08-24", 100, 100)

	report, err := s.WeekReportFor("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if report.Current.DeepMinutes != 100 || report.Previous.DeepMinutes != 100 {
		t.Fatalf("ranges wrong: %+v", report)
	}

	want := []string{domain.FlagNoKeyMoves, domain.FlagNoiseShare, domain.FlagLowDeepWork}
	if len(report.Deviation.Flags) != len(want) {
		t.Fatalf("flags = %v", report.Deviation.Flags)
	}
	for i, f := range want {
		if report.Deviation.Flags[i] != f {
			t.Fatalf("flag[%d] = %q, want %q", i, report.Deviation.Flags[i], f)
		}
	}
}

func TestWeekReportClean(t *testing.T) {
	s := newTestStore(t)

	// Both weeks comfortably above thresholds.
	for _, date := range []string{"2026-08-18", "2026-08-19", "2026-08-24", "2026-08-25"} {
		if err := s.UpsertDay(DayPayload{
			Date: date, DeepMinutes: 240, NoiseMinutes: 30,
			KeyMove: strPtr("progress"),
		}); err != nil {
			t.Fatal(err)
		}
	}

	report, err := s.WeekReportFor("2026-08-24")
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Deviation.Flags) != 0 {
		t.Fatalf("expected no flags, got %v", report.Deviation.Flags)
	}
}

func TestSleepTrendVsPrevMonth(t *testing.T) {
	s := newTestStore(t)

	s.UpsertDay(DayPayload{Date: "2026-07-10", SleepHours: floatPtr(7.0)})
	s.UpsertDay(DayPayload{Date: "2026-07-11", SleepHours: floatPtr(7.0)})

	trend, err := s.SleepTrendVsPrevMonth("2026-08", floatPtr(8.0))
	if err != nil {
		t.Fatal(err)
	}
	if trend != domain.TrendUp {
		t.Fatalf("trend = %v, want up", trend)
	}

	trend, _ = s.SleepTrendVsPrevMonth("2026-08", nil)
	if trend != domain.TrendNA {
		t.Fatalf("trend = %v, want n/a", trend)
	}
}
