package store

import (
	"database/sql"
	"fmt"

	"github.com/sadopc/vectoros/internal/dateutil"
	"github.com/sadopc/vectoros/internal/domain"
)

// RangeDayStats aggregates every day in the inclusive [startIso,
// endIso] range with a single rollup query, then derives the
// request-time stats in the domain layer. Nothing is cached.
func (s *Store) RangeDayStats(startIso, endIso string) (domain.RangeStats, error) {
	var t domain.RangeTotals
	var sleepAvg, sleepMin, sleepMax sql.NullFloat64

	err := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(d.deep_minutes), 0),
			COALESCE(SUM(d.noise_minutes), 0),
			COALESCE(SUM(d.steps), 0),
			COALESCE(SUM(
				CASE
					WHEN EXISTS (SELECT 1 FROM day_project dp0 WHERE dp0.day_id = d.id)
						THEN (
							SELECT COUNT(*)
							FROM day_project dp1
							WHERE dp1.day_id = d.id
							  AND dp1.key_move IS NOT NULL
							  AND trim(dp1.key_move) <> ''
						)
					ELSE CASE WHEN d.key_move IS NOT NULL AND trim(d.key_move) <> '' THEN 1 ELSE 0 END
				END
			), 0),
			COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM day_training dt WHERE dt.day_id = d.id) THEN 1 ELSE 0 END), 0),
			COUNT(*),
			AVG(d.sleep_hours),
			MIN(d.sleep_hours),
			MAX(d.sleep_hours),
			COUNT(d.sleep_hours)
		FROM days d
		WHERE d.date BETWEEN ? AND ?`,
		startIso, endIso,
	).Scan(
		&t.DeepMinutes, &t.NoiseMinutes, &t.StepsTotal, &t.KeyMoves, &t.Trainings,
		&t.DaysCount, &sleepAvg, &sleepMin, &sleepMax, &t.SleepTrackedDays,
	)
	if err != nil {
		return domain.RangeStats{}, fmt.Errorf("range day stats %s..%s: %w", startIso, endIso, err)
	}
	if sleepAvg.Valid {
		t.SleepAvg = &sleepAvg.Float64
	}
	if sleepMin.Valid {
		t.SleepMin = &sleepMin.Float64
	}
	if sleepMax.Valid {
		t.SleepMax = &sleepMax.Float64
	}
	return domain.ComputeRangeStats(t), nil
}

// WeekReport bundles a week's aggregates with its deviation result.
type WeekReport struct {
	Current   domain.RangeStats
	Previous  domain.RangeStats
	Deviation domain.Deviation
}

// WeekReportFor computes the deviation report for the week starting
// at weekStartIso. The previous week is the one containing the day
// before the start.
func (s *Store) WeekReportFor(weekStartIso string) (*WeekReport, error) {
	weekEnd := dateutil.AddDays(weekStartIso, 6)
	current, err := s.RangeDayStats(weekStartIso, weekEnd)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := dateutil.WeekRange(dateutil.AddDays(weekStartIso, -1))
	previous, err := s.RangeDayStats(prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	vector, err := s.EnsureVector()
	if err != nil {
		return nil, err
	}

	return &WeekReport{
		Current:   current,
		Previous:  previous,
		Deviation: domain.WeekDeviation(current, previous, vector.SleepTargetHours),
	}, nil
}

// SleepTrendVsPrevMonth compares a month's average sleep with the
// previous calendar month's.
func (s *Store) SleepTrendVsPrevMonth(monthKey string, currentAvg *float64) (domain.TrendKind, error) {
	prevStart, prevEnd := dateutil.MonthRange(dateutil.PrevMonthKey(monthKey))
	prev, err := s.RangeDayStats(prevStart, prevEnd)
	if err != nil {
		return domain.TrendNA, err
	}
	return domain.Trend(currentAvg, prev.SleepAvg), nil
}
