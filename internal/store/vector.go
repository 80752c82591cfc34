package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/vectoros/internal/dateutil"
)

// defaultProjectGoal seeds both the vector and the first active project.
const defaultProjectGoal = "1 completed commercial product"

func (s *Store) scanVector(row *sql.Row) (*Vector, error) {
	v := &Vector{}
	var sleepTarget sql.NullFloat64
	var createdAt, updatedAt string
	err := row.Scan(
		&v.ID, &v.StartDate, &v.HorizonMonths, &v.IncomeTarget, &sleepTarget,
		&v.WeightMin, &v.WeightMax, &v.ProjectGoal, &v.MaxHoursWeek,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sleepTarget.Valid {
		v.SleepTargetHours = &sleepTarget.Float64
	}
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	v.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return v, nil
}

const vectorSelect = `SELECT id, start_date, horizon_months, income_target, sleep_target_hours,
	weight_min, weight_max, project_goal, max_hours_week, created_at, updated_at
	FROM vector WHERE id = 1`

// EnsureVector returns the singleton vector row, creating it with
// defaults on first access.
func (s *Store) EnsureVector() (*Vector, error) {
	v, err := s.scanVector(s.db.QueryRow(vectorSelect))
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get vector: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO vector (id, start_date, horizon_months, income_target, sleep_target_hours, weight_min, weight_max, project_goal, max_hours_week)
		 VALUES (1, ?, 12, 500, NULL, 73, 75, ?, 35)`,
		dateutil.Today(), defaultProjectGoal,
	)
	if err != nil {
		return nil, fmt.Errorf("insert vector defaults: %w", err)
	}

	v, err = s.scanVector(s.db.QueryRow(vectorSelect))
	if err != nil {
		return nil, fmt.Errorf("get vector after insert: %w", err)
	}
	return v, nil
}

// UpdateVector overwrites every vector field; there is no partial patch.
func (s *Store) UpdateVector(p VectorPayload) error {
	if _, err := s.EnsureVector(); err != nil {
		return err
	}

	startDate := p.StartDate
	if !dateutil.IsValidISO(startDate) {
		startDate = dateutil.Today()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE vector
		 SET start_date = ?, horizon_months = ?, income_target = ?, sleep_target_hours = ?,
		     weight_min = ?, weight_max = ?, project_goal = ?, max_hours_week = ?, updated_at = ?
		 WHERE id = 1`,
		startDate, p.HorizonMonths, p.IncomeTarget, nullFloat(p.SleepTargetHours),
		p.WeightMin, p.WeightMax, p.ProjectGoal, p.MaxHoursWeek, now,
	)
	if err != nil {
		return fmt.Errorf("update vector: %w", err)
	}
	return nil
}

// nullFloat, nullInt and nullString adapt optional fields for Exec.
func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
