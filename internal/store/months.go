package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MonthReviewByKey returns the review for a "YYYY-MM" key with its
// per-week income map, or nil when none exists.
func (s *Store) MonthReviewByKey(monthKey string) (*MonthReview, error) {
	m := &MonthReview{}
	var incomeActual, trajectory sql.NullInt64
	var note, lockedAt sql.NullString
	var incomeDone, locked int
	var createdAt, updatedAt string

	err := s.db.QueryRow(
		`SELECT id, month, income_actual, actual_income_done, trajectory_quality, note, is_locked, locked_at, created_at, updated_at
		 FROM month_reviews WHERE month = ?`, monthKey,
	).Scan(&m.ID, &m.Month, &incomeActual, &incomeDone, &trajectory, &note, &locked, &lockedAt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get month review %s: %w", monthKey, err)
	}
	if incomeActual.Valid {
		v := int(incomeActual.Int64)
		m.IncomeActual = &v
	}
	m.IncomeDone = incomeDone == 1
	if trajectory.Valid {
		v := int(trajectory.Int64)
		m.TrajectoryQuality = &v
	}
	if note.Valid {
		m.Note = &note.String
	}
	m.Locked = locked == 1
	if lockedAt.Valid {
		t, _ := time.Parse(time.RFC3339, lockedAt.String)
		m.LockedAt = &t
	}
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	rows, err := s.db.Query(`SELECT week_start, income FROM month_week_income WHERE month_review_id = ?`, m.ID)
	if err != nil {
		return nil, fmt.Errorf("get month week income: %w", err)
	}
	defer rows.Close()

	m.WeekIncome = map[string]int{}
	for rows.Next() {
		var weekStart string
		var income int
		if err := rows.Scan(&weekStart, &income); err != nil {
			return nil, err
		}
		m.WeekIncome[weekStart] = income
	}
	return m, rows.Err()
}

// UpsertMonthReview writes the review keyed by month. A locked review
// silently ignores the save; locking is one-way and stamps locked_at.
// Week-income children are fully replaced on every unlocked save.
func (s *Store) UpsertMonthReview(p MonthReviewPayload) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin month upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	var id int64
	var locked int
	err = tx.QueryRow(`SELECT id, is_locked FROM month_reviews WHERE month = ?`, p.Month).Scan(&id, &locked)
	switch {
	case err == nil:
		if locked == 1 {
			return nil
		}
		_, err = tx.Exec(
			`UPDATE month_reviews
			 SET income_actual = ?, actual_income_done = ?, trajectory_quality = ?, note = ?,
			     is_locked = CASE WHEN ? THEN 1 ELSE is_locked END,
			     locked_at = CASE WHEN ? THEN ? ELSE locked_at END,
			     updated_at = ?
			 WHERE id = ?`,
			nullInt(p.IncomeActual), boolInt(p.IncomeDone), nullInt(p.TrajectoryQuality), nullString(p.Note),
			boolInt(p.Lock), boolInt(p.Lock), now, now, id,
		)
		if err != nil {
			return fmt.Errorf("update month review %s: %w", p.Month, err)
		}
		if _, err := tx.Exec(`DELETE FROM month_week_income WHERE month_review_id = ?`, id); err != nil {
			return fmt.Errorf("clear month week income: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		var lockedAt any
		if p.Lock {
			lockedAt = now
		}
		res, err := tx.Exec(
			`INSERT INTO month_reviews (month, income_actual, actual_income_done, trajectory_quality, note, is_locked, locked_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Month, nullInt(p.IncomeActual), boolInt(p.IncomeDone), nullInt(p.TrajectoryQuality),
			nullString(p.Note), boolInt(p.Lock), lockedAt,
		)
		if err != nil {
			return fmt.Errorf("insert month review %s: %w", p.Month, err)
		}
		id, _ = res.LastInsertId()
	default:
		return fmt.Errorf("find month review %s: %w", p.Month, err)
	}

	for weekStart, income := range p.WeekIncome {
		if _, err := tx.Exec(
			`INSERT INTO month_week_income (month_review_id, week_start, income) VALUES (?, ?, ?)`,
			id, weekStart, income,
		); err != nil {
			return fmt.Errorf("insert month week income: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit month upsert: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
