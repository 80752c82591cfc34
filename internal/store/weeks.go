package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// WeekByStart returns the review row for a Monday-aligned week start,
// or nil when none was saved.
func (s *Store) WeekByStart(weekStart string) (*Week, error) {
	w := &Week{}
	var trajectory sql.NullInt64
	var note sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRow(
		`SELECT id, week_start, trajectory_quality, note, created_at, updated_at FROM weeks WHERE week_start = ?`,
		weekStart,
	).Scan(&w.ID, &w.WeekStart, &trajectory, &note, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get week %s: %w", weekStart, err)
	}
	if trajectory.Valid {
		q := int(trajectory.Int64)
		w.TrajectoryQuality = &q
	}
	if note.Valid {
		w.Note = &note.String
	}
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	w.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return w, nil
}

// UpsertWeek writes the week review keyed by its start date.
func (s *Store) UpsertWeek(weekStart string, trajectoryQuality *int, note *string) error {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM weeks WHERE week_start = ?`, weekStart).Scan(&id)
	switch {
	case err == nil:
		now := time.Now().UTC().Format(time.RFC3339)
		_, err = s.db.Exec(
			`UPDATE weeks SET trajectory_quality = ?, note = ?, updated_at = ? WHERE id = ?`,
			nullInt(trajectoryQuality), nullString(note), now, id,
		)
		if err != nil {
			return fmt.Errorf("update week %s: %w", weekStart, err)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(
			`INSERT INTO weeks (week_start, trajectory_quality, note) VALUES (?, ?, ?)`,
			weekStart, nullInt(trajectoryQuality), nullString(note),
		)
		if err != nil {
			return fmt.Errorf("insert week %s: %w", weekStart, err)
		}
		return nil
	default:
		return fmt.Errorf("find week %s: %w", weekStart, err)
	}
}
