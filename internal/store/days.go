package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/vectoros/internal/domain"
)

// DayByDate returns the day logged for an ISO date with its training
// modes and project entries, or nil when nothing was logged.
func (s *Store) DayByDate(iso string) (*Day, error) {
	d := &Day{}
	var sleepHours sql.NullFloat64
	var sleepQuality sql.NullInt64
	var sleepNote, keyMove sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRow(
		`SELECT id, date, deep_minutes, noise_minutes, sleep_hours, sleep_quality, sleep_note, steps, key_move, created_at, updated_at
		 FROM days WHERE date = ?`, iso,
	).Scan(&d.ID, &d.Date, &d.DeepMinutes, &d.NoiseMinutes, &sleepHours, &sleepQuality, &sleepNote, &d.Steps, &keyMove, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day %s: %w", iso, err)
	}
	if sleepHours.Valid {
		d.SleepHours = &sleepHours.Float64
	}
	if sleepQuality.Valid {
		q := int(sleepQuality.Int64)
		d.SleepQuality = &q
	}
	if sleepNote.Valid {
		d.SleepNote = &sleepNote.String
	}
	if keyMove.Valid {
		d.KeyMove = &keyMove.String
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if d.TrainingModes, err = s.dayTrainingModes(d.ID); err != nil {
		return nil, err
	}
	if d.ProjectEntries, err = s.dayProjectEntries(d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) dayTrainingModes(dayID int64) ([]domain.TrainingMode, error) {
	rows, err := s.db.Query(`SELECT type FROM day_training WHERE day_id = ? ORDER BY id`, dayID)
	if err != nil {
		return nil, fmt.Errorf("day training modes: %w", err)
	}
	defer rows.Close()

	var modes []domain.TrainingMode
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		modes = append(modes, domain.TrainingMode(m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// "none" rows are never stored; an empty set means no training.
	if len(modes) == 0 {
		modes = []domain.TrainingMode{domain.TrainingNone}
	}
	return modes, nil
}

func (s *Store) dayProjectEntries(dayID int64) ([]DayProjectEntry, error) {
	rows, err := s.db.Query(`SELECT project_id, key_move FROM day_project WHERE day_id = ? ORDER BY id`, dayID)
	if err != nil {
		return nil, fmt.Errorf("day project entries: %w", err)
	}
	defer rows.Close()

	var entries []DayProjectEntry
	for rows.Next() {
		var e DayProjectEntry
		var keyMove sql.NullString
		if err := rows.Scan(&e.ProjectID, &keyMove); err != nil {
			return nil, err
		}
		if keyMove.Valid {
			e.KeyMove = &keyMove.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertDay writes a day keyed by its date and fully replaces both
// child sets (training modes, project entries). The whole write runs
// in one transaction so children can never outlive their parent state.
func (s *Store) UpsertDay(p DayPayload) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin day upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	var dayID int64
	err = tx.QueryRow(`SELECT id FROM days WHERE date = ?`, p.Date).Scan(&dayID)
	switch {
	case err == nil:
		_, err = tx.Exec(
			`UPDATE days SET deep_minutes = ?, noise_minutes = ?, sleep_hours = ?, sleep_quality = ?, sleep_note = ?, steps = ?, key_move = ?, updated_at = ?
			 WHERE id = ?`,
			p.DeepMinutes, p.NoiseMinutes, nullFloat(p.SleepHours), nullInt(p.SleepQuality),
			nullString(p.SleepNote), p.Steps, nullString(p.KeyMove), now, dayID,
		)
		if err != nil {
			return fmt.Errorf("update day %s: %w", p.Date, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(
			`INSERT INTO days (date, deep_minutes, noise_minutes, sleep_hours, sleep_quality, sleep_note, steps, key_move)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Date, p.DeepMinutes, p.NoiseMinutes, nullFloat(p.SleepHours), nullInt(p.SleepQuality),
			nullString(p.SleepNote), p.Steps, nullString(p.KeyMove),
		)
		if err != nil {
			return fmt.Errorf("insert day %s: %w", p.Date, err)
		}
		dayID, _ = res.LastInsertId()
	default:
		return fmt.Errorf("find day %s: %w", p.Date, err)
	}

	if _, err := tx.Exec(`DELETE FROM day_training WHERE day_id = ?`, dayID); err != nil {
		return fmt.Errorf("clear day training: %w", err)
	}
	for _, mode := range p.TrainingModes {
		if mode == domain.TrainingNone {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO day_training (day_id, type) VALUES (?, ?)`, dayID, string(mode)); err != nil {
			return fmt.Errorf("insert training mode: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM day_project WHERE day_id = ?`, dayID); err != nil {
		return fmt.Errorf("clear day projects: %w", err)
	}
	for _, entry := range p.ProjectEntries {
		if _, err := tx.Exec(
			`INSERT INTO day_project (day_id, project_id, key_move) VALUES (?, ?, ?)`,
			dayID, entry.ProjectID, nullString(entry.KeyMove),
		); err != nil {
			return fmt.Errorf("insert project entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit day upsert: %w", err)
	}
	return nil
}
