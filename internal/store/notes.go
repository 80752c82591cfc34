package store

import (
	"fmt"
	"strings"
	"time"
)

func (s *Store) queryNotes(query string, args ...any) ([]NoteItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []NoteItem
	for rows.Next() {
		var n NoteItem
		var done int
		if err := rows.Scan(&n.ID, &n.Date, &n.Text, &done); err != nil {
			return nil, err
		}
		n.Done = done == 1
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// NotesForDate lists a date's notes in creation order.
func (s *Store) NotesForDate(iso string) ([]NoteItem, error) {
	return s.queryNotes(
		`SELECT id, note_date, text, done FROM note_items WHERE note_date = ? ORDER BY id ASC`, iso,
	)
}

// NotesArchive lists notes dated before beforeIso, newest first.
func (s *Store) NotesArchive(beforeIso string, limit int) ([]NoteItem, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.queryNotes(
		`SELECT id, note_date, text, done FROM note_items WHERE note_date < ? ORDER BY note_date DESC, id DESC LIMIT ?`,
		beforeIso, limit,
	)
}

// AddNote creates a note for a date. Blank text is a no-op.
func (s *Store) AddNote(iso, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	_, err := s.db.Exec(`INSERT INTO note_items (note_date, text, done) VALUES (?, ?, 0)`, iso, text)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// SetNoteDone toggles a note's done flag, scoped to the (id, date)
// pair. Non-positive ids skip the write.
func (s *Store) SetNoteDone(id int64, done bool, iso string) error {
	if id <= 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE note_items SET done = ?, updated_at = ? WHERE id = ? AND note_date = ?`,
		boolInt(done), now, id, iso,
	)
	if err != nil {
		return fmt.Errorf("set note done %d: %w", id, err)
	}
	return nil
}
