package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func scanProject(scan func(dest ...any) error) (Project, error) {
	var p Project
	var goal sql.NullString
	var active int
	var createdAt, updatedAt string
	err := scan(&p.ID, &p.Name, &p.MaxHoursWeek, &goal, &active, &createdAt, &updatedAt)
	if err != nil {
		return p, err
	}
	if goal.Valid {
		p.Goal = &goal.String
	}
	p.IsActive = active == 1
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

const projectColumns = `id, name, max_hours_week, project_goal, is_active, created_at, updated_at`

// ListProjects returns all projects, most recently touched first.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(
		`SELECT ` + projectColumns + ` FROM projects ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ActiveProject returns the currently active project, or nil.
func (s *Store) ActiveProject() (*Project, error) {
	p, err := scanProject(s.db.QueryRow(
		`SELECT ` + projectColumns + ` FROM projects WHERE is_active = 1 LIMIT 1`,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active project: %w", err)
	}
	return &p, nil
}

// ActiveProjects returns every active project (the extended data model
// allows selecting several per day).
func (s *Store) ActiveProjects() ([]Project, error) {
	rows, err := s.db.Query(
		`SELECT ` + projectColumns + ` FROM projects WHERE is_active = 1 ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// EnsureActiveProject creates an active project from the vector's goal
// when none exists yet.
func (s *Store) EnsureActiveProject() (*Project, error) {
	active, err := s.ActiveProject()
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	v, err := s.EnsureVector()
	if err != nil {
		return nil, err
	}
	goal := v.ProjectGoal
	if err := s.AddOrActivateProject(v.ProjectGoal, v.MaxHoursWeek, &goal); err != nil {
		return nil, err
	}
	return s.ActiveProject()
}

// AddOrActivateProject deactivates every project, then reactivates an
// existing one matching name case-insensitively or inserts a new
// active project. A blank name is a no-op.
func (s *Store) AddOrActivateProject(name string, maxHoursWeek int, goal *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if maxHoursWeek < 0 {
		maxHoursWeek = 0
	}
	goal = trimmedOrNil(goal)

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(
		`UPDATE projects SET is_active = 0, updated_at = ? WHERE is_active = 1`, now,
	); err != nil {
		return fmt.Errorf("deactivate projects: %w", err)
	}

	var id int64
	err := s.db.QueryRow(`SELECT id FROM projects WHERE lower(name) = lower(?) LIMIT 1`, name).Scan(&id)
	switch {
	case err == nil:
		_, err = s.db.Exec(
			`UPDATE projects SET is_active = 1, max_hours_week = ?, project_goal = ?, updated_at = ? WHERE id = ?`,
			maxHoursWeek, nullString(goal), now, id,
		)
		if err != nil {
			return fmt.Errorf("reactivate project %d: %w", id, err)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(
			`INSERT INTO projects (name, max_hours_week, project_goal, is_active) VALUES (?, ?, ?, 1)`,
			name, maxHoursWeek, nullString(goal),
		)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find project by name: %w", err)
	}
}

// UpdateProject rewrites a project's fields. Blank name or a
// non-positive id skips the write.
func (s *Store) UpdateProject(id int64, name string, maxHoursWeek int, goal *string) error {
	name = strings.TrimSpace(name)
	if name == "" || id <= 0 {
		return nil
	}
	if maxHoursWeek < 0 {
		maxHoursWeek = 0
	}
	goal = trimmedOrNil(goal)

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE projects SET name = ?, max_hours_week = ?, project_goal = ?, updated_at = ? WHERE id = ?`,
		name, maxHoursWeek, nullString(goal), now, id,
	)
	if err != nil {
		return fmt.Errorf("update project %d: %w", id, err)
	}
	return nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
