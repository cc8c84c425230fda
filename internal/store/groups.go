package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateGroup inserts a new group under a program.
func (s *Store) CreateGroup(ctx context.Context, programID int64, name, cohort, startDate, endDate string) (*Group, error) {
	if _, err := s.GetProgram(ctx, programID); err != nil {
		return nil, err
	}
	ts := now()
	res, err := s.execContext(ctx,
		`INSERT INTO groups (program_id, name, cohort, start_date, end_date, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		programID, name, nullable(cohort), nullable(startDate), nullable(endDate), ts, ts)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return s.GetGroup(ctx, id)
}

// GetGroup fetches a group by id.
func (s *Store) GetGroup(ctx context.Context, id int64) (*Group, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, program_id, name, COALESCE(cohort, ''), COALESCE(start_date, ''),
		        COALESCE(end_date, ''), is_active, created_at, updated_at
		 FROM groups WHERE id = ?`, id)
	return scanGroup(row)
}

// ListGroupsByProgram returns groups for a program, optionally active only.
func (s *Store) ListGroupsByProgram(ctx context.Context, programID int64, activeOnly bool) ([]Group, error) {
	query := `SELECT id, program_id, name, COALESCE(cohort, ''), COALESCE(start_date, ''),
		        COALESCE(end_date, ''), is_active, created_at, updated_at
		 FROM groups WHERE program_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func scanGroup(row rowScanner) (*Group, error) {
	var g Group
	var active int
	var created, updated int64
	err := row.Scan(&g.ID, &g.ProgramID, &g.Name, &g.Cohort, &g.StartDate, &g.EndDate,
		&active, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan group: %w", err)
	}
	g.IsActive = active == 1
	g.CreatedAt = time.Unix(created, 0).UTC()
	g.UpdatedAt = time.Unix(updated, 0).UTC()
	return &g, nil
}
