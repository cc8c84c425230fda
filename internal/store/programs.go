package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateProgram inserts a new program. Returns ErrDuplicate when the slug is
// already taken.
func (s *Store) CreateProgram(ctx context.Context, name, slug, description string) (*Program, error) {
	ts := now()
	res, err := s.execContext(ctx,
		`INSERT INTO programs (name, slug, description, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, 1, ?, ?)`,
		name, slug, nullable(description), ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("program slug %q: %w", slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("create program: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	return s.GetProgram(ctx, id)
}

// GetProgram fetches a program by id.
func (s *Store) GetProgram(ctx context.Context, id int64) (*Program, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, COALESCE(description, ''), is_active, created_at, updated_at
		 FROM programs WHERE id = ?`, id)
	return scanProgram(row)
}

// ListPrograms returns all programs, optionally filtered to active ones.
func (s *Store) ListPrograms(ctx context.Context, activeOnly bool) ([]Program, error) {
	query := `SELECT id, name, slug, COALESCE(description, ''), is_active, created_at, updated_at
		 FROM programs`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}

// ProgramUpdate holds optional fields for UpdateProgram. Nil fields are left
// unchanged.
type ProgramUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	IsActive    *bool
}

// UpdateProgram applies a partial update and returns the updated row.
func (s *Store) UpdateProgram(ctx context.Context, id int64, upd ProgramUpdate) (*Program, error) {
	p, err := s.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Slug != nil {
		p.Slug = *upd.Slug
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}

	_, err = s.execContext(ctx,
		`UPDATE programs SET name = ?, slug = ?, description = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Slug, nullable(p.Description), boolInt(p.IsActive), now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("program slug %q: %w", p.Slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("update program %d: %w", id, err)
	}
	return s.GetProgram(ctx, id)
}

// DeleteProgram soft-deletes a program.
func (s *Store) DeleteProgram(ctx context.Context, id int64) error {
	res, err := s.execContext(ctx,
		`UPDATE programs SET is_active = 0, updated_at = ? WHERE id = ?`, now(), id)
	if err != nil {
		return fmt.Errorf("delete program %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (*Program, error) {
	var p Program
	var active int
	var created, updated int64
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &active, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan program: %w", err)
	}
	p.IsActive = active == 1
	p.CreatedAt = time.Unix(created, 0).UTC()
	p.UpdatedAt = time.Unix(updated, 0).UTC()
	return &p, nil
}

// nullable converts "" to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
