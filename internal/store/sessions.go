package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateSession inserts a new session for a group. The session number is
// assigned as one past the group's current highest.
func (s *Store) CreateSession(ctx context.Context, groupID int64, date time.Time, notes string) (*Session, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	ts := now()
	res, err := s.execContext(ctx,
		`INSERT INTO sessions (group_id, date, session_number, notes, created_at, updated_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(session_number), 0) + 1 FROM sessions WHERE group_id = ?), ?, ?, ?)`,
		groupID, date.Unix(), groupID, nullable(notes), ts, ts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s.GetSession(ctx, id)
}

// GetSession fetches a session by id.
func (s *Store) GetSession(ctx context.Context, id int64) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, date, session_number, COALESCE(notes, ''), COALESCE(transcript, ''),
		        created_at, updated_at
		 FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessionsByGroup returns a group's sessions, newest first.
func (s *Store) ListSessionsByGroup(ctx context.Context, groupID int64) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, date, session_number, COALESCE(notes, ''), COALESCE(transcript, ''),
		        created_at, updated_at
		 FROM sessions WHERE group_id = ? ORDER BY date DESC, id DESC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// UpdateSessionTranscript stores the transcript text on the session row.
func (s *Store) UpdateSessionTranscript(ctx context.Context, id int64, transcript string) error {
	res, err := s.execContext(ctx,
		`UPDATE sessions SET transcript = ?, updated_at = ? WHERE id = ?`,
		transcript, now(), id)
	if err != nil {
		return fmt.Errorf("update session %d transcript: %w", id, err)
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

// UpdateSessionNotes replaces the session notes.
func (s *Store) UpdateSessionNotes(ctx context.Context, id int64, notes string) error {
	res, err := s.execContext(ctx,
		`UPDATE sessions SET notes = ?, updated_at = ? WHERE id = ?`,
		nullable(notes), now(), id)
	if err != nil {
		return fmt.Errorf("update session %d notes: %w", id, err)
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

// DeleteSession hard-deletes a session. Extraction rows cascade.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	res, err := s.execContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
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

// CountSessionsByGroup returns the number of sessions recorded for a group.
func (s *Store) CountSessionsByGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE group_id = ?`, groupID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func scanSession(row rowScanner) (*Session, error) {
	var sess Session
	var date, created, updated int64
	err := row.Scan(&sess.ID, &sess.GroupID, &date, &sess.SessionNumber, &sess.Notes,
		&sess.Transcript, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	sess.Date = time.Unix(date, 0).UTC()
	sess.CreatedAt = time.Unix(created, 0).UTC()
	sess.UpdatedAt = time.Unix(updated, 0).UTC()
	return &sess, nil
}
