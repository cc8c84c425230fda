package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateMember inserts a new member. Returns ErrDuplicate when the email is
// already registered.
func (s *Store) CreateMember(ctx context.Context, name, email string) (*Member, error) {
	ts := now()
	res, err := s.execContext(ctx,
		`INSERT INTO members (name, email, is_active, created_at, updated_at)
		 VALUES (?, ?, 1, ?, ?)`,
		name, nullable(email), ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("member email %q: %w", email, ErrDuplicate)
		}
		return nil, fmt.Errorf("create member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return s.GetMember(ctx, id)
}

// GetMember fetches a member by id.
func (s *Store) GetMember(ctx context.Context, id int64) (*Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(email, ''), is_active, created_at, updated_at
		 FROM members WHERE id = ?`, id)
	return scanMember(row)
}

// ListMembers returns all members, optionally active only.
func (s *Store) ListMembers(ctx context.Context, activeOnly bool) ([]Member, error) {
	query := `SELECT id, name, COALESCE(email, ''), is_active, created_at, updated_at FROM members`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// AssignMemberToGroup adds a member to a group with the given role. Returns
// ErrDuplicate when the member is already assigned.
func (s *Store) AssignMemberToGroup(ctx context.Context, groupID, memberID int64, role string) (*GroupMember, error) {
	if !ValidGroupMemberRole(role) {
		return nil, fmt.Errorf("invalid group member role %q", role)
	}
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	ts := now()
	res, err := s.execContext(ctx,
		`INSERT INTO group_members (group_id, member_id, role, joined_at, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?)`,
		groupID, memberID, role, ts, ts, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("member %d already in group %d: %w", memberID, groupID, ErrDuplicate)
		}
		return nil, fmt.Errorf("assign member to group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("assign member to group: %w", err)
	}

	return &GroupMember{
		ID:       id,
		GroupID:  groupID,
		MemberID: memberID,
		Role:     role,
		JoinedAt: time.Unix(ts, 0).UTC(),
		IsActive: true,
	}, nil
}

// RemoveMemberFromGroup deactivates a group membership and stamps left_at.
func (s *Store) RemoveMemberFromGroup(ctx context.Context, groupMemberID int64) error {
	ts := now()
	res, err := s.execContext(ctx,
		`UPDATE group_members SET is_active = 0, left_at = ?, updated_at = ? WHERE id = ?`,
		ts, ts, groupMemberID)
	if err != nil {
		return fmt.Errorf("remove group member %d: %w", groupMemberID, err)
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

// ListGroupMembers returns the memberships of a group with the member rows
// attached, in join order.
func (s *Store) ListGroupMembers(ctx context.Context, groupID int64, activeOnly bool) ([]GroupMember, error) {
	query := `SELECT gm.id, gm.group_id, gm.member_id, gm.role, gm.joined_at, gm.left_at, gm.is_active,
	                 m.id, m.name, COALESCE(m.email, ''), m.is_active, m.created_at, m.updated_at
	          FROM group_members gm
	          JOIN members m ON m.id = gm.member_id
	          WHERE gm.group_id = ?`
	if activeOnly {
		query += ` AND gm.is_active = 1 AND m.is_active = 1`
	}
	query += ` ORDER BY gm.joined_at, gm.id`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	var memberships []GroupMember
	for rows.Next() {
		var gm GroupMember
		var m Member
		var joined int64
		var left sql.NullInt64
		var gmActive, mActive int
		var mCreated, mUpdated int64
		if err := rows.Scan(&gm.ID, &gm.GroupID, &gm.MemberID, &gm.Role, &joined, &left, &gmActive,
			&m.ID, &m.Name, &m.Email, &mActive, &mCreated, &mUpdated); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		gm.JoinedAt = time.Unix(joined, 0).UTC()
		if left.Valid {
			t := time.Unix(left.Int64, 0).UTC()
			gm.LeftAt = &t
		}
		gm.IsActive = gmActive == 1
		m.IsActive = mActive == 1
		m.CreatedAt = time.Unix(mCreated, 0).UTC()
		m.UpdatedAt = time.Unix(mUpdated, 0).UTC()
		gm.Member = &m
		memberships = append(memberships, gm)
	}
	return memberships, rows.Err()
}

// ListGroupRoster returns the active members of a group in join order. This
// is the roster snapshot reconciliation matches against.
func (s *Store) ListGroupRoster(ctx context.Context, groupID int64) ([]Member, error) {
	memberships, err := s.ListGroupMembers(ctx, groupID, true)
	if err != nil {
		return nil, err
	}
	roster := make([]Member, 0, len(memberships))
	for _, gm := range memberships {
		roster = append(roster, *gm.Member)
	}
	return roster, nil
}

// ListMemberGroups returns the groups a member belongs to.
func (s *Store) ListMemberGroups(ctx context.Context, memberID int64, activeOnly bool) ([]Group, error) {
	query := `SELECT g.id, g.program_id, g.name, COALESCE(g.cohort, ''), COALESCE(g.start_date, ''),
	                 COALESCE(g.end_date, ''), g.is_active, g.created_at, g.updated_at
	          FROM groups g
	          JOIN group_members gm ON gm.group_id = g.id
	          WHERE gm.member_id = ?`
	if activeOnly {
		query += ` AND gm.is_active = 1 AND g.is_active = 1`
	}
	query += ` ORDER BY g.name`

	rows, err := s.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member groups: %w", err)
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

func scanMember(row rowScanner) (*Member, error) {
	var m Member
	var active int
	var created, updated int64
	err := row.Scan(&m.ID, &m.Name, &m.Email, &active, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	m.IsActive = active == 1
	m.CreatedAt = time.Unix(created, 0).UTC()
	m.UpdatedAt = time.Unix(updated, 0).UTC()
	return &m, nil
}
