package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Member-scoped read queries backing the REST surface and analytics.

// GetMemberGoals returns a member's goals, newest first.
func (s *Store) GetMemberGoals(ctx context.Context, memberID int64, limit int) ([]Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, session_id, goal, is_vague, is_completed, created_at
		 FROM goals WHERE member_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("member goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		var vague, completed int
		var created int64
		if err := rows.Scan(&g.ID, &g.MemberID, &g.SessionID, &g.Goal, &vague, &completed, &created); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.IsVague = vague == 1
		g.IsCompleted = completed == 1
		g.CreatedAt = time.Unix(created, 0).UTC()
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetMemberChallenges returns a member's challenges with their strategies,
// newest first.
func (s *Store) GetMemberChallenges(ctx context.Context, memberID int64, limit int) ([]Challenge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, session_id, description, COALESCE(category, ''), created_at
		 FROM challenges WHERE member_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("member challenges: %w", err)
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var c Challenge
		var created int64
		if err := rows.Scan(&c.ID, &c.MemberID, &c.SessionID, &c.Description, &c.Category, &created); err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		c.CreatedAt = time.Unix(created, 0).UTC()
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range challenges {
		strategies, err := s.getChallengeStrategies(ctx, challenges[i].ID)
		if err != nil {
			return nil, err
		}
		challenges[i].Strategies = strategies
	}
	return challenges, nil
}

func (s *Store) getChallengeStrategies(ctx context.Context, challengeID int64) ([]Strategy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, challenge_id, suggested_by, summary, COALESCE(tag, ''), created_at
		 FROM challenge_strategies WHERE challenge_id = ? ORDER BY id`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("challenge strategies: %w", err)
	}
	defer rows.Close()

	var strategies []Strategy
	for rows.Next() {
		var st Strategy
		var suggestedBy sql.NullInt64
		var created int64
		if err := rows.Scan(&st.ID, &st.ChallengeID, &suggestedBy, &st.Summary, &st.Tag, &created); err != nil {
			return nil, fmt.Errorf("scan strategy: %w", err)
		}
		if suggestedBy.Valid {
			st.SuggestedBy = &suggestedBy.Int64
		}
		st.CreatedAt = time.Unix(created, 0).UTC()
		strategies = append(strategies, st)
	}
	return strategies, rows.Err()
}

// GetMemberStucks returns a member's stuck detections, newest first.
func (s *Store) GetMemberStucks(ctx context.Context, memberID int64, limit int) ([]Stuck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, session_id, classification, stuck_summary, exact_quotes,
		        COALESCE(potential_next_step, ''), created_at
		 FROM member_stucks WHERE member_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("member stucks: %w", err)
	}
	defer rows.Close()

	var stucks []Stuck
	for rows.Next() {
		var st Stuck
		var quotes string
		var created int64
		if err := rows.Scan(&st.ID, &st.MemberID, &st.SessionID, &st.Classification,
			&st.StuckSummary, &quotes, &st.PotentialNextStep, &created); err != nil {
			return nil, fmt.Errorf("scan stuck: %w", err)
		}
		if err := json.Unmarshal([]byte(quotes), &st.ExactQuotes); err != nil {
			return nil, fmt.Errorf("decode stuck quotes: %w", err)
		}
		st.CreatedAt = time.Unix(created, 0).UTC()
		stucks = append(stucks, st)
	}
	return stucks, rows.Err()
}

// GetMemberMarketing returns a member's marketing activities with their
// outcomes, newest first.
func (s *Store) GetMemberMarketing(ctx context.Context, memberID int64, limit int) ([]MarketingActivity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, session_id, stage, activity, quantity, is_win, contract_type, revenue, created_at
		 FROM marketing_activities WHERE member_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("member marketing: %w", err)
	}
	defer rows.Close()

	var activities []MarketingActivity
	for rows.Next() {
		var a MarketingActivity
		var win int
		var contract sql.NullString
		var revenue sql.NullFloat64
		var created int64
		if err := rows.Scan(&a.ID, &a.MemberID, &a.SessionID, &a.Stage, &a.Activity,
			&a.Quantity, &win, &contract, &revenue, &created); err != nil {
			return nil, fmt.Errorf("scan marketing activity: %w", err)
		}
		a.IsWin = win == 1
		if contract.Valid {
			a.ContractType = &contract.String
		}
		if revenue.Valid {
			a.Revenue = &revenue.Float64
		}
		a.CreatedAt = time.Unix(created, 0).UTC()
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range activities {
		outcome, err := s.getActivityOutcome(ctx, activities[i].ID)
		if err != nil {
			return nil, err
		}
		activities[i].Outcome = outcome
	}
	return activities, nil
}

func (s *Store) getActivityOutcome(ctx context.Context, activityID int64) (*MarketingOutcome, error) {
	var o MarketingOutcome
	err := s.db.QueryRowContext(ctx,
		`SELECT id, activity_id, no_of_meetings, no_of_proposals, no_of_clients, COALESCE(notes, '')
		 FROM marketing_outcomes WHERE activity_id = ?`, activityID).
		Scan(&o.ID, &o.ActivityID, &o.Meetings, &o.Proposals, &o.Clients, &o.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("activity outcome: %w", err)
	}
	return &o, nil
}

// GetMemberAttendance returns a member's attendance rows, newest first.
func (s *Store) GetMemberAttendance(ctx context.Context, memberID int64) ([]Attendance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, member_id, status, COALESCE(notes, ''), created_at
		 FROM session_attendance WHERE member_id = ? ORDER BY created_at DESC, id DESC`,
		memberID)
	if err != nil {
		return nil, fmt.Errorf("member attendance: %w", err)
	}
	defer rows.Close()
	return scanAttendanceRows(rows)
}

// GetMemberGroupAttendance returns a member's attendance restricted to one
// group's sessions. Analytics uses this for per-group attendance rates.
func (s *Store) GetMemberGroupAttendance(ctx context.Context, memberID, groupID int64) ([]Attendance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.session_id, a.member_id, a.status, COALESCE(a.notes, ''), a.created_at
		 FROM session_attendance a
		 JOIN sessions s ON s.id = a.session_id
		 WHERE a.member_id = ? AND s.group_id = ?
		 ORDER BY a.created_at DESC, a.id DESC`,
		memberID, groupID)
	if err != nil {
		return nil, fmt.Errorf("member group attendance: %w", err)
	}
	defer rows.Close()
	return scanAttendanceRows(rows)
}

// GetSessionAttendance returns the attendance rows of one session.
func (s *Store) GetSessionAttendance(ctx context.Context, sessionID int64) ([]Attendance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, member_id, status, COALESCE(notes, ''), created_at
		 FROM session_attendance WHERE session_id = ? ORDER BY member_id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("session attendance: %w", err)
	}
	defer rows.Close()
	return scanAttendanceRows(rows)
}

// CountSessionGoals returns how many goal rows a session has. Used by tests
// and reprocessing diagnostics to observe duplicate inserts.
func (s *Store) CountSessionGoals(ctx context.Context, sessionID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goals WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count session goals: %w", err)
	}
	return count, nil
}

func scanAttendanceRows(rows *sql.Rows) ([]Attendance, error) {
	var records []Attendance
	for rows.Next() {
		var a Attendance
		var created int64
		if err := rows.Scan(&a.ID, &a.SessionID, &a.MemberID, &a.Status, &a.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		a.CreatedAt = time.Unix(created, 0).UTC()
		records = append(records, a)
	}
	return records, rows.Err()
}
