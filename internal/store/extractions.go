package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// SaveReport collects per-category outcomes of a best-effort save. A nil
// entry means the category persisted (or was empty); a non-nil entry holds
// the error that stopped it. Sibling categories are never aborted.
type SaveReport struct {
	Attendance error
	Goals      error
	Challenges error
	Marketing  error
	Stucks     error
	Sentiment  error
}

// Errors returns the non-nil category errors, keyed by category name.
func (r *SaveReport) Errors() map[string]error {
	errs := make(map[string]error)
	for name, err := range map[string]error{
		"attendance": r.Attendance,
		"goals":      r.Goals,
		"challenges": r.Challenges,
		"marketing":  r.Marketing,
		"stucks":     r.Stucks,
		"sentiment":  r.Sentiment,
	} {
		if err != nil {
			errs[name] = err
		}
	}
	return errs
}

// Ok reports whether every category persisted.
func (r *SaveReport) Ok() bool {
	return len(r.Errors()) == 0
}

// SaveSessionExtractions persists all reconciled categories for a session.
//
// The save is best-effort, not atomic: each category is written
// independently, and a failure in one is recorded in the report without
// aborting the others. The returned error is nil whenever the orchestration
// itself ran to completion; callers must inspect the report for partial
// failure.
//
// Attendance is an idempotent upsert on (session_id, member_id); every other
// category is a plain insert, so reprocessing a transcript duplicates those
// rows.
func (s *Store) SaveSessionExtractions(ctx context.Context, sessionID int64, ext SessionExtractions) (*SaveReport, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	report := &SaveReport{}

	if len(ext.Attendance) > 0 {
		report.Attendance = s.saveAttendance(ctx, sessionID, ext.Attendance)
	}
	if len(ext.Goals) > 0 {
		report.Goals = s.saveGoals(ctx, sessionID, ext.Goals)
	}
	if len(ext.Challenges) > 0 {
		report.Challenges = s.saveChallenges(ctx, sessionID, ext.Challenges)
	}
	if len(ext.Marketing) > 0 {
		report.Marketing = s.saveMarketing(ctx, sessionID, ext.Marketing)
	}
	if len(ext.Stucks) > 0 {
		report.Stucks = s.saveStucks(ctx, sessionID, ext.Stucks)
	}
	if ext.Sentiment != nil {
		report.Sentiment = s.saveSentiment(ctx, sessionID, ext.Sentiment)
	}

	for category, err := range report.Errors() {
		s.logger.Error(ctx, "extraction category failed to persist",
			zap.Int64("session_id", sessionID),
			zap.String("category", category),
			zap.Error(err))
	}
	return report, nil
}

// saveAttendance upserts attendance rows keyed by (session_id, member_id).
// Statuses are validated here, at the persistence boundary.
func (s *Store) saveAttendance(ctx context.Context, sessionID int64, records []AttendanceRecord) error {
	ts := now()
	for _, rec := range records {
		if !ValidAttendanceStatus(rec.Status) {
			return fmt.Errorf("invalid attendance status %q for member %d", rec.Status, rec.MemberID)
		}
		_, err := s.execContext(ctx,
			`INSERT INTO session_attendance (session_id, member_id, status, notes, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (session_id, member_id)
			 DO UPDATE SET status = excluded.status, notes = excluded.notes, updated_at = excluded.updated_at`,
			sessionID, rec.MemberID, rec.Status, nullable(rec.Notes), ts, ts)
		if err != nil {
			return fmt.Errorf("upsert attendance for member %d: %w", rec.MemberID, err)
		}
	}
	return nil
}

func (s *Store) saveGoals(ctx context.Context, sessionID int64, records []GoalRecord) error {
	ts := now()
	for _, rec := range records {
		_, err := s.execContext(ctx,
			`INSERT INTO goals (member_id, session_id, goal, is_vague, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.MemberID, sessionID, rec.Goal, boolInt(rec.IsVague), ts, ts)
		if err != nil {
			return fmt.Errorf("insert goal for member %d: %w", rec.MemberID, err)
		}
	}
	return nil
}

// saveChallenges writes challenges two-phase: parent row first, then the
// strategy children referencing the generated id. A failed child insert
// leaves the parent orphaned; there is no compensating rollback.
func (s *Store) saveChallenges(ctx context.Context, sessionID int64, records []ChallengeRecord) error {
	ts := now()
	for _, rec := range records {
		res, err := s.execContext(ctx,
			`INSERT INTO challenges (member_id, session_id, description, category, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.MemberID, sessionID, rec.Description, nullable(rec.Category), ts, ts)
		if err != nil {
			return fmt.Errorf("insert challenge for member %d: %w", rec.MemberID, err)
		}
		challengeID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert challenge for member %d: %w", rec.MemberID, err)
		}
		for _, strat := range rec.Strategies {
			_, err := s.execContext(ctx,
				`INSERT INTO challenge_strategies (challenge_id, suggested_by, summary, tag, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				challengeID, strat.SuggestedBy, strat.Summary, nullable(strat.Tag), ts, ts)
			if err != nil {
				return fmt.Errorf("insert strategy for challenge %d: %w", challengeID, err)
			}
		}
	}
	return nil
}

// saveMarketing writes activities two-phase like challenges: the activity
// row first, then its zero-or-one outcome child.
func (s *Store) saveMarketing(ctx context.Context, sessionID int64, records []MarketingRecord) error {
	ts := now()
	for _, rec := range records {
		res, err := s.execContext(ctx,
			`INSERT INTO marketing_activities
			   (member_id, session_id, stage, activity, quantity, is_win, contract_type, revenue, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.MemberID, sessionID, rec.Stage, rec.Activity, rec.Quantity, boolInt(rec.IsWin),
			rec.ContractType, rec.Revenue, ts, ts)
		if err != nil {
			return fmt.Errorf("insert marketing activity for member %d: %w", rec.MemberID, err)
		}
		activityID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert marketing activity for member %d: %w", rec.MemberID, err)
		}
		if rec.Outcome != nil {
			_, err := s.execContext(ctx,
				`INSERT INTO marketing_outcomes
				   (activity_id, no_of_meetings, no_of_proposals, no_of_clients, notes, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				activityID, rec.Outcome.Meetings, rec.Outcome.Proposals, rec.Outcome.Clients,
				nullable(rec.Outcome.Notes), ts, ts)
			if err != nil {
				return fmt.Errorf("insert outcome for activity %d: %w", activityID, err)
			}
		}
	}
	return nil
}

func (s *Store) saveStucks(ctx context.Context, sessionID int64, records []StuckRecord) error {
	ts := now()
	for _, rec := range records {
		quotes, err := json.Marshal(rec.ExactQuotes)
		if err != nil {
			return fmt.Errorf("marshal stuck quotes for member %d: %w", rec.MemberID, err)
		}
		_, err = s.execContext(ctx,
			`INSERT INTO member_stucks
			   (member_id, session_id, classification, stuck_summary, exact_quotes, potential_next_step, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.MemberID, sessionID, rec.Classification, rec.StuckSummary, string(quotes),
			nullable(rec.PotentialNextStep), ts, ts)
		if err != nil {
			return fmt.Errorf("insert stuck for member %d: %w", rec.MemberID, err)
		}
	}
	return nil
}

func (s *Store) saveSentiment(ctx context.Context, sessionID int64, rec *SentimentRecord) error {
	ts := now()
	res, err := s.execContext(ctx,
		`INSERT INTO session_sentiments
		   (session_id, sentiment_score, rationale, dominant_emotion, confidence_score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, rec.Score, nullable(rec.Rationale), nullable(rec.DominantEmotion),
		rec.Confidence, ts, ts)
	if err != nil {
		return fmt.Errorf("insert sentiment: %w", err)
	}
	sentimentID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert sentiment: %w", err)
	}
	for _, quote := range rec.Quotes {
		emotions, err := json.Marshal(quote.Emotions)
		if err != nil {
			return fmt.Errorf("marshal emotions for member %d: %w", quote.MemberID, err)
		}
		quotes, err := json.Marshal(quote.ExactQuotes)
		if err != nil {
			return fmt.Errorf("marshal quotes for member %d: %w", quote.MemberID, err)
		}
		_, err = s.execContext(ctx,
			`INSERT INTO session_sentiment_statements
			   (session_sentiment_id, member_id, emotions, exact_quotes, is_negative, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sentimentID, quote.MemberID, string(emotions), string(quotes), boolInt(quote.IsNegative), ts, ts)
		if err != nil {
			return fmt.Errorf("insert sentiment statement for member %d: %w", quote.MemberID, err)
		}
	}
	return nil
}
