// Package session orchestrates the transcript workflow: extract the six
// categories from a transcript, reconcile names against the group roster,
// hand the result to a human for review, and persist the edited result.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ownersup/coachd/internal/extraction"
	"github.com/ownersup/coachd/internal/logging"
	"github.com/ownersup/coachd/internal/reconcile"
	"github.com/ownersup/coachd/internal/store"
	"github.com/ownersup/coachd/internal/validate"
)

// Review is the reconciled-but-unsaved extraction result for one processing
// run. Attendance is fuzzily matched and carries review flags; the other
// categories keep their raw extracted names until Save resolves them exactly.
// Errors maps category name to the extraction failure for that category.
type Review struct {
	RunID      string                      `json:"run_id"`
	SessionID  int64                       `json:"session_id"`
	Attendance []reconcile.AttendanceMatch `json:"attendance"`
	Goals      *extraction.GoalSheet       `json:"goals,omitempty"`
	Challenges *extraction.ChallengeSheet  `json:"challenges,omitempty"`
	Marketing  *extraction.MarketingSheet  `json:"marketing,omitempty"`
	Stucks     *extraction.StuckSheet      `json:"stucks,omitempty"`
	Sentiment  *extraction.SentimentSheet  `json:"sentiment,omitempty"`
	Errors     map[string]string           `json:"errors,omitempty"`
}

// ErrInvalidTranscript marks transcript validation failures so transports
// can map them to a client error.
var ErrInvalidTranscript = errors.New("invalid transcript")

// Config bounds the accepted transcript size.
type Config struct {
	MinTranscriptLength int
	MaxTranscriptLength int
}

// Service runs the process/review/save workflow.
type Service struct {
	store      *store.Store
	oracle     extraction.Oracle
	reconciler *reconcile.Reconciler
	logger     *logging.Logger
	cfg        Config
}

// New returns a session Service.
func New(st *store.Store, oracle extraction.Oracle, rec *reconcile.Reconciler, logger *logging.Logger, cfg Config) *Service {
	return &Service{store: st, oracle: oracle, reconciler: rec, logger: logger, cfg: cfg}
}

// Process extracts all categories from a transcript, reconciles attendance
// against the group's active roster, and returns the review payload without
// persisting any extraction. The transcript itself is stored on the session
// row so reprocessing and auditing can reference it.
//
// Category extractions run concurrently and fail independently: a failed
// category appears in Review.Errors while the others proceed. The roster
// snapshot is taken once and is immutable for the duration of the run.
func (s *Service) Process(ctx context.Context, sessionID int64, transcript string) (*Review, error) {
	if err := validate.Transcript(transcript, s.cfg.MinTranscriptLength, s.cfg.MaxTranscriptLength); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTranscript, err)
	}

	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	roster, err := s.store.ListGroupRoster(ctx, sess.GroupID)
	if err != nil {
		return nil, err
	}

	review := &Review{
		RunID:     uuid.NewString(),
		SessionID: sessionID,
		Errors:    make(map[string]string),
	}
	ctx = logging.WithSessionID(ctx, sessionID)

	s.logger.Info(ctx, "processing transcript",
		zap.String("run_id", review.RunID),
		zap.Int("transcript_chars", len(transcript)),
		zap.Int("roster_size", len(roster)))

	var (
		mu         sync.Mutex
		attendance *extraction.AttendanceSheet
	)
	fail := func(category string, err error) {
		mu.Lock()
		review.Errors[category] = err.Error()
		mu.Unlock()
		s.logger.Warn(ctx, "category extraction failed",
			zap.String("run_id", review.RunID),
			zap.String("category", category),
			zap.Error(err))
	}

	names := make([]string, len(roster))
	for i, m := range roster {
		names[i] = m.Name
	}

	// Each category extraction is independent: goroutines record their own
	// failure and return nil so one bad category does not cancel the rest.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sheet, err := s.oracle.ExtractAttendance(gctx, transcript, names)
		if err != nil {
			fail(extraction.CategoryAttendance, err)
			return nil
		}
		attendance = sheet
		return nil
	})
	g.Go(func() error {
		sheet, err := s.oracle.ExtractGoals(gctx, transcript)
		if err != nil {
			fail(extraction.CategoryGoals, err)
			return nil
		}
		review.Goals = sheet
		return nil
	})
	g.Go(func() error {
		sheet, err := s.oracle.ExtractChallenges(gctx, transcript)
		if err != nil {
			fail(extraction.CategoryChallenges, err)
			return nil
		}
		review.Challenges = sheet
		return nil
	})
	g.Go(func() error {
		sheet, err := s.oracle.ExtractMarketing(gctx, transcript)
		if err != nil {
			fail(extraction.CategoryMarketing, err)
			return nil
		}
		review.Marketing = sheet
		return nil
	})
	g.Go(func() error {
		sheet, err := s.oracle.ExtractStucks(gctx, transcript)
		if err != nil {
			fail(extraction.CategoryStucks, err)
			return nil
		}
		review.Stucks = sheet
		return nil
	})
	g.Go(func() error {
		sheet, err := s.oracle.ExtractSentiment(gctx, transcript)
		if err != nil {
			fail(extraction.CategorySentiment, err)
			return nil
		}
		review.Sentiment = sheet
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if attendance != nil {
		review.Attendance = s.reconciler.Attendance(attendance.Entries, roster)
	}

	if err := s.store.UpdateSessionTranscript(ctx, sessionID, transcript); err != nil {
		return nil, fmt.Errorf("store transcript: %w", err)
	}

	s.logger.Info(ctx, "transcript processed",
		zap.String("run_id", review.RunID),
		zap.Int("attendance_entries", len(review.Attendance)),
		zap.Int("failed_categories", len(review.Errors)))
	return review, nil
}

// Save resolves the reviewed payload's names exactly against the current
// roster and persists every category best-effort. The returned report
// carries per-category persistence errors; the error return covers only
// orchestration failures (unknown session, roster lookup).
func (s *Service) Save(ctx context.Context, sessionID int64, review *Review) (*store.SaveReport, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	roster, err := s.store.ListGroupRoster(ctx, sess.GroupID)
	if err != nil {
		return nil, err
	}

	idx := reconcile.BuildNameIndex(roster)
	ext := store.SessionExtractions{
		Attendance: reconcile.AttendanceRecords(review.Attendance),
		Goals:      reconcile.GoalRecords(review.Goals, idx),
		Challenges: reconcile.ChallengeRecords(review.Challenges, idx),
		Marketing:  reconcile.MarketingRecords(review.Marketing, idx),
		Stucks:     reconcile.StuckRecords(review.Stucks, idx),
		Sentiment:  reconcile.SentimentRecord(review.Sentiment, idx),
	}

	return s.store.SaveSessionExtractions(ctx, sessionID, ext)
}
