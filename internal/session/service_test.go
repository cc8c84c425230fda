package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ownersup/coachd/internal/extraction"
	"github.com/ownersup/coachd/internal/logging"
	"github.com/ownersup/coachd/internal/matching"
	"github.com/ownersup/coachd/internal/reconcile"
	"github.com/ownersup/coachd/internal/store"
)

// fakeOracle returns canned sheets and lets individual categories fail.
type fakeOracle struct {
	attendance *extraction.AttendanceSheet
	goals      *extraction.GoalSheet
	stucksErr  error
}

func (f *fakeOracle) ExtractAttendance(_ context.Context, _ string, _ []string) (*extraction.AttendanceSheet, error) {
	return f.attendance, nil
}

func (f *fakeOracle) ExtractGoals(context.Context, string) (*extraction.GoalSheet, error) {
	return f.goals, nil
}

func (f *fakeOracle) ExtractChallenges(context.Context, string) (*extraction.ChallengeSheet, error) {
	return &extraction.ChallengeSheet{}, nil
}

func (f *fakeOracle) ExtractMarketing(context.Context, string) (*extraction.MarketingSheet, error) {
	return &extraction.MarketingSheet{}, nil
}

func (f *fakeOracle) ExtractStucks(context.Context, string) (*extraction.StuckSheet, error) {
	if f.stucksErr != nil {
		return nil, f.stucksErr
	}
	return &extraction.StuckSheet{}, nil
}

func (f *fakeOracle) ExtractSentiment(context.Context, string) (*extraction.SentimentSheet, error) {
	return &extraction.SentimentSheet{Score: 3}, nil
}

func (f *fakeOracle) Available() bool { return true }

type fixture struct {
	svc     *Service
	store   *store.Store
	session *store.Session
	members []int64
}

func setup(t *testing.T, oracle extraction.Oracle) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logging.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	prog, err := st.CreateProgram(ctx, "Founders", "founders", "")
	require.NoError(t, err)
	group, err := st.CreateGroup(ctx, prog.ID, "Group A", "2026-Q1", "", "")
	require.NoError(t, err)

	var memberIDs []int64
	for _, name := range []string{"John Smith", "Jane Doe"} {
		m, err := st.CreateMember(ctx, name, "")
		require.NoError(t, err)
		_, err = st.AssignMemberToGroup(ctx, group.ID, m.ID, store.RoleParticipant)
		require.NoError(t, err)
		memberIDs = append(memberIDs, m.ID)
	}

	sess, err := st.CreateSession(ctx, group.ID, time.Now(), "")
	require.NoError(t, err)

	rec := reconcile.New(matching.New(matching.DefaultThreshold))
	svc := New(st, oracle, rec, logging.NewTestLogger(t), Config{
		MinTranscriptLength: 50,
		MaxTranscriptLength: 100000,
	})
	return &fixture{svc: svc, store: st, session: sess, members: memberIDs}
}

func testTranscript() string {
	return strings.Repeat("John talked about outreach and goals this week. ", 4)
}

func TestProcessReturnsReviewPayload(t *testing.T) {
	oracle := &fakeOracle{
		attendance: &extraction.AttendanceSheet{Entries: []extraction.AttendanceEntry{
			{Name: "Jon Smith", Status: "present"},
			{Name: "Unknown Person", Status: "present"},
		}},
		goals: &extraction.GoalSheet{Goals: []extraction.GoalEntry{
			{Name: "John Smith", Goal: "send 5 outreach messages"},
		}},
	}
	f := setup(t, oracle)
	ctx := context.Background()

	review, err := f.svc.Process(ctx, f.session.ID, testTranscript())
	require.NoError(t, err)

	assert.NotEmpty(t, review.RunID)
	assert.Equal(t, f.session.ID, review.SessionID)
	assert.Empty(t, review.Errors)

	require.Len(t, review.Attendance, 2)
	require.NotNil(t, review.Attendance[0].MatchedMemberID)
	assert.Equal(t, f.members[0], *review.Attendance[0].MatchedMemberID)
	assert.False(t, review.Attendance[0].NeedsManualReview)
	assert.True(t, review.Attendance[1].NeedsManualReview)

	require.NotNil(t, review.Goals)
	require.Len(t, review.Goals.Goals, 1)

	// Nothing is persisted by Process except the transcript itself.
	sess, err := f.store.GetSession(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, testTranscript(), sess.Transcript)

	goals, err := f.store.GetMemberGoals(ctx, f.members[0], 10)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestProcessIsolatesCategoryFailures(t *testing.T) {
	oracle := &fakeOracle{
		attendance: &extraction.AttendanceSheet{},
		goals:      &extraction.GoalSheet{},
		stucksErr:  errors.New("oracle melted down"),
	}
	f := setup(t, oracle)

	review, err := f.svc.Process(context.Background(), f.session.ID, testTranscript())
	require.NoError(t, err)

	assert.Contains(t, review.Errors, extraction.CategoryStucks)
	assert.Nil(t, review.Stucks)
	assert.NotNil(t, review.Sentiment, "healthy categories still extract")
}

func TestProcessValidatesTranscript(t *testing.T) {
	f := setup(t, &fakeOracle{})

	_, err := f.svc.Process(context.Background(), f.session.ID, "too short")
	assert.Error(t, err)

	_, err = f.svc.Process(context.Background(), 9999, testTranscript())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSavePersistsReviewedPayload(t *testing.T) {
	f := setup(t, &fakeOracle{})
	ctx := context.Background()

	john := f.members[0]
	review := &Review{
		SessionID: f.session.ID,
		Attendance: []reconcile.AttendanceMatch{
			{
				MatchResult: reconcile.MatchResult{ExtractedName: "Jon Smith", MatchedMemberID: &john},
				Status:      "present",
			},
			{
				MatchResult: reconcile.MatchResult{ExtractedName: "Unknown Person", NeedsManualReview: true},
				Status:      "present",
			},
		},
		Goals: &extraction.GoalSheet{Goals: []extraction.GoalEntry{
			{Name: "John Smith", Goal: "send 5 outreach messages"},
			{Name: "Nobody Known", Goal: "this one is dropped"},
		}},
	}

	report, err := f.svc.Save(ctx, f.session.ID, review)
	require.NoError(t, err)
	require.True(t, report.Ok())

	attendance, err := f.store.GetSessionAttendance(ctx, f.session.ID)
	require.NoError(t, err)
	require.Len(t, attendance, 1, "unresolved attendance entries are dropped")
	assert.Equal(t, john, attendance[0].MemberID)

	goals, err := f.store.GetMemberGoals(ctx, john, 10)
	require.NoError(t, err)
	require.Len(t, goals, 1)

	count, err := f.store.CountSessionGoals(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "unresolved goal names are dropped")
}
