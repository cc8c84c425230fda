package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(t *testing.T, s *Store, names ...string) (*Session, []int64) {
	t.Helper()
	groupID, memberIDs := seedGroup(t, s, names...)
	sess, err := s.CreateSession(context.Background(), groupID, time.Now(), "")
	require.NoError(t, err)
	return sess, memberIDs
}

func TestSaveSessionExtractionsUnknownSession(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SaveSessionExtractions(context.Background(), 9999, SessionExtractions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttendanceUpsertIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith")

	first := SessionExtractions{
		Attendance: []AttendanceRecord{{MemberID: memberIDs[0], Status: StatusPresent}},
	}
	report, err := s.SaveSessionExtractions(ctx, sess.ID, first)
	require.NoError(t, err)
	require.True(t, report.Ok())

	// Reprocessing the same session replaces the row instead of adding one.
	second := SessionExtractions{
		Attendance: []AttendanceRecord{{MemberID: memberIDs[0], Status: StatusTravelling, Notes: "on the road"}},
	}
	report, err = s.SaveSessionExtractions(ctx, sess.ID, second)
	require.NoError(t, err)
	require.True(t, report.Ok())

	rows, err := s.GetSessionAttendance(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusTravelling, rows[0].Status)
	assert.Equal(t, "on the road", rows[0].Notes)
}

func TestGoalsDuplicateOnReprocess(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith")

	ext := SessionExtractions{
		Goals: []GoalRecord{{MemberID: memberIDs[0], Goal: "close two deals", IsVague: false}},
	}
	for i := 0; i < 2; i++ {
		report, err := s.SaveSessionExtractions(ctx, sess.ID, ext)
		require.NoError(t, err)
		require.True(t, report.Ok())
	}

	count, err := s.CountSessionGoals(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPartialFailureIsolatesCategories(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith")

	ext := SessionExtractions{
		Attendance: []AttendanceRecord{{MemberID: memberIDs[0], Status: "vacationing"}},
		Goals:      []GoalRecord{{MemberID: memberIDs[0], Goal: "hire a designer"}},
	}
	report, err := s.SaveSessionExtractions(ctx, sess.ID, ext)
	require.NoError(t, err, "orchestration error must stay nil on category failure")
	assert.False(t, report.Ok())
	assert.Error(t, report.Attendance)
	assert.NoError(t, report.Goals)
	assert.Len(t, report.Errors(), 1)

	// The healthy category still landed.
	goals, err := s.GetMemberGoals(ctx, memberIDs[0], 10)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestChallengesWithStrategies(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith", "Jane Doe")

	ext := SessionExtractions{
		Challenges: []ChallengeRecord{{
			MemberID:    memberIDs[0],
			Description: "struggling to delegate",
			Category:    "leadership",
			Strategies: []StrategyRecord{
				{SuggestedBy: &memberIDs[1], Summary: "hire an EA", Tag: "hiring"},
				{SuggestedBy: nil, Summary: "timebox review meetings"},
			},
		}},
	}
	report, err := s.SaveSessionExtractions(ctx, sess.ID, ext)
	require.NoError(t, err)
	require.True(t, report.Ok())

	challenges, err := s.GetMemberChallenges(ctx, memberIDs[0], 10)
	require.NoError(t, err)
	require.Len(t, challenges, 1)
	require.Len(t, challenges[0].Strategies, 2)
	require.NotNil(t, challenges[0].Strategies[0].SuggestedBy)
	assert.Equal(t, memberIDs[1], *challenges[0].Strategies[0].SuggestedBy)
	assert.Nil(t, challenges[0].Strategies[1].SuggestedBy)
}

func TestMarketingWithOutcome(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith")

	contract := ContractMonthly
	revenue := 4500.0
	ext := SessionExtractions{
		Marketing: []MarketingRecord{{
			MemberID:     memberIDs[0],
			Stage:        StageClosed,
			Activity:     ActivityLinkedIn,
			Quantity:     12,
			IsWin:        true,
			ContractType: &contract,
			Revenue:      &revenue,
			Outcome:      &OutcomeRecord{Meetings: 3, Proposals: 2, Clients: 1, Notes: "signed Friday"},
		}},
	}
	report, err := s.SaveSessionExtractions(ctx, sess.ID, ext)
	require.NoError(t, err)
	require.True(t, report.Ok())

	activities, err := s.GetMemberMarketing(ctx, memberIDs[0], 10)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	a := activities[0]
	assert.True(t, a.IsWin)
	require.NotNil(t, a.ContractType)
	assert.Equal(t, ContractMonthly, *a.ContractType)
	require.NotNil(t, a.Revenue)
	assert.Equal(t, 4500.0, *a.Revenue)
	require.NotNil(t, a.Outcome)
	assert.Equal(t, 1, a.Outcome.Clients)
}

func TestStucksRoundTripQuotes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith")

	ext := SessionExtractions{
		Stucks: []StuckRecord{{
			MemberID:          memberIDs[0],
			Classification:    "repeated_challenge",
			StuckSummary:      "same pricing objection three weeks running",
			ExactQuotes:       []string{"I keep hearing it's too expensive", "same pushback again"},
			PotentialNextStep: "run a pricing experiment",
		}},
	}
	report, err := s.SaveSessionExtractions(ctx, sess.ID, ext)
	require.NoError(t, err)
	require.True(t, report.Ok())

	stucks, err := s.GetMemberStucks(ctx, memberIDs[0], 10)
	require.NoError(t, err)
	require.Len(t, stucks, 1)
	assert.Equal(t, []string{"I keep hearing it's too expensive", "same pushback again"}, stucks[0].ExactQuotes)
}

func TestSentimentWithStatements(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, memberIDs := seedSession(t, s, "John Smith")

	ext := SessionExtractions{
		Sentiment: &SentimentRecord{
			Score:           7,
			Rationale:       "upbeat close after a tense opening",
			DominantEmotion: "optimism",
			Confidence:      0.82,
			Quotes: []SentimentQuoteRecord{{
				MemberID:    memberIDs[0],
				Emotions:    []string{"optimism", "relief"},
				ExactQuotes: []string{"this was the week it finally clicked"},
			}},
		},
	}
	report, err := s.SaveSessionExtractions(ctx, sess.ID, ext)
	require.NoError(t, err)
	assert.True(t, report.Ok())
}
