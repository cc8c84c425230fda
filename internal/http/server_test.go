package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ownersup/coachd/internal/analytics"
	"github.com/ownersup/coachd/internal/extraction"
	"github.com/ownersup/coachd/internal/logging"
	"github.com/ownersup/coachd/internal/matching"
	"github.com/ownersup/coachd/internal/reconcile"
	"github.com/ownersup/coachd/internal/session"
	"github.com/ownersup/coachd/internal/store"
)

// stubOracle returns minimal sheets for every category.
type stubOracle struct{}

func (stubOracle) ExtractAttendance(_ context.Context, _ string, roster []string) (*extraction.AttendanceSheet, error) {
	sheet := &extraction.AttendanceSheet{}
	for _, name := range roster {
		sheet.Entries = append(sheet.Entries, extraction.AttendanceEntry{Name: name, Status: "present"})
	}
	return sheet, nil
}

func (stubOracle) ExtractGoals(context.Context, string) (*extraction.GoalSheet, error) {
	return &extraction.GoalSheet{}, nil
}

func (stubOracle) ExtractChallenges(context.Context, string) (*extraction.ChallengeSheet, error) {
	return &extraction.ChallengeSheet{}, nil
}

func (stubOracle) ExtractMarketing(context.Context, string) (*extraction.MarketingSheet, error) {
	return &extraction.MarketingSheet{}, nil
}

func (stubOracle) ExtractStucks(context.Context, string) (*extraction.StuckSheet, error) {
	return &extraction.StuckSheet{}, nil
}

func (stubOracle) ExtractSentiment(context.Context, string) (*extraction.SentimentSheet, error) {
	return &extraction.SentimentSheet{Score: 3}, nil
}

func (stubOracle) Available() bool { return true }

type testServer struct {
	server *Server
	store  *store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logging.NewTestLogger(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	oracle := stubOracle{}
	rec := reconcile.New(matching.New(matching.DefaultThreshold))
	sessions := session.New(st, oracle, rec, logger, session.Config{
		MinTranscriptLength: 50,
		MaxTranscriptLength: 100000,
	})

	srv, err := NewServer(st, sessions, oracle, analytics.New(st, logger), logger, &Config{Host: "localhost", Port: 0})
	require.NoError(t, err)
	return &testServer{server: srv, store: st}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	ts.server.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Status)
}

func TestProgramEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/programs", `{"name": "CTOx", "slug": "ctox"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	program := decode[store.Program](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/programs", `{"name": "Other", "slug": "ctox"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/programs", `{"name": "Bad Slug", "slug": "Not A Slug"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/programs/%d", program.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/programs/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPatch, fmt.Sprintf("/api/programs/%d", program.ID), `{"name": "CTOx v2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CTOx v2", decode[store.Program](t, rec).Name)

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/programs/%d", program.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMemberEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/members", `{"name": "John Smith", "email": "john@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/members", `{"name": "Johnny", "email": "john@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/members", `{"name": "Bad Email", "email": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/members/9999/goals", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// seed creates a program, group, two members, and one session over HTTP and
// the store, returning the group and session ids.
func seed(t *testing.T, ts *testServer) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	prog, err := ts.store.CreateProgram(ctx, "Founders", "founders", "")
	require.NoError(t, err)
	group, err := ts.store.CreateGroup(ctx, prog.ID, "Group A", "2026-Q1", "", "")
	require.NoError(t, err)
	for _, name := range []string{"John Smith", "Jane Doe"} {
		m, err := ts.store.CreateMember(ctx, name, "")
		require.NoError(t, err)
		_, err = ts.store.AssignMemberToGroup(ctx, group.ID, m.ID, store.RoleParticipant)
		require.NoError(t, err)
	}
	sess, err := ts.store.CreateSession(ctx, group.ID, time.Now(), "")
	require.NoError(t, err)
	return group.ID, sess.ID
}

func TestGroupMemberAssignment(t *testing.T) {
	ts := newTestServer(t)
	groupID, _ := seed(t, ts)

	member, err := ts.store.CreateMember(context.Background(), "New Member", "")
	require.NoError(t, err)

	path := fmt.Sprintf("/api/groups/%d/members", groupID)
	body := fmt.Sprintf(`{"member_id": %d}`, member.ID)

	rec := ts.do(t, http.MethodPost, path, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, path, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, path, fmt.Sprintf(`{"member_id": %d, "role": "mascot"}`, member.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProcessAndSaveTranscript(t *testing.T) {
	ts := newTestServer(t)
	_, sessionID := seed(t, ts)

	rec := ts.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/process-transcript", sessionID), `{"transcript": "short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	transcript := strings.Repeat("John talked about outreach this week. ", 4)
	body, err := json.Marshal(ProcessTranscriptRequest{Transcript: transcript})
	require.NoError(t, err)

	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/process-transcript", sessionID), string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	review := decode[session.Review](t, rec)
	assert.NotEmpty(t, review.RunID)
	require.Len(t, review.Attendance, 2)
	assert.False(t, review.Attendance[0].NeedsManualReview)

	saveBody, err := json.Marshal(review)
	require.NoError(t, err)
	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/save-extractions", sessionID), string(saveBody))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SaveExtractionsResponse](t, rec)
	assert.True(t, resp.Saved)
	assert.Empty(t, resp.Errors)

	rec = ts.do(t, http.MethodPost, "/api/sessions/9999/process-transcript", string(body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroupAnalyticsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	groupID, _ := seed(t, ts)

	rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/groups/%d/analytics", groupID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[analytics.GroupReport](t, rec)
	assert.Equal(t, groupID, report.GroupID)
	assert.Len(t, report.Members, 2)

	rec = ts.do(t, http.MethodGet, "/api/groups/9999/analytics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStandaloneExtractEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/extract/goals", `{"transcript": "we talked about goals"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/extract/goals", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
