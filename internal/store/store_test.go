package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ownersup/coachd/internal/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logging.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// seedGroup creates a program, group, and the named members in roster order,
// returning the group id and member ids.
func seedGroup(t *testing.T, s *Store, names ...string) (int64, []int64) {
	t.Helper()
	ctx := context.Background()

	prog, err := s.CreateProgram(ctx, "Founders", "founders", "")
	require.NoError(t, err)
	group, err := s.CreateGroup(ctx, prog.ID, "Group A", "2026-Q1", "", "")
	require.NoError(t, err)

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		m, err := s.CreateMember(ctx, name, "")
		require.NoError(t, err)
		_, err = s.AssignMemberToGroup(ctx, group.ID, m.ID, RoleParticipant)
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	return group.ID, ids
}

func TestProgramCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProgram(ctx, "CTOx", "ctox", "CTO coaching")
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, "ctox", p.Slug)

	_, err = s.CreateProgram(ctx, "Other", "ctox", "")
	assert.ErrorIs(t, err, ErrDuplicate)

	name := "CTOx v2"
	updated, err := s.UpdateProgram(ctx, p.ID, ProgramUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "CTOx v2", updated.Name)
	assert.Equal(t, "ctox", updated.Slug)

	require.NoError(t, s.DeleteProgram(ctx, p.ID))
	got, err := s.GetProgram(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	active, err := s.ListPrograms(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, s.DeleteProgram(ctx, 9999), ErrNotFound)
}

func TestMemberCRUDAndDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, err := s.CreateMember(ctx, "John Smith", "john@example.com")
	require.NoError(t, err)

	_, err = s.CreateMember(ctx, "Johnny", "john@example.com")
	assert.ErrorIs(t, err, ErrDuplicate)

	// Missing emails do not collide with each other.
	_, err = s.CreateMember(ctx, "No Mail One", "")
	require.NoError(t, err)
	_, err = s.CreateMember(ctx, "No Mail Two", "")
	require.NoError(t, err)

	got, err := s.GetMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", got.Name)

	_, err = s.GetMember(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterOrderAndRemoval(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	groupID, memberIDs := seedGroup(t, s, "John Smith", "Jane Doe", "Ada Lovelace")

	roster, err := s.ListGroupRoster(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	// Roster preserves join order, not alphabetical order.
	assert.Equal(t, "John Smith", roster[0].Name)
	assert.Equal(t, "Jane Doe", roster[1].Name)

	_, err = s.AssignMemberToGroup(ctx, groupID, memberIDs[0], RoleParticipant)
	assert.ErrorIs(t, err, ErrDuplicate)

	memberships, err := s.ListGroupMembers(ctx, groupID, true)
	require.NoError(t, err)
	require.NoError(t, s.RemoveMemberFromGroup(ctx, memberships[2].ID))

	roster, err = s.ListGroupRoster(ctx, groupID)
	require.NoError(t, err)
	assert.Len(t, roster, 2)

	groups, err := s.ListMemberGroups(ctx, memberIDs[0], true)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestAssignRejectsUnknownRole(t *testing.T) {
	s := openTestStore(t)
	groupID, memberIDs := seedGroup(t, s, "John Smith")
	_, err := s.AssignMemberToGroup(context.Background(), groupID, memberIDs[0], "mascot")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicate))
}

func TestSessionNumbering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	groupID, _ := seedGroup(t, s, "John Smith")

	first, err := s.CreateSession(ctx, groupID, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "kickoff")
	require.NoError(t, err)
	assert.Equal(t, 1, first.SessionNumber)

	second, err := s.CreateSession(ctx, groupID, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.SessionNumber)

	sessions, err := s.ListSessionsByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	// Newest first.
	assert.Equal(t, second.ID, sessions[0].ID)

	require.NoError(t, s.UpdateSessionTranscript(ctx, first.ID, "hello everyone"))
	got, err := s.GetSession(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello everyone", got.Transcript)

	count, err := s.CountSessionsByGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDeleteSessionCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	groupID, memberIDs := seedGroup(t, s, "John Smith")

	sess, err := s.CreateSession(ctx, groupID, time.Now(), "")
	require.NoError(t, err)

	report, err := s.SaveSessionExtractions(ctx, sess.ID, SessionExtractions{
		Attendance: []AttendanceRecord{{MemberID: memberIDs[0], Status: StatusPresent}},
		Goals:      []GoalRecord{{MemberID: memberIDs[0], Goal: "ship it"}},
	})
	require.NoError(t, err)
	require.True(t, report.Ok())

	require.NoError(t, s.DeleteSession(ctx, sess.ID))

	attendance, err := s.GetMemberAttendance(ctx, memberIDs[0])
	require.NoError(t, err)
	assert.Empty(t, attendance)
}
