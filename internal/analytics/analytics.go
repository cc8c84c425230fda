// Package analytics computes per-member engagement stats and rule-based risk
// ratings for a group.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ownersup/coachd/internal/logging"
	"github.com/ownersup/coachd/internal/store"
)

// Risk levels, from excelling to disengaged.
const (
	RiskCrushingIt = "crushing_it"
	RiskOnTrack    = "on_track"
	RiskMedium     = "medium_risk"
	RiskHigh       = "high_risk"
)

// recentGoalWindow is how far back a member must have set a goal to avoid
// the goal-drought penalty.
const recentGoalWindow = 14 * 24 * time.Hour

// perMemberLimit bounds how much history feeds one member's stats.
const perMemberLimit = 100

// MemberStats are one member's engagement counters within a group.
type MemberStats struct {
	TotalSessions       int     `json:"total_sessions"`
	AttendanceRate      float64 `json:"attendance_rate"`
	TotalGoals          int     `json:"total_goals"`
	CompletedGoals      int     `json:"completed_goals"`
	VagueGoals          int     `json:"vague_goals"`
	Challenges          int     `json:"challenges"`
	StuckDetections     int     `json:"stuck_detections"`
	MarketingActivities int     `json:"marketing_activities"`
	Wins                int     `json:"wins"`
}

// MemberReport is one member's stats plus their risk assessment.
type MemberReport struct {
	MemberID  int64       `json:"member_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email,omitempty"`
	Role      string      `json:"role"`
	Stats     MemberStats `json:"stats"`
	RiskLevel string      `json:"risk_level"`
	RiskScore int         `json:"risk_score"`
}

// GroupReport is the full analytics payload for a group.
type GroupReport struct {
	GroupID       int64          `json:"group_id"`
	TotalSessions int            `json:"total_sessions"`
	Members       []MemberReport `json:"members"`
}

// Service assembles group analytics from stored extractions.
type Service struct {
	store  *store.Store
	logger *logging.Logger
}

// New returns an analytics Service.
func New(st *store.Store, logger *logging.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// GroupReport builds the analytics report for every active member of a
// group.
func (s *Service) GroupReport(ctx context.Context, groupID int64) (*GroupReport, error) {
	memberships, err := s.store.ListGroupMembers(ctx, groupID, true)
	if err != nil {
		return nil, fmt.Errorf("group analytics: %w", err)
	}

	now := time.Now().UTC()
	report := &GroupReport{GroupID: groupID, Members: make([]MemberReport, 0, len(memberships))}

	for _, gm := range memberships {
		member, err := s.memberReport(ctx, gm, groupID, now)
		if err != nil {
			return nil, err
		}
		report.Members = append(report.Members, *member)
	}

	report.TotalSessions, err = s.store.CountSessionsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("group analytics: %w", err)
	}
	return report, nil
}

func (s *Service) memberReport(ctx context.Context, gm store.GroupMember, groupID int64, now time.Time) (*MemberReport, error) {
	memberID := gm.MemberID

	attendance, err := s.store.GetMemberGroupAttendance(ctx, memberID, groupID)
	if err != nil {
		return nil, fmt.Errorf("member %d analytics: %w", memberID, err)
	}
	goals, err := s.store.GetMemberGoals(ctx, memberID, perMemberLimit)
	if err != nil {
		return nil, fmt.Errorf("member %d analytics: %w", memberID, err)
	}
	challenges, err := s.store.GetMemberChallenges(ctx, memberID, perMemberLimit)
	if err != nil {
		return nil, fmt.Errorf("member %d analytics: %w", memberID, err)
	}
	stucks, err := s.store.GetMemberStucks(ctx, memberID, perMemberLimit)
	if err != nil {
		return nil, fmt.Errorf("member %d analytics: %w", memberID, err)
	}
	marketing, err := s.store.GetMemberMarketing(ctx, memberID, perMemberLimit)
	if err != nil {
		return nil, fmt.Errorf("member %d analytics: %w", memberID, err)
	}

	stats := buildStats(attendance, goals, challenges, stucks, marketing)
	level, score := assess(attendance, goals, len(stucks), marketing, now)

	report := &MemberReport{
		MemberID:  memberID,
		Role:      gm.Role,
		Stats:     stats,
		RiskLevel: level,
		RiskScore: score,
	}
	if gm.Member != nil {
		report.Name = gm.Member.Name
		report.Email = gm.Member.Email
	}
	return report, nil
}

func buildStats(attendance []store.Attendance, goals []store.Goal, challenges []store.Challenge,
	stucks []store.Stuck, marketing []store.MarketingActivity) MemberStats {

	stats := MemberStats{
		TotalSessions:       len(attendance),
		TotalGoals:          len(goals),
		Challenges:          len(challenges),
		StuckDetections:     len(stucks),
		MarketingActivities: len(marketing),
	}

	present := 0
	for _, a := range attendance {
		if a.Status == store.StatusPresent {
			present++
		}
	}
	if len(attendance) > 0 {
		rate := float64(present) / float64(len(attendance)) * 100
		stats.AttendanceRate = math.Round(rate*10) / 10
	}

	for _, g := range goals {
		if g.IsCompleted {
			stats.CompletedGoals++
		}
		if g.IsVague {
			stats.VagueGoals++
		}
	}
	for _, m := range marketing {
		if m.IsWin {
			stats.Wins++
		}
	}
	return stats
}

// assess applies the risk rules. Wins or positive revenue short-circuit to
// crushing_it regardless of the accumulated score.
func assess(attendance []store.Attendance, goals []store.Goal, stuckCount int,
	marketing []store.MarketingActivity, now time.Time) (string, int) {

	score := 0

	absences := 0
	for _, a := range attendance {
		if a.Status != store.StatusPresent {
			absences++
		}
	}
	if absences >= 2 {
		score += 3
	} else if absences == 1 {
		score += 1
	}

	if len(attendance) > 0 && !hasRecentGoal(goals, now) {
		score += 2
	}

	if stuckCount >= 2 {
		score += 2
	}

	for _, m := range marketing {
		if m.IsWin || (m.Revenue != nil && *m.Revenue > 0) {
			return RiskCrushingIt, score
		}
	}

	switch {
	case score >= 4:
		return RiskHigh, score
	case score >= 2:
		return RiskMedium, score
	default:
		return RiskOnTrack, score
	}
}

func hasRecentGoal(goals []store.Goal, now time.Time) bool {
	cutoff := now.Add(-recentGoalWindow)
	for _, g := range goals {
		if g.CreatedAt.After(cutoff) {
			return true
		}
	}
	return false
}
