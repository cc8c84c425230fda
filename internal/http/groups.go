package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownersup/coachd/internal/store"
	"github.com/ownersup/coachd/internal/validate"
)

// CreateGroupRequest is the request body for POST /api/groups.
type CreateGroupRequest struct {
	ProgramID int64  `json:"program_id"`
	Name      string `json:"name"`
	Cohort    string `json:"cohort"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AssignMemberRequest is the request body for POST /api/groups/:id/members.
type AssignMemberRequest struct {
	MemberID int64  `json:"member_id"`
	Role     string `json:"role"`
}

func (s *Server) handleCreateGroup(c echo.Context) error {
	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.ProgramID <= 0 {
		return badRequest("program_id is required")
	}
	if err := validate.Name(req.Name); err != nil {
		return badRequest(err.Error())
	}

	group, err := s.store.CreateGroup(c.Request().Context(), req.ProgramID, req.Name,
		req.Cohort, req.StartDate, req.EndDate)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, group)
}

func (s *Server) handleGetGroup(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	group, err := s.store.GetGroup(c.Request().Context(), id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, group)
}

func (s *Server) handleListGroupMembers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := s.store.GetGroup(ctx, id); err != nil {
		return s.apiError(c, err)
	}
	members, err := s.store.ListGroupMembers(ctx, id, queryBool(c, "active_only", true))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"members": members})
}

func (s *Server) handleAssignMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AssignMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.MemberID <= 0 {
		return badRequest("member_id is required")
	}
	if req.Role == "" {
		req.Role = store.RoleParticipant
	}
	if !store.ValidGroupMemberRole(req.Role) {
		return badRequest("invalid role")
	}

	gm, err := s.store.AssignMemberToGroup(c.Request().Context(), id, req.MemberID, req.Role)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, gm)
}

func (s *Server) handleRemoveGroupMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.store.RemoveMemberFromGroup(c.Request().Context(), id); err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "member removed from group"})
}

func (s *Server) handleListGroupSessions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := s.store.GetGroup(ctx, id); err != nil {
		return s.apiError(c, err)
	}
	sessions, err := s.store.ListSessionsByGroup(ctx, id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleGroupAnalytics(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := s.store.GetGroup(ctx, id); err != nil {
		return s.apiError(c, err)
	}
	report, err := s.analytics.GroupReport(ctx, id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
