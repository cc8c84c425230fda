package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownersup/coachd/internal/validate"
)

// CreateMemberRequest is the request body for POST /api/members.
type CreateMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

func (s *Server) handleListMembers(c echo.Context) error {
	members, err := s.store.ListMembers(c.Request().Context(), queryBool(c, "active_only", false))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"members": members})
}

func (s *Server) handleGetMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	member, err := s.store.GetMember(c.Request().Context(), id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

func (s *Server) handleCreateMember(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := validate.Name(req.Name); err != nil {
		return badRequest(err.Error())
	}
	if err := validate.Email(req.Email); err != nil {
		return badRequest(err.Error())
	}

	member, err := s.store.CreateMember(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, member)
}

// memberID loads the path id and verifies the member exists.
func (s *Server) memberID(c echo.Context) (int64, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := s.store.GetMember(c.Request().Context(), id); err != nil {
		return 0, s.apiError(c, err)
	}
	return id, nil
}

func (s *Server) handleMemberGoals(c echo.Context) error {
	id, err := s.memberID(c)
	if err != nil {
		return err
	}
	goals, err := s.store.GetMemberGoals(c.Request().Context(), id, queryLimit(c, defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"goals": goals})
}

func (s *Server) handleMemberChallenges(c echo.Context) error {
	id, err := s.memberID(c)
	if err != nil {
		return err
	}
	challenges, err := s.store.GetMemberChallenges(c.Request().Context(), id, queryLimit(c, defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"challenges": challenges})
}

func (s *Server) handleMemberStucks(c echo.Context) error {
	id, err := s.memberID(c)
	if err != nil {
		return err
	}
	stucks, err := s.store.GetMemberStucks(c.Request().Context(), id, queryLimit(c, defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"stucks": stucks})
}

func (s *Server) handleMemberMarketing(c echo.Context) error {
	id, err := s.memberID(c)
	if err != nil {
		return err
	}
	activities, err := s.store.GetMemberMarketing(c.Request().Context(), id, queryLimit(c, defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"activities": activities})
}

func (s *Server) handleMemberAttendance(c echo.Context) error {
	id, err := s.memberID(c)
	if err != nil {
		return err
	}
	attendance, err := s.store.GetMemberAttendance(c.Request().Context(), id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"attendance": attendance})
}

func (s *Server) handleMemberGroups(c echo.Context) error {
	id, err := s.memberID(c)
	if err != nil {
		return err
	}
	groups, err := s.store.ListMemberGroups(c.Request().Context(), id, queryBool(c, "active_only", true))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"groups": groups})
}
