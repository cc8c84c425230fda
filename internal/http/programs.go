package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownersup/coachd/internal/store"
	"github.com/ownersup/coachd/internal/validate"
)

// CreateProgramRequest is the request body for POST /api/programs.
type CreateProgramRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// UpdateProgramRequest is the request body for PATCH /api/programs/:id.
// Absent fields are left unchanged.
type UpdateProgramRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleListPrograms(c echo.Context) error {
	programs, err := s.store.ListPrograms(c.Request().Context(), queryBool(c, "active_only", false))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"programs": programs})
}

func (s *Server) handleGetProgram(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	program, err := s.store.GetProgram(c.Request().Context(), id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, program)
}

func (s *Server) handleCreateProgram(c echo.Context) error {
	var req CreateProgramRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := validate.Name(req.Name); err != nil {
		return badRequest(err.Error())
	}
	if req.Slug == "" {
		req.Slug = validate.SlugFromName(req.Name)
	}
	if err := validate.Slug(req.Slug); err != nil {
		return badRequest(err.Error())
	}

	program, err := s.store.CreateProgram(c.Request().Context(), req.Name, req.Slug, req.Description)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, program)
}

func (s *Server) handleUpdateProgram(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateProgramRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Name != nil {
		if err := validate.Name(*req.Name); err != nil {
			return badRequest(err.Error())
		}
	}
	if req.Slug != nil {
		if err := validate.Slug(*req.Slug); err != nil {
			return badRequest(err.Error())
		}
	}

	program, err := s.store.UpdateProgram(c.Request().Context(), id, store.ProgramUpdate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, program)
}

func (s *Server) handleDeleteProgram(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := s.store.DeleteProgram(c.Request().Context(), id); err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "program deactivated"})
}

func (s *Server) handleListProgramGroups(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := s.store.GetProgram(ctx, id); err != nil {
		return s.apiError(c, err)
	}
	groups, err := s.store.ListGroupsByProgram(ctx, id, queryBool(c, "active_only", false))
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"groups": groups})
}
