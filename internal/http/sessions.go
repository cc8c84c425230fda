package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ownersup/coachd/internal/session"
)

// CreateSessionRequest is the request body for POST /api/sessions.
type CreateSessionRequest struct {
	GroupID int64  `json:"group_id"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
}

// ProcessTranscriptRequest is the request body for
// POST /api/sessions/:id/process-transcript.
type ProcessTranscriptRequest struct {
	Transcript string `json:"transcript"`
}

// SaveExtractionsResponse reports the outcome of a best-effort save.
type SaveExtractionsResponse struct {
	Message string            `json:"message"`
	Saved   bool              `json:"saved"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.GroupID <= 0 {
		return badRequest("group_id is required")
	}
	date, err := parseSessionDate(req.Date)
	if err != nil {
		return badRequest("date must be YYYY-MM-DD or RFC 3339")
	}

	sess, err := s.store.CreateSession(c.Request().Context(), req.GroupID, date, req.Notes)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusCreated, sess)
}

func parseSessionDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (s *Server) handleGetSession(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sess, err := s.store.GetSession(c.Request().Context(), id)
	if err != nil {
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (s *Server) handleProcessTranscript(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ProcessTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	review, err := s.sessions.Process(c.Request().Context(), id, req.Transcript)
	if err != nil {
		if errors.Is(err, session.ErrInvalidTranscript) {
			return badRequest(err.Error())
		}
		return s.apiError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

func (s *Server) handleSaveExtractions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var review session.Review
	if err := c.Bind(&review); err != nil {
		return badRequest("invalid request body")
	}

	report, err := s.sessions.Save(c.Request().Context(), id, &review)
	if err != nil {
		return s.apiError(c, err)
	}

	resp := SaveExtractionsResponse{Message: "extractions saved", Saved: true}
	if !report.Ok() {
		resp.Message = "extractions saved with category failures"
		resp.Errors = make(map[string]string)
		for category, catErr := range report.Errors() {
			resp.Errors[category] = catErr.Error()
		}
	}
	return c.JSON(http.StatusOK, resp)
}
