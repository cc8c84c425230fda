package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ownersup/coachd/internal/extraction"
)

// Standalone extraction endpoints: run a single oracle category over an
// ad-hoc transcript without touching a session. Useful for prompt tuning and
// one-off analysis.

// ExtractRequest is the request body for the /api/extract endpoints.
type ExtractRequest struct {
	Transcript string `json:"transcript"`
}

func (s *Server) bindExtract(c echo.Context) (string, error) {
	var req ExtractRequest
	if err := c.Bind(&req); err != nil {
		return "", badRequest("invalid request body")
	}
	if req.Transcript == "" {
		return "", badRequest("transcript is required")
	}
	return req.Transcript, nil
}

func (s *Server) extractError(c echo.Context, err error) error {
	if errors.Is(err, extraction.ErrNotConfigured) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "extraction provider not configured")
	}
	return s.apiError(c, err)
}

func (s *Server) handleExtractGoals(c echo.Context) error {
	transcript, err := s.bindExtract(c)
	if err != nil {
		return err
	}
	sheet, err := s.oracle.ExtractGoals(c.Request().Context(), transcript)
	if err != nil {
		return s.extractError(c, err)
	}
	return c.JSON(http.StatusOK, sheet)
}

func (s *Server) handleExtractChallenges(c echo.Context) error {
	transcript, err := s.bindExtract(c)
	if err != nil {
		return err
	}
	sheet, err := s.oracle.ExtractChallenges(c.Request().Context(), transcript)
	if err != nil {
		return s.extractError(c, err)
	}
	return c.JSON(http.StatusOK, sheet)
}

func (s *Server) handleExtractMarketing(c echo.Context) error {
	transcript, err := s.bindExtract(c)
	if err != nil {
		return err
	}
	sheet, err := s.oracle.ExtractMarketing(c.Request().Context(), transcript)
	if err != nil {
		return s.extractError(c, err)
	}
	return c.JSON(http.StatusOK, sheet)
}
