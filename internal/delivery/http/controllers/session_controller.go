package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "convomanage/internal/delivery/http/helpers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
)

// CreateSessionRequest is the request body for POST /conferences/{id}/sessions
type CreateSessionRequest struct {
	domain.SessionDraft
}

// Validate implements Validator.
func (s CreateSessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		errs = append(errs, "start_time and end_time are required")
	} else if !s.EndTime.After(s.StartTime) {
		errs = append(errs, "end_time must be after start_time")
	}
	return errs
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Add a session to a conference
// @Description Create a talk or workshop inside a conference. Only the conference organizer may add sessions.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID"
// @Param body body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{id}/sessions [post]
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req CreateSessionRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	session, err := c.Service.Create(r.Context(), r.PathValue("id"), userID, req.SessionDraft)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "conference not found")
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "not the conference organizer")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, session)
}

// List godoc
// @Summary List a conference's sessions
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the session list ordered by start_time"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{id}/sessions [get]
func (c *SessionController) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := c.Service.ListByConference(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sessions)
}
