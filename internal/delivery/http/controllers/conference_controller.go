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

// CreateConferenceRequest is the request body for POST /conferences
type CreateConferenceRequest struct {
	domain.ConferenceDraft
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.Status != "" && !c.Status.Valid() {
		errs = append(errs, "status must be one of draft, published, live, completed, cancelled")
	}
	return errs
}

// UpdateConferenceRequest is the request body for PATCH /conferences/{id}
type UpdateConferenceRequest struct {
	domain.ConferencePatch
}

// Validate implements Validator.
func (c UpdateConferenceRequest) Validate() []string {
	var errs []string
	if c.Empty() {
		errs = append(errs, "at least one field is required")
	}
	if c.Status != nil && !c.Status.Valid() {
		errs = append(errs, "status must be one of draft, published, live, completed, cancelled")
	}
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	return errs
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List visible conferences
// @Description Returns the conferences visible to the caller. Organizers see their own conferences in any status, attendees see conferences they hold a confirmed registration for, everyone else sees published conferences. Ordered descending by start_date.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the conference list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences [get]
func (c *ConferenceController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	conferences, err := c.Service.ListForUser(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, conferences)
}

// Create godoc
// @Summary Create a conference
// @Description Create a conference owned by the caller. Organizer role required. ticket_price may be a number or a numeric string; it is stored only when is_paid is true.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateConferenceRequest true "Conference data"
// @Success 201 {object} helpers.APIResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /conferences [post]
func (c *ConferenceController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req CreateConferenceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	conference, err := c.Service.Create(r.Context(), userID, req.ConferenceDraft)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "only organizers can create conferences")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, conference)
}

// Get godoc
// @Summary Get a conference
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the conference"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{id} [get]
func (c *ConferenceController) Get(w http.ResponseWriter, r *http.Request) {
	conference, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, conference)
}

// Update godoc
// @Summary Update a conference
// @Description Partially update a conference. Only the owning organizer may update. Setting is_paid to false clears ticket_price.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID"
// @Param body body UpdateConferenceRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{id} [patch]
func (c *ConferenceController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req UpdateConferenceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	conference, err := c.Service.Update(r.Context(), r.PathValue("id"), userID, req.ConferencePatch)
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
	h.WriteJSONSuccess(w, http.StatusOK, conference)
}
