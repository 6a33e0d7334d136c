package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "convomanage/internal/delivery/http/helpers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for a conference
// @Description Register the caller for a conference. Free conferences confirm immediately; paid conferences create a pending registration awaiting payment. Registering twice returns the existing registration.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID"
// @Success 201 {object} helpers.APIResponse "data contains the new registration"
// @Success 200 {object} helpers.APIResponse "data contains the existing registration"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{id}/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	reg, created, err := c.Service.Register(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.WriteJSONSuccess(w, status, reg)
}

// ListMine godoc
// @Summary List my registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the caller's registrations"
// @Router /registrations [get]
func (c *RegistrationController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	regs, err := c.Service.ListMyRegistrations(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, regs)
}
