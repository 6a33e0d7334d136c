package controllers

import (
	"log/slog"
	"net/http"

	h "convomanage/internal/delivery/http/helpers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
)

type NotificationController struct {
	Logger   *slog.Logger
	Notifier domain.Notifier
}

func NewNotificationController(logger *slog.Logger, notifier domain.Notifier) *NotificationController {
	return &NotificationController{
		Logger:   logger,
		Notifier: notifier,
	}
}

// ListMine godoc
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the caller's notifications, newest first"
// @Router /notifications [get]
func (c *NotificationController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	notifications, err := c.Notifier.ListForUser(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, notifications)
}
