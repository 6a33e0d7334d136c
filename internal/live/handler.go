package live

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	h "convomanage/internal/delivery/http/helpers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades authenticated requests into live-room connections.
type Handler struct {
	hub         *Hub
	conferences domain.ConferenceService
	logger      *slog.Logger
}

func NewHandler(hub *Hub, conferences domain.ConferenceService, logger *slog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		conferences: conferences,
		logger:      logger,
	}
}

// Join godoc
// @Summary Join a live conference room
// @Description Upgrades to a websocket and joins the conference's broadcast room. Only conferences with status live accept connections.
// @Tags live
// @Security BearerAuth
// @Param id path string true "Conference ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /conferences/{id}/live [get]
func (l *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	conferenceID := r.PathValue("id")

	conference, err := l.conferences.GetByID(r.Context(), conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "conference not found")
			return
		}
		l.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	if conference.Status != domain.StatusLive {
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "conference is not live")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Warn("websocket upgrade failed", "conference_id", conferenceID, "error", err)
		return
	}
	defer conn.Close()

	l.hub.Join(conferenceID, userID, conn)
}
