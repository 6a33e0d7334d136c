package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"convomanage/internal/delivery/http/controllers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"
	"convomanage/internal/live"
)

// Controllers bundles the controllers the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Conference    *controllers.ConferenceController
	Registration  *controllers.RegistrationController
	Session       *controllers.SessionController
	Notification  *controllers.NotificationController
	Live          *live.Handler
	TokenVerifier domain.TokenVerifier
	TokenRevoker  domain.TokenRevoker
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(c.TokenVerifier, c.TokenRevoker, logger)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /api/v1/auth/login", c.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", auth(c.Auth.Logout))
	mux.HandleFunc("GET /api/v1/auth/session", auth(c.Auth.Session))

	// Conferences
	mux.HandleFunc("GET /api/v1/conferences", auth(c.Conference.List))
	mux.HandleFunc("POST /api/v1/conferences", auth(c.Conference.Create))
	mux.HandleFunc("GET /api/v1/conferences/{id}", auth(c.Conference.Get))
	mux.HandleFunc("PATCH /api/v1/conferences/{id}", auth(c.Conference.Update))

	// Sessions
	mux.HandleFunc("POST /api/v1/conferences/{id}/sessions", auth(c.Session.Create))
	mux.HandleFunc("GET /api/v1/conferences/{id}/sessions", auth(c.Session.List))

	// Registrations
	mux.HandleFunc("POST /api/v1/conferences/{id}/register", auth(c.Registration.Register))
	mux.HandleFunc("GET /api/v1/registrations", auth(c.Registration.ListMine))

	// Notifications
	mux.HandleFunc("GET /api/v1/notifications", auth(c.Notification.ListMine))

	// Live rooms
	mux.HandleFunc("GET /api/v1/conferences/{id}/live", auth(c.Live.Join))

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
