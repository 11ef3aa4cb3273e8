package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig collects the handlers and cross-cutting dependencies the
// router mounts.
type RouterConfig struct {
	Auth      *AuthHandler
	Sessions  *SessionHandler
	Calendar  *CalendarHandler
	Games     *GameHandler
	Resources *ResourceHandler
	Validator TokenValidator
	Health    Pinger
	Logger    *slog.Logger
}

// NewRouter assembles the HTTP API. Everything except login and health sits
// behind bearer authentication.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(cfg.Logger))

	r.Get("/healthz", healthHandler(cfg.Health, cfg.Logger))

	if cfg.Auth != nil {
		r.Post("/auth/login", cfg.Auth.Login)
	}

	r.Group(func(r chi.Router) {
		if cfg.Validator != nil {
			r.Use(RequireAuth(cfg.Validator, cfg.Logger))
		}

		if cfg.Sessions != nil {
			r.Post("/sessions", cfg.Sessions.Create)
			r.Get("/sessions/{sessionID}", cfg.Sessions.Get)
			r.Put("/sessions/{sessionID}", cfg.Sessions.Update)
			r.Post("/sessions/{sessionID}/cancel", cfg.Sessions.Cancel)
			r.Post("/sessions/{sessionID}/complete", cfg.Sessions.Complete)
			r.Delete("/sessions/{sessionID}", cfg.Sessions.Delete)
		}

		if cfg.Calendar != nil {
			r.Get("/calendar/day", cfg.Calendar.Day)
		}

		if cfg.Games != nil {
			r.Get("/games", cfg.Games.List)
			r.Post("/games", cfg.Games.Create)
			r.Put("/games/{gameID}", cfg.Games.Update)
			r.Delete("/games/{gameID}", cfg.Games.Delete)
		}

		if cfg.Resources != nil {
			r.Get("/resources", cfg.Resources.List)
		}
	})

	return r
}

func healthHandler(pinger Pinger, logger *slog.Logger) http.HandlerFunc {
	responder := newResponder(logger)

	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		responder.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
