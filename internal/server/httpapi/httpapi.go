// Package httpapi exposes the sync protocol over HTTP with JSON bodies.
//
// Routes:
//
//	POST /api/user/register   create an account, returns an access token
//	POST /api/user/login      verify credentials, returns an access token
//	POST /api/sync/push       apply client changes (auth)
//	POST /api/sync/pull       fetch changes after a cursor (auth)
//	GET  /api/ping            liveness probe
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dsemenov/dosetrack/internal/logging"
	"github.com/dsemenov/dosetrack/internal/server/services"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

type API struct {
	users     *services.UserService
	sync      *services.SyncService
	logger    logging.Logger
	jwtSecret []byte
}

func New(users *services.UserService, sync *services.SyncService, logger logging.Logger, jwtSecret []byte) *API {
	return &API{
		users:     users,
		sync:      sync,
		logger:    logger,
		jwtSecret: jwtSecret,
	}
}

// Router builds the chi router with all routes mounted.
func (a *API) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", a.handlePing)
		r.Post("/user/register", a.handleRegister)
		r.Post("/user/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(a.authMiddleware)
			r.Post("/sync/push", a.handlePush)
			r.Post("/sync/pull", a.handlePull)
		})
	})

	return r
}

func (a *API) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error(ctx, "failed to encode response", "error", err)
	}
}

func (a *API) writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	a.writeJSON(ctx, w, status, syncwire.ErrorResponse{Error: msg})
}
