package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

func (a *API) handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req syncwire.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		a.writeError(ctx, w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := a.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			a.writeError(ctx, w, http.StatusConflict, "username is taken")
			return
		}
		a.logger.Error(ctx, "register failed", "error", err)
		a.writeError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(ctx, w, http.StatusOK, syncwire.TokenResponse{AccessToken: token})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req syncwire.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := a.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			a.writeError(ctx, w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		a.logger.Error(ctx, "login failed", "error", err)
		a.writeError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(ctx, w, http.StatusOK, syncwire.TokenResponse{AccessToken: token})
}

func (a *API) handlePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		a.writeError(ctx, w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req syncwire.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.sync.Push(ctx, userID, req.Changes)
	if err != nil {
		a.logger.Error(ctx, "push failed", "user_id", userID, "error", err)
		a.writeError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(ctx, w, http.StatusOK, resp)
}

func (a *API) handlePull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		a.writeError(ctx, w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req syncwire.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.sync.Pull(ctx, userID, req.Cursor, req.Limit)
	if err != nil {
		a.logger.Error(ctx, "pull failed", "user_id", userID, "error", err)
		a.writeError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(ctx, w, http.StatusOK, resp)
}
