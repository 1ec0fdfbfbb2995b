package services

import (
	"context"
	"fmt"

	"github.com/dsemenov/dosetrack/internal/client/httpclient"
	"github.com/dsemenov/dosetrack/internal/client/repositories/metadata"
)

// AuthService obtains tokens from the server and keeps the active one in
// local metadata, where the sync scheduler looks it up.
type AuthService struct {
	remote httpclient.Remote
	meta   metadata.Repository
}

func NewAuthService(remote httpclient.Remote, meta metadata.Repository) *AuthService {
	return &AuthService{remote: remote, meta: meta}
}

func (a *AuthService) Register(ctx context.Context, username, password string) error {
	token, err := a.remote.Register(ctx, username, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return a.meta.Set(ctx, metadata.KeyAuthToken, token)
}

func (a *AuthService) Login(ctx context.Context, username, password string) error {
	token, err := a.remote.Authenticate(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return a.meta.Set(ctx, metadata.KeyAuthToken, token)
}

func (a *AuthService) Logout(ctx context.Context) error {
	return a.meta.Delete(ctx, metadata.KeyAuthToken)
}

// IsAuthenticated reports whether a token is stored locally. It does not
// check the token against the server; an expired token surfaces as an auth
// error on the next sync.
func (a *AuthService) IsAuthenticated(ctx context.Context) bool {
	token, err := a.meta.Get(ctx, metadata.KeyAuthToken)
	return err == nil && token != ""
}
