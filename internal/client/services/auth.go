// Package services contains the application services of the BookLog client:
// authentication choreography and cached journal browsing. Services sit
// between the CLI and the API gateway and own the session/cache side
// effects of each operation.
package services

import (
	"context"
	"fmt"

	"github.com/ameleshko/booklog-cli/internal/client/api"
	"github.com/ameleshko/booklog-cli/internal/client/cache"
	"github.com/ameleshko/booklog-cli/internal/client/models"
	"github.com/ameleshko/booklog-cli/internal/client/session"
	"github.com/ameleshko/booklog-cli/internal/logging"
)

// AuthService defines the authentication operations the CLI consumes.
//
// Contract:
//   - Login: exchange credentials for tokens, then fetch and store the profile.
//   - Register: create the account, then log in with the same credentials.
//   - Logout: best-effort server logout, then clear local state unconditionally.
//   - VerifyEmail / Profile / UpdateProfile: thin API pass-throughs.
//   - RequestProfileDeletion / ConfirmProfileDeletion: account removal flow;
//     confirmation clears local state whatever the server said.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context, key string) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
	RequestProfileDeletion(ctx context.Context) error
	ConfirmProfileDeletion(ctx context.Context, key string) error
}

// RegisterInput is the account-creation form. The password is submitted to
// the server twice, as the registration endpoint expects.
type RegisterInput struct {
	Email    string
	Username string
	Password string

	// Avatar is optional.
	Avatar *api.FormFile
}

type authService struct {
	api     *api.Client
	session *session.Session
	cache   cache.Cache
	log     logging.Logger
}

// NewAuth constructs the AuthService bound to the given gateway, session
// and cache.
func NewAuth(client *api.Client, sess *session.Session, c cache.Cache, log logging.Logger) AuthService {
	return &authService{api: client, session: sess, cache: c, log: log.With("component", "auth")}
}

// Login stores the token pair first and the profile second, so the profile
// fetch itself runs authenticated. A failed profile fetch leaves the tokens
// in place; the identity arrives on the next successful read.
func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	pair, err := a.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	a.session.SetCredentials(pair.Access, pair.Refresh)

	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	a.session.SetUser(user)

	a.log.Info(ctx, "logged in", "user", user.Username)
	return user, nil
}

// Register creates the account and immediately logs in with the submitted
// credentials, mirroring the platform's signup flow.
func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	reg := api.Registration{
		Email:     in.Email,
		Username:  in.Username,
		Password1: in.Password,
		Password2: in.Password,
		Avatar:    in.Avatar,
	}
	if err := a.api.Register(ctx, reg); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.Login(ctx, in.Username, in.Password)
}

// Logout tells the server to revoke the refresh token, then clears the
// session and cache even if the server call failed.
func (a *authService) Logout(ctx context.Context) error {
	if refresh, ok := a.session.RefreshToken(); ok {
		if err := a.api.Logout(ctx, refresh); err != nil {
			a.log.Warn(ctx, "server-side logout failed", "err", err)
		}
	}
	a.session.Clear()
	a.cache.Purge()
	return nil
}

func (a *authService) VerifyEmail(ctx context.Context, key string) error {
	if err := a.api.VerifyEmail(ctx, key); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	return nil
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	a.session.SetUser(user)
	return user, nil
}

func (a *authService) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	user, err := a.api.UpdateCurrentUser(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	a.session.SetUser(user)
	return user, nil
}

func (a *authService) RequestProfileDeletion(ctx context.Context) error {
	if err := a.api.RequestProfileDeletion(ctx); err != nil {
		return fmt.Errorf("request profile deletion: %w", err)
	}
	return nil
}

// ConfirmProfileDeletion clears local state regardless of the server's
// answer; a deleted account must not keep a live local session.
func (a *authService) ConfirmProfileDeletion(ctx context.Context, key string) error {
	err := a.api.ConfirmProfileDeletion(ctx, key)
	a.session.Clear()
	a.cache.Purge()
	if err != nil {
		return fmt.Errorf("confirm profile deletion: %w", err)
	}
	return nil
}
