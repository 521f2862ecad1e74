package api

import (
	"context"
	"net/http"

	"github.com/ameleshko/booklog-cli/internal/client/models"
)

// TokenPair is what a successful login yields.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Registration carries the multipart fields of account creation. Password
// is submitted twice, as the backend form expects.
type Registration struct {
	Email     string
	Username  string
	Password1 string
	Password2 string

	// Avatar is optional.
	Avatar *FormFile
}

// Login exchanges credentials for a token pair. It does not touch the
// session; storing credentials is the auth service's decision.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "auth/login/",
		Body:   map[string]string{"username": username, "password": password},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout invalidates the server-side session for a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "auth/logout/",
		Body:   map[string]string{"refresh_token": refreshToken},
	}, nil)
}

// Register creates an account. Sent as multipart form-data because of the
// optional avatar file.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	form := &Form{
		Fields: map[string]string{
			"email":     reg.Email,
			"username":  reg.Username,
			"password1": reg.Password1,
			"password2": reg.Password2,
		},
	}
	if reg.Avatar != nil {
		avatar := *reg.Avatar
		if avatar.Field == "" {
			avatar.Field = "logo"
		}
		form.Files = append(form.Files, avatar)
	}

	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "auth/register/",
		Form:   form,
	}, nil)
}

// VerifyEmail confirms an address with the opaque key from the mail.
func (c *Client) VerifyEmail(ctx context.Context, key string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "auth/register/verify-email/",
		Body:   map[string]string{"key": key},
	}, nil)
}

// CurrentUser fetches the authenticated caller's profile.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "users/user/current/",
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateCurrentUser partially updates the caller's profile.
func (c *Client) UpdateCurrentUser(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	var u models.User
	err := c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   "users/user/current/",
		Body:   patch,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RequestProfileDeletion asks the server to mail a deletion-confirmation key.
func (c *Client) RequestProfileDeletion(ctx context.Context) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "profile-delete/request/",
	}, nil)
}

// ConfirmProfileDeletion finalizes account deletion with the mailed key.
func (c *Client) ConfirmProfileDeletion(ctx context.Context, key string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "profile-delete/confirm/",
		Body:   map[string]string{"key": key},
	}, nil)
}
