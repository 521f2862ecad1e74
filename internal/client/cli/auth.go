package cli

import (
	"context"
	"time"

	"github.com/ameleshko/booklog-cli/internal/client/api"
	"github.com/ameleshko/booklog-cli/internal/client/models"
	"github.com/ameleshko/booklog-cli/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// register prompts for the signup form and creates the account. The service
// logs the new account in right away, so on success the prompt switches to
// the authenticated view.
func (a *App) register(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	user, err := a.auth.Register(ctx, services.RegisterInput{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		a.printf("Registration failed: %v\n", err)
		return
	}
	a.printf("Welcome, %s! Check your mailbox for the confirmation key.\n", user.DisplayName())
}

func (a *App) login(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.printf("Login failed: %v\n", err)
		return
	}
	a.printf("Logged in as %s\n", user.DisplayName())
}

func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}
	if err := a.auth.Logout(ctx); err != nil {
		a.printf("Logout failed: %v\n", err)
		return
	}
	a.printf("Logged out.\n")
}

// whoami prints the stored profile and, when the access token is a readable
// JWT, its expiry.
func (a *App) whoami(ctx context.Context) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}

	user, err := a.auth.Profile(ctx)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	a.printf("Username:  %s\n", user.Username)
	a.printf("Name:      %s\n", user.Name)
	a.printf("Email:     %s (confirmed: %t)\n", user.Email, user.EmailConfirmed)
	a.printf("Role:      %s\n", user.UserType.Label())

	if token, ok := a.session.AccessToken(); ok {
		if info, err := api.InspectAccessToken(token); err == nil && !info.ExpiresAt.IsZero() {
			a.printf("Token expires at %s\n", info.ExpiresAt.Format(time.RFC3339))
		}
	}
}

func (a *App) updateProfile(ctx context.Context) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}

	name, err := getSimpleText(a.reader, "New display name (empty to keep)", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		a.printf("error: %v\n", err)
		return
	}

	var patch models.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if email != "" {
		patch.Email = &email
	}
	if patch.Name == nil && patch.Email == nil {
		a.printf("Nothing to update.\n")
		return
	}

	user, err := a.auth.UpdateProfile(ctx, patch)
	if err != nil {
		a.printf("Update failed: %v\n", err)
		return
	}
	a.printf("Profile updated: %s <%s>\n", user.DisplayName(), user.Email)
}

func (a *App) verifyEmail(ctx context.Context, args []string) {
	var key string
	if len(args) > 0 {
		key = args[0]
	} else {
		var err error
		key, err = getSimpleText(a.reader, "Enter confirmation key", a.out)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
	}

	if err := a.auth.VerifyEmail(ctx, key); err != nil {
		a.printf("Verification failed: %v\n", err)
		return
	}
	a.printf("Email confirmed.\n")
}

// deleteAccount drives the two-step removal flow: "delete-account" asks the
// server to mail a confirmation key, "delete-account <key>" finishes the job.
func (a *App) deleteAccount(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		a.printf("Not logged in.\n")
		return
	}

	if len(args) == 0 {
		if err := a.auth.RequestProfileDeletion(ctx); err != nil {
			a.printf("error: %v\n", err)
			return
		}
		a.printf("Confirmation key sent. Run 'delete-account <key>' to finish.\n")
		return
	}

	if err := a.auth.ConfirmProfileDeletion(ctx, args[0]); err != nil {
		a.printf("Deletion failed: %v\n", err)
		return
	}
	a.printf("Account deleted.\n")
}
