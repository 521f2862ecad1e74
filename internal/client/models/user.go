// Package models defines the platform entities as the REST API serializes
// them. Field names follow the backend's snake_case JSON.
package models

// UserType classifies an account's role on the platform.
type UserType int

const (
	UserTypeJournalist UserType = iota
	UserTypeReader
	UserTypeStaff
	UserTypeAdmin
)

func (t UserType) Label() string {
	switch t {
	case UserTypeJournalist:
		return "journalist"
	case UserTypeReader:
		return "reader"
	case UserTypeStaff:
		return "staff"
	case UserTypeAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// User is the authenticated caller's profile.
type User struct {
	ID             int64    `json:"id"`
	Username       string   `json:"username"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	EmailConfirmed bool     `json:"email_confirmed"`
	Logo           string   `json:"logo"`
	UserType       UserType `json:"user_type"`
}

// DisplayName prefers the free-form name over the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// UserPatch carries a partial profile update. Nil fields are omitted from
// the PATCH body so the server leaves them untouched.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
