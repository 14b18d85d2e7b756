package domain

import "time"

// User is a signed-up identity. Records are appended, never edited.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is what a verified credential asserts about its holder.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// AuthResult is returned by a successful login or signup.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SessionState is the presentation-side view of authentication.
type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionAuthenticating  SessionState = "authenticating"
	SessionAuthenticated   SessionState = "authenticated"
)
