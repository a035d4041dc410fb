// Package auth reconciles three sources of identity truth into one
// consistent authenticated-user view: OAuth callback tokens, the remote
// session service's current session, and the stored profile record.
package auth

import (
	"context"

	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// SessionService is the remote auth service. Implementations may fail on
// SignOut; the reconciler clears local state regardless.
type SessionService interface {
	GetSession(ctx context.Context) (*model.Session, error)
	SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
	SetSession(ctx context.Context, accessToken, refreshToken string) (*model.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	// OnSessionChange registers for session-change events (login elsewhere,
	// token refresh, external logout). The returned function unsubscribes.
	OnSessionChange(fn func(*model.Session)) (unsubscribe func())
}

// ProfileStore reads and creates profile rows keyed by the authenticated
// user's id. GetProfile returns errs.ErrNotFound for a missing row.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)
}

// State is the single consistent authentication view exposed to consumers.
// Every transition replaces it wholesale; it is never patched in place.
type State struct {
	User            *model.SessionUser `json:"user"`
	Profile         *model.Profile     `json:"profile"`
	Session         *model.Session     `json:"session"`
	Loading         bool               `json:"loading"`
	IsAuthenticated bool               `json:"isAuthenticated"`
	// Error carries a human-readable message after a failed OAuth
	// callback, for inline display with a retry action.
	Error string `json:"error,omitempty"`
	// RedirectToLogin tells the consumer to send the user to the login
	// view once the redirect delay has elapsed.
	RedirectToLogin bool `json:"redirectToLogin,omitempty"`
	// CleanURL is the callback URL with the token fragment stripped; the
	// consumer should replace the visible URL with it (no navigation).
	CleanURL string `json:"cleanUrl,omitempty"`
}
