package auth

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// DefaultRedirectDelay is how long a failed OAuth callback stays visible
// before the consumer should redirect to login.
const DefaultRedirectDelay = 3 * time.Second

// Reconciler merges fragment tokens, the remote session, and the profile
// record into one State, and keeps it live via session-change events until
// Close is called.
type Reconciler struct {
	sessions SessionService
	profiles ProfileStore
	logger   zerolog.Logger

	redirectTo    string
	redirectDelay time.Duration

	mu          sync.Mutex
	state       State
	closed      bool
	unsubscribe func()
}

type Option func(*Reconciler)

// WithRedirectURL sets the OAuth redirect target passed to the provider.
func WithRedirectURL(u string) Option {
	return func(r *Reconciler) { r.redirectTo = u }
}

// WithRedirectDelay overrides the post-error login redirect delay.
func WithRedirectDelay(d time.Duration) Option {
	return func(r *Reconciler) { r.redirectDelay = d }
}

func NewReconciler(sessions SessionService, profiles ProfileStore, logger zerolog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		sessions:      sessions,
		profiles:      profiles,
		logger:        logger,
		redirectDelay: DefaultRedirectDelay,
		state:         State{Loading: true},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.unsubscribe = sessions.OnSessionChange(r.onSessionChange)
	return r
}

// Snapshot returns the current authentication view.
func (r *Reconciler) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// RedirectDelay is the delay consumers should wait before honoring
// RedirectToLogin.
func (r *Reconciler) RedirectDelay() time.Duration {
	return r.redirectDelay
}

// Initialize resolves the initial authentication state for a page load.
// If rawURL carries an OAuth redirect fragment the tokens are exchanged
// and the fragment is stripped (State.CleanURL); otherwise the remote
// service is asked for an existing session. Remote errors during plain
// initialization are non-fatal and resolve to unauthenticated.
func (r *Reconciler) Initialize(ctx context.Context, rawURL string) State {
	access, refresh, errParam, errDesc, clean, hasFragment := parseCallbackURL(rawURL)
	if hasFragment {
		state := r.HandleCallback(ctx, access, refresh, errParam, errDesc)
		if state.IsAuthenticated {
			state.CleanURL = clean
			r.replaceState(state)
		}
		return state
	}

	sess, err := r.sessions.GetSession(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("session lookup failed, treating as unauthenticated")
		return r.replaceState(State{})
	}
	if sess == nil {
		return r.replaceState(State{})
	}
	return r.applySession(ctx, sess)
}

// HandleCallback processes OAuth redirect parameters. A provider error or
// a failed token exchange surfaces a readable message and flags a delayed
// redirect to the login view.
func (r *Reconciler) HandleCallback(ctx context.Context, accessToken, refreshToken, errParam, errDescription string) State {
	if errParam != "" {
		msg := errDescription
		if msg == "" {
			msg = errParam
		}
		r.logger.Warn().Str("error", errParam).Str("description", errDescription).Msg("oauth callback reported an error")
		return r.replaceState(State{Error: msg, RedirectToLogin: true})
	}

	if accessToken == "" {
		// No tokens in the callback; fall back to an existing session.
		sess, err := r.sessions.GetSession(ctx)
		if err != nil || sess == nil {
			return r.replaceState(State{RedirectToLogin: true})
		}
		return r.applySession(ctx, sess)
	}

	sess, err := r.sessions.SetSession(ctx, accessToken, refreshToken)
	if err != nil {
		r.logger.Warn().Err(err).Msg("token exchange failed")
		return r.replaceState(State{Error: "Authentication failed", RedirectToLogin: true})
	}
	return r.applySession(ctx, sess)
}

// SignInWithOAuth returns the provider authorize URL to send the user to.
func (r *Reconciler) SignInWithOAuth(ctx context.Context, provider string) (string, error) {
	return r.sessions.SignInWithOAuth(ctx, provider, r.redirectTo)
}

// SignInWithPassword performs a password-grant login.
func (r *Reconciler) SignInWithPassword(ctx context.Context, email, password string) (State, error) {
	sess, err := r.sessions.SignInWithPassword(ctx, email, password)
	if err != nil {
		return r.Snapshot(), err
	}
	return r.applySession(ctx, sess), nil
}

// SignOut revokes the remote session and clears all local authentication
// state. The local clear happens regardless of the remote result: logout
// must never leave the client looking authenticated.
func (r *Reconciler) SignOut(ctx context.Context) State {
	r.mu.Lock()
	token := ""
	if r.state.Session != nil {
		token = r.state.Session.AccessToken
	}
	r.mu.Unlock()

	if err := r.sessions.SignOut(ctx, token); err != nil {
		r.logger.Warn().Err(err).Msg("remote sign-out failed, clearing local state anyway")
	}
	return r.replaceState(State{})
}

// Close tears the reconciler down. Later session-change events are dropped.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	unsub := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// applySession loads or creates the profile for the session's user and
// replaces the whole state with the authenticated view.
func (r *Reconciler) applySession(ctx context.Context, sess *model.Session) State {
	user := sess.User
	profile, err := r.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			created, upErr := r.profiles.UpsertProfile(ctx, &model.Profile{
				ID:        user.ID,
				Email:     user.Email,
				FullName:  user.Name,
				AvatarURL: user.AvatarURL,
				Provider:  user.Provider,
			})
			if upErr != nil {
				r.logger.Error().Err(upErr).Str("user_id", user.ID).Msg("profile create failed")
			} else {
				profile = created
			}
		} else {
			r.logger.Error().Err(err).Str("user_id", user.ID).Msg("profile load failed")
		}
	}

	return r.replaceState(State{
		User:            &user,
		Profile:         profile,
		Session:         sess,
		IsAuthenticated: true,
	})
}

// onSessionChange applies an inbound session event. Events after Close
// are dropped; each event fully replaces the state rather than patching
// it, so consumers never observe a partial view.
func (r *Reconciler) onSessionChange(sess *model.Session) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	if sess == nil {
		r.replaceState(State{})
		return
	}
	r.applySession(context.Background(), sess)
}

// replaceState swaps the whole state. Loading is considered settled after
// any replacement. Returns the new state; a no-op if closed.
func (r *Reconciler) replaceState(next State) State {
	next.Loading = false
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.state
	}
	r.state = next
	return next
}

// parseCallbackURL extracts OAuth parameters from a redirect URL. Tokens
// arrive in the fragment (implicit flow); hasFragment is true when any
// recognized parameter is present. clean is the URL without its fragment.
func parseCallbackURL(rawURL string) (access, refresh, errParam, errDesc, clean string, hasFragment bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Fragment == "" {
		return "", "", "", "", rawURL, false
	}
	values, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return "", "", "", "", rawURL, false
	}

	access = values.Get("access_token")
	refresh = values.Get("refresh_token")
	errParam = values.Get("error")
	errDesc = values.Get("error_description")

	u.Fragment = ""
	clean = u.String()
	hasFragment = access != "" || errParam != ""
	return access, refresh, errParam, errDesc, clean, hasFragment
}
