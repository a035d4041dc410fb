package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

// SupabaseClient talks to a Supabase project's GoTrue auth endpoints and
// PostgREST profiles table. It implements SessionService and ProfileStore.
type SupabaseClient struct {
	BaseURL string
	AnonKey string
	Client  *http.Client
	logger  zerolog.Logger

	mu          sync.Mutex
	current     *model.Session
	subscribers map[int]func(*model.Session)
	nextSubID   int
}

func NewSupabaseClient(baseURL, anonKey string, logger zerolog.Logger) *SupabaseClient {
	return &SupabaseClient{
		BaseURL:     baseURL,
		AnonKey:     anonKey,
		Client:      &http.Client{Timeout: 20 * time.Second},
		logger:      logger,
		subscribers: map[int]func(*model.Session){},
	}
}

// Configured reports whether the client has a project URL to talk to.
func (s *SupabaseClient) Configured() bool {
	return s.BaseURL != "" && s.AnonKey != ""
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		AppMetadata  struct {
			Provider string `json:"provider"`
		} `json:"app_metadata"`
		UserMetadata struct {
			FullName  string `json:"full_name"`
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (s *SupabaseClient) doRequest(ctx context.Context, method, path string, payload any, bearer string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.AnonKey)
	if bearer == "" {
		bearer = s.AnonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.ErrRemoteService, err.Error())
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode >= 400 {
		return nil, errs.Wrapf(errs.ErrRemoteService, "supabase %s %s: %d: %s", method, path, res.StatusCode, string(raw))
	}
	return raw, nil
}

func (s *SupabaseClient) sessionFromToken(tr tokenResponse) *model.Session {
	name := tr.User.UserMetadata.FullName
	if name == "" {
		name = tr.User.UserMetadata.Name
	}
	return &model.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
		User: model.SessionUser{
			ID:        tr.User.ID,
			Email:     tr.User.Email,
			Name:      name,
			AvatarURL: tr.User.UserMetadata.AvatarURL,
			Provider:  tr.User.AppMetadata.Provider,
		},
	}
}

// GetSession returns the client's current session, nil when signed out.
func (s *SupabaseClient) GetSession(ctx context.Context) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

// SignInWithOAuth builds the provider authorize URL for the redirect flow.
func (s *SupabaseClient) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	if !s.Configured() {
		return "", errs.Wrap(errs.ErrRemoteService, "supabase not configured")
	}
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return fmt.Sprintf("%s/auth/v1/authorize?%s", s.BaseURL, q.Encode()), nil
}

// SignInWithPassword performs the password grant.
func (s *SupabaseClient) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	raw, err := s.doRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return nil, errs.Wrapf(errs.ErrInvalidCredentials, "%v", err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, errs.Wrap(errs.ErrRemoteService, "decode token response")
	}
	sess := s.sessionFromToken(tr)
	s.setCurrent(sess)
	return sess, nil
}

// SetSession adopts callback tokens by refreshing them into a full
// session, validating them against the auth service.
func (s *SupabaseClient) SetSession(ctx context.Context, accessToken, refreshToken string) (*model.Session, error) {
	if refreshToken != "" {
		raw, err := s.doRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", map[string]string{
			"refresh_token": refreshToken,
		}, "")
		if err != nil {
			return nil, err
		}
		var tr tokenResponse
		if err := json.Unmarshal(raw, &tr); err != nil {
			return nil, errs.Wrap(errs.ErrRemoteService, "decode token response")
		}
		sess := s.sessionFromToken(tr)
		s.setCurrent(sess)
		return sess, nil
	}

	// No refresh token: resolve the user behind the access token.
	raw, err := s.doRequest(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken)
	if err != nil {
		return nil, err
	}
	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr.User); err != nil {
		return nil, errs.Wrap(errs.ErrRemoteService, "decode user response")
	}
	tr.AccessToken = accessToken
	tr.TokenType = "bearer"
	sess := s.sessionFromToken(tr)
	s.setCurrent(sess)
	return sess, nil
}

// SignOut revokes the session remotely. The local session is cleared even
// when the revoke call fails; subscribers are notified either way.
func (s *SupabaseClient) SignOut(ctx context.Context, accessToken string) error {
	var err error
	if s.Configured() && accessToken != "" {
		_, err = s.doRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken)
	}
	s.setCurrent(nil)
	return err
}

// OnSessionChange registers a subscriber notified after every local
// session transition (login, token adoption, sign-out).
func (s *SupabaseClient) OnSessionChange(fn func(*model.Session)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *SupabaseClient) setCurrent(sess *model.Session) {
	s.mu.Lock()
	s.current = sess
	subs := make([]func(*model.Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// GetProfile reads the profiles row via PostgREST.
func (s *SupabaseClient) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	path := "/rest/v1/profiles?select=*&id=eq." + url.QueryEscape(userID)
	raw, err := s.doRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	var rows []model.Profile
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.Wrap(errs.ErrRemoteService, "decode profiles response")
	}
	if len(rows) == 0 {
		return nil, errs.Wrapf(errs.ErrNotFound, "profile %s", userID)
	}
	return &rows[0], nil
}

// UpsertProfile writes the profiles row via PostgREST merge-duplicates.
func (s *SupabaseClient) UpsertProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	raw, err := s.doRequest(ctx, http.MethodPost, "/rest/v1/profiles?on_conflict=id", []model.Profile{*p}, "")
	if err != nil {
		return nil, err
	}
	var rows []model.Profile
	if err := json.Unmarshal(raw, &rows); err != nil || len(rows) == 0 {
		// PostgREST may return no body without a Prefer header; fall back
		// to what we wrote.
		out := *p
		return &out, nil
	}
	return &rows[0], nil
}
