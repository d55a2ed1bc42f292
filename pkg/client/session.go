package client

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
)

// State is the session lifecycle state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateRestoring     State = "restoring"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// ErrNotAuthenticated is returned by authenticated-only session calls when no
// token is held; the request is not attempted.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session holds the current token and user, persists them across restarts,
// and attaches the token to outgoing requests. The server stays authoritative:
// restoration trusts the local cache, but every subsequent authenticated
// request is still validated server-side, and a 401 clears the session.
//
// Session is not safe for concurrent use; drive it from a single goroutine.
type Session struct {
	api   *Client
	store Store
	log   zerolog.Logger

	state State
	token string
	user  *User
}

func NewSession(api *Client, store Store, log zerolog.Logger) *Session {
	return &Session{
		api:   api,
		store: store,
		log:   log,
		state: StateUninitialized,
	}
}

// Restore loads a previously persisted (token, user) pair. When both are
// present the session becomes Authenticated without a server round-trip;
// otherwise it becomes Anonymous. Corrupt cache entries degrade to Anonymous.
func (s *Session) Restore() State {
	s.state = StateRestoring

	token, haveToken, err := s.store.Get(tokenKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session restore: token read failed")
	}
	rawUser, haveUser, err := s.store.Get(userKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("session restore: user read failed")
	}

	if haveToken && haveUser {
		var user User
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			s.log.Warn().Err(err).Msg("session restore: cached user is corrupt")
		} else {
			s.token = token
			s.user = &user
			s.state = StateAuthenticated
			return s.state
		}
	}

	s.state = StateAnonymous
	return s.state
}

// Login authenticates and persists the session. On failure the current state
// is kept.
func (s *Session) Login(ctx context.Context, email, password string) error {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.establish(result)
	return nil
}

// Register creates an account and persists the session, same contract as Login.
func (s *Session) Register(ctx context.Context, input RegisterInput) error {
	result, err := s.api.Register(ctx, input)
	if err != nil {
		return err
	}
	s.establish(result)
	return nil
}

// Logout revokes the token best-effort and clears local state unconditionally.
// A failed revoke call is logged, never surfaced: local cleanup must succeed.
func (s *Session) Logout(ctx context.Context) {
	if s.token != "" {
		if err := s.api.Logout(ctx, s.token); err != nil {
			s.log.Warn().Err(err).Msg("logout: token revocation failed")
		}
	}
	s.clear()
}

// Me fetches the account behind the held token.
func (s *Session) Me(ctx context.Context) (*User, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	user, err := s.api.Me(ctx, s.token)
	if err != nil {
		return nil, s.checkAuthError(err)
	}
	return user, nil
}

// CreatePost creates a post owned by the current user.
func (s *Session) CreatePost(ctx context.Context, form PostForm) (*Post, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	post, err := s.api.CreatePost(ctx, s.token, form)
	if err != nil {
		return nil, s.checkAuthError(err)
	}
	return post, nil
}

// UpdatePost applies a partial update to a post.
func (s *Session) UpdatePost(ctx context.Context, id int64, patch PostPatch) (*Post, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	post, err := s.api.UpdatePost(ctx, s.token, id, patch)
	if err != nil {
		return nil, s.checkAuthError(err)
	}
	return post, nil
}

// DeletePost permanently deletes a post.
func (s *Session) DeletePost(ctx context.Context, id int64) error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := s.api.DeletePost(ctx, s.token, id); err != nil {
		return s.checkAuthError(err)
	}
	return nil
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) CurrentUser() *User {
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.state == StateAuthenticated && s.token != ""
}

func (s *Session) establish(result *AuthResult) {
	s.token = result.Token
	user := result.User
	s.user = &user
	s.state = StateAuthenticated

	if err := s.store.Set(tokenKey, result.Token); err != nil {
		s.log.Warn().Err(err).Msg("session persist: token write failed")
	}
	if raw, err := json.Marshal(result.User); err == nil {
		if err := s.store.Set(userKey, string(raw)); err != nil {
			s.log.Warn().Err(err).Msg("session persist: user write failed")
		}
	}
}

// checkAuthError clears the session when the server says the cached token is
// no longer valid; the error still propagates to the caller.
func (s *Session) checkAuthError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsUnauthenticated() {
		s.clear()
	}
	return err
}

func (s *Session) clear() {
	s.token = ""
	s.user = nil
	s.state = StateAnonymous

	if err := s.store.Delete(tokenKey); err != nil {
		s.log.Warn().Err(err).Msg("session clear: token delete failed")
	}
	if err := s.store.Delete(userKey); err != nil {
		s.log.Warn().Err(err).Msg("session clear: user delete failed")
	}
}
