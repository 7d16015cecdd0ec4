// Package auth keeps the login session: the bearer token and the name of
// the user who obtained it.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// Keys under which the session is persisted.
const (
	KeyToken    = "token"
	KeyUsername = "username"
)

// DefaultUsername is shown when no username was stored.
const DefaultUsername = "User"

var (
	// ErrNoToken is returned by Session.Token when nobody is logged in.
	ErrNoToken = errors.New("not logged in")

	// ErrMissingCredentials is returned by Login when a field is blank.
	ErrMissingCredentials = errors.New("username and password are required")
)

// KV is the persistent key/value store behind a Session.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Session reads and writes the persisted login.
type Session struct {
	kv KV
}

// NewSession creates a Session over kv.
func NewSession(kv KV) *Session {
	return &Session{kv: kv}
}

// Login authenticates with a and persists the token and username.
func (s *Session) Login(ctx context.Context, a Authenticator, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	token, err := a.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUsername, username); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout forgets the token and username.
func (s *Session) Logout(ctx context.Context) error {
	for _, key := range []string{KeyToken, KeyUsername} {
		if err := s.kv.Remove(ctx, key); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}

// LoggedIn reports whether a token is stored.
func (s *Session) LoggedIn(ctx context.Context) (bool, error) {
	tok, ok, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return false, err
	}
	return ok && tok != "", nil
}

// Username returns the stored username, or DefaultUsername.
func (s *Session) Username(ctx context.Context) string {
	name, ok, err := s.kv.Get(ctx, KeyUsername)
	if err != nil || !ok || name == "" {
		return DefaultUsername
	}
	return name
}

// Token implements oauth2.TokenSource. It reads the store on every call, so
// a logout takes effect on the next request.
func (s *Session) Token() (*oauth2.Token, error) {
	tok, ok, err := s.kv.Get(context.Background(), KeyToken)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || tok == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

var _ oauth2.TokenSource = (*Session)(nil)
