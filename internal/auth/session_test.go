package auth_test

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/auth"
	"taskboard/internal/storage"
	"taskboard/internal/testutil"
)

type fakeAuthenticator struct {
	token string
	err   error
	calls int
}

func (f *fakeAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

func TestSession_LoginPersists(t *testing.T) {
	ctx := context.Background()
	kv := testutil.NewMemoryKV()
	s := auth.NewSession(kv)

	if err := s.Login(ctx, &fakeAuthenticator{token: "tok-1"}, "alice", "secret"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if v, _, _ := kv.Get(ctx, auth.KeyToken); v != "tok-1" {
		t.Errorf("stored token = %q", v)
	}
	if got := s.Username(ctx); got != "alice" {
		t.Errorf("Username() = %q", got)
	}
	if ok, err := s.LoggedIn(ctx); err != nil || !ok {
		t.Errorf("LoggedIn() = %v, %v", ok, err)
	}
	tok, err := s.Token()
	if err != nil || tok.AccessToken != "tok-1" || tok.Type() != "Bearer" {
		t.Errorf("Token() = %+v, %v", tok, err)
	}
}

func TestSession_LoginRequiresCredentials(t *testing.T) {
	a := &fakeAuthenticator{token: "tok"}
	s := auth.NewSession(testutil.NewMemoryKV())

	for _, c := range [][2]string{{"", "pw"}, {"alice", ""}, {"", ""}} {
		if err := s.Login(context.Background(), a, c[0], c[1]); !errors.Is(err, auth.ErrMissingCredentials) {
			t.Errorf("Login(%q, %q) error = %v", c[0], c[1], err)
		}
	}
	if a.calls != 0 {
		t.Errorf("expected no backend calls, got %d", a.calls)
	}
}

func TestSession_LoginFailure(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("invalid credentials")
	s := auth.NewSession(testutil.NewMemoryKV())

	err := s.Login(ctx, &fakeAuthenticator{err: backendErr}, "alice", "wrong")
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if ok, _ := s.LoggedIn(ctx); ok {
		t.Error("failed login must not store a token")
	}
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	s := auth.NewSession(testutil.NewMemoryKV())
	if err := s.Login(ctx, &fakeAuthenticator{token: "tok"}, "alice", "pw"); err != nil {
		t.Fatal(err)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, auth.ErrNoToken) {
		t.Errorf("Token() after logout error = %v", err)
	}
	if got := s.Username(ctx); got != auth.DefaultUsername {
		t.Errorf("Username() after logout = %q", got)
	}
}

func TestSession_TokenReadError(t *testing.T) {
	kv := testutil.NewMemoryKV()
	kv.Err = errors.New("disk gone")
	s := auth.NewSession(kv)

	_, err := s.Token()
	if err == nil || errors.Is(err, auth.ErrNoToken) {
		t.Errorf("expected read error, got %v", err)
	}
	if got := s.Username(context.Background()); got != auth.DefaultUsername {
		t.Errorf("Username() = %q", got)
	}
}

func TestSession_OverSqliteStore(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(t.TempDir() + "/session.db")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	s := auth.NewSession(store)
	if err := s.Login(ctx, &fakeAuthenticator{token: "tok-sql"}, "bob", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if got := auth.NewSession(store).Username(ctx); got != "bob" {
		t.Errorf("Username() = %q", got)
	}
}
