package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-tracker/internal/ports/auth"
)

// newTestClient levanta un servidor fake GoTrue-style y devuelve el cliente
// apuntando a él con el reloj pineado.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, AnonKey: "anon-key"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return c, srv
}

func sessionJSON(token string, expiresIn int64) map[string]any {
	return map[string]any{
		"access_token":  token,
		"refresh_token": "refresh-1",
		"expires_in":    expiresIn,
		"user": map[string]any{
			"id":    "user-1",
			"email": "luna@example.com",
		},
	}
}

func TestSignInStoresSessionAndNotifies(t *testing.T) {
	var gotAPIKey string
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("expected grant_type=password, got %q", r.URL.RawQuery)
		}
		gotAPIKey = r.Header.Get("apikey")
		_ = json.NewEncoder(w).Encode(sessionJSON("tok-1", 3600))
	})

	c, _ := newTestClient(t, mux)

	var notified []*auth.Session
	unsubscribe := c.OnSessionChange(func(s *auth.Session) {
		notified = append(notified, s)
	})
	defer unsubscribe()

	s, err := c.SignInWithPassword(context.Background(), "luna@example.com", "secret")
	if err != nil {
		t.Fatalf("SignInWithPassword returned error: %v", err)
	}
	if s == nil || s.AccessToken != "tok-1" {
		t.Fatalf("unexpected session %+v", s)
	}
	if s.User.ID != "user-1" {
		t.Errorf("expected user-1, got %q", s.User.ID)
	}
	if gotAPIKey != "anon-key" {
		t.Errorf("expected apikey header sent, got %q", gotAPIKey)
	}

	cur, err := c.GetCurrentSession(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSession returned error: %v", err)
	}
	if cur == nil || cur.AccessToken != "tok-1" {
		t.Errorf("expected stored session, got %+v", cur)
	}

	if len(notified) != 1 || notified[0] == nil {
		t.Errorf("expected one sign-in notification, got %v", notified)
	}
}

func TestSignInUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusUnauthorized)
	})

	c, _ := newTestClient(t, mux)

	if _, err := c.SignInWithPassword(context.Background(), "luna@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSignOutClearsSessionEvenOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sessionJSON("tok-1", 3600))
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c, _ := newTestClient(t, mux)

	if _, err := c.SignInWithPassword(context.Background(), "luna@example.com", "secret"); err != nil {
		t.Fatalf("SignInWithPassword returned error: %v", err)
	}

	if err := c.SignOut(context.Background()); err == nil {
		t.Errorf("expected logout error surfaced")
	}

	cur, err := c.GetCurrentSession(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSession returned error: %v", err)
	}
	if cur != nil {
		t.Errorf("expected local session cleared, got %+v", cur)
	}
}

func TestSignUpPendingConfirmationReturnsNoSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/signup", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["data"]; !ok {
			t.Errorf("expected metadata forwarded under data, got %v", body)
		}
		// sin access_token: confirmación de email pendiente
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "user-2",
			"email": "new@example.com",
		})
	})

	c, _ := newTestClient(t, mux)

	s, err := c.SignUp(context.Background(), "new@example.com", "secret", map[string]any{"full_name": "New User"})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil session pending confirmation, got %+v", s)
	}

	cur, _ := c.GetCurrentSession(context.Background())
	if cur != nil {
		t.Errorf("expected no stored session, got %+v", cur)
	}
}

func TestGetCurrentSessionDropsExpired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sessionJSON("tok-1", 60))
	})

	c, _ := newTestClient(t, mux)

	if _, err := c.SignInWithPassword(context.Background(), "luna@example.com", "secret"); err != nil {
		t.Fatalf("SignInWithPassword returned error: %v", err)
	}

	// avanzamos el reloj más allá del expires_in
	c.now = func() time.Time {
		return time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	}

	cur, err := c.GetCurrentSession(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSession returned error: %v", err)
	}
	if cur != nil {
		t.Errorf("expected expired session dropped, got %+v", cur)
	}
}

func TestVerifierResolvesClaims(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "user-1",
			"email": "luna@example.com",
		})
	})

	c, _ := newTestClient(t, mux)
	v := NewVerifier(c)

	claims, err := v.Verify(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "luna@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := v.Verify(context.Background(), "bad-token"); err == nil {
		t.Errorf("expected error for rejected token")
	}
	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Errorf("expected ErrTokenEmpty, got %v", err)
	}
}
