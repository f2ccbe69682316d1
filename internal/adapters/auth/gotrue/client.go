package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"pet-care-tracker/internal/platform/httpclient"
	"pet-care-tracker/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente de auth hosteado (GoTrue-style).
// BaseURL y AnonKey normalmente vienen de env vars (AUTH_URL, AUTH_ANON_KEY).
type Config struct {
	BaseURL string
	AnonKey string

	// ServiceKey habilita las operaciones admin (crear usuarios).
	ServiceKey string

	Timeout time.Duration
}

// Client implementa auth.SessionClient contra un endpoint GoTrue-style.
// Mantiene la sesión vigente del lado del cliente y notifica a los
// listeners en cada cambio (sign-in/sign-up/sign-out/restore).
type Client struct {
	http       *httpclient.Client
	anonKey    string
	serviceKey string

	mu        sync.RWMutex
	session   *auth.Session
	listeners map[int]func(*auth.Session)
	nextID    int

	now func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:       hc,
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		listeners:  map[int]func(*auth.Session){},
		now:        time.Now,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.anonKey != ""
}

// ---- wire shapes ----

type wireUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type wireSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
	User         wireUser `json:"user"`
}

func (c *Client) toSession(ws wireSession) *auth.Session {
	if ws.AccessToken == "" {
		return nil
	}
	s := &auth.Session{
		AccessToken:  ws.AccessToken,
		RefreshToken: ws.RefreshToken,
		User: auth.User{
			ID:       ws.User.ID,
			Email:    ws.User.Email,
			Metadata: ws.User.UserMetadata,
		},
	}
	if ws.ExpiresIn > 0 {
		s.ExpiresAt = c.now().Add(time.Duration(ws.ExpiresIn) * time.Second)
	}
	return s
}

func (c *Client) headers(bearer string) map[string]string {
	h := map[string]string{"apikey": c.anonKey}
	if bearer != "" {
		h["Authorization"] = "Bearer " + bearer
	}
	return h
}

// ---- auth.SessionClient ----

func (c *Client) GetCurrentSession(ctx context.Context) (*auth.Session, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	c.mu.RLock()
	s := c.session
	c.mu.RUnlock()

	if s == nil || s.Expired(c.now()) {
		return nil, nil
	}
	return s, nil
}

func (c *Client) OnSessionChange(fn func(*auth.Session)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var ws wireSession
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=password", c.headers(""),
		map[string]string{"email": email, "password": password}, &ws)
	if err != nil {
		return nil, normalizeErr(err)
	}

	s := c.toSession(ws)
	c.setSession(s)
	return s, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*auth.Session, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	body := map[string]any{"email": email, "password": password}
	if len(metadata) > 0 {
		body["data"] = metadata
	}

	var ws wireSession
	if err := c.http.DoJSON(ctx, http.MethodPost, "/signup", c.headers(""), body, &ws); err != nil {
		return nil, normalizeErr(err)
	}

	// Con confirmación de email pendiente el endpoint no emite sesión;
	// devolvemos nil sin tratarlo como error.
	s := c.toSession(ws)
	if s != nil {
		c.setSession(s)
	}
	return s, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	c.mu.RLock()
	cur := c.session
	c.mu.RUnlock()

	if cur != nil {
		// Best-effort contra el servidor; la sesión local se limpia igual.
		if err := c.http.DoJSON(ctx, http.MethodPost, "/logout", c.headers(cur.AccessToken), nil, nil); err != nil {
			c.setSession(nil)
			return normalizeErr(err)
		}
	}

	c.setSession(nil)
	return nil
}

func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	path := "/recover"
	if strings.TrimSpace(redirectTo) != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	err := c.http.DoJSON(ctx, http.MethodPost, path, c.headers(""),
		map[string]string{"email": email}, nil)
	return normalizeErr(err)
}

// ---- verificación de tokens ----

// UserFromToken resuelve la identidad dueña del token contra /user.
func (c *Client) UserFromToken(ctx context.Context, token string) (auth.User, error) {
	if !c.IsConfigured() {
		return auth.User{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.User{}, ErrUnauthorized
	}

	var wu wireUser
	if err := c.http.DoJSON(ctx, http.MethodGet, "/user", c.headers(token), nil, &wu); err != nil {
		return auth.User{}, normalizeErr(err)
	}

	return auth.User{ID: wu.ID, Email: wu.Email, Metadata: wu.UserMetadata}, nil
}

// ---- admin ----

// AdminCreateUser crea un usuario confirmado usando la service key.
// Lo usa cmd/createtestuser; no forma parte del contrato SessionClient.
func (c *Client) AdminCreateUser(ctx context.Context, email, password string, metadata map[string]any) (auth.User, error) {
	if !c.IsConfigured() || c.serviceKey == "" {
		return auth.User{}, ErrNotConfigured
	}

	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}
	if len(metadata) > 0 {
		body["user_metadata"] = metadata
	}

	h := map[string]string{
		"apikey":        c.serviceKey,
		"Authorization": "Bearer " + c.serviceKey,
	}

	var wu wireUser
	if err := c.http.DoJSON(ctx, http.MethodPost, "/admin/users", h, body, &wu); err != nil {
		return auth.User{}, normalizeErr(err)
	}
	return auth.User{ID: wu.ID, Email: wu.Email, Metadata: wu.UserMetadata}, nil
}

// ---- internos ----

func (c *Client) setSession(s *auth.Session) {
	c.mu.Lock()
	c.session = s
	fns := make([]func(*auth.Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	// Notificación síncrona, fuera del lock.
	for _, fn := range fns {
		fn(s)
	}
}

func normalizeErr(err error) error {
	if err == nil {
		return nil
	}
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %v", ErrUnauthorized, he)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, he)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
