package gotrue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-care-tracker/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier resolviendo el token contra /user.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	u, err := v.client.UserFromToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("gotrue verify failed: %w", err)
	}

	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" {
		return auth.Claims{}, errors.New("gotrue claims missing user id")
	}

	return auth.Claims{UserID: u.ID, Email: u.Email}, nil
}
