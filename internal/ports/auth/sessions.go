package auth

import "context"

// SessionClient es el contrato contra el servicio de auth hosteado.
//
// OnSessionChange notifica cada cambio de sesión (sign-in, sign-up, sign-out,
// restore). El callback recibe nil cuando el usuario queda sin sesión.
// El unsubscribe devuelto debe llamarse en el teardown de la aplicación.
type SessionClient interface {
	GetCurrentSession(ctx context.Context) (*Session, error)
	OnSessionChange(fn func(*Session)) (unsubscribe func())

	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Session, error)
	SignOut(ctx context.Context) error
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
}
