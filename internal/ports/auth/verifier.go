package auth

import "context"

// AuthVerifier resuelve un access token a Claims.
// El middleware HTTP lo usa por request; una implementación nil deja al
// router en modo dev (identidad vía header de debug).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
