package auth

import "time"

// Claims representa la información extraída de un token verificado.
type Claims struct {
	UserID string
	Email  string
}

// User es la identidad emitida por el servicio de auth hosteado.
type User struct {
	ID       string
	Email    string
	Metadata map[string]any
}

// Session es la sesión vigente de un usuario.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}

// Expired indica si la sesión ya venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
