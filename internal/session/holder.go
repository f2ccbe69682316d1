package session

import (
	"context"
	"sync"

	"pet-care-tracker/internal/domain/profiles"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"
)

// ProfileSource resuelve el perfil del usuario con sesión activa.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

// Holder mantiene el estado de sesión de la aplicación como dependencia
// explícita: quien lo necesita lo recibe construido, no hay estado global.
//
// Start consulta la sesión vigente y se suscribe a los cambios; cada cambio
// refresca (o limpia) el perfil asociado. Loading es true hasta que la
// primera resolución termina.
type Holder struct {
	client   auth.SessionClient
	profiles ProfileSource
	log      logger.Logger

	mu          sync.RWMutex
	session     *auth.Session
	profile     *profiles.Profile
	loading     bool
	unsubscribe func()
}

func NewHolder(client auth.SessionClient, profileSrc ProfileSource, log logger.Logger) *Holder {
	if log == nil {
		log = logger.Nop()
	}
	return &Holder{
		client:   client,
		profiles: profileSrc,
		log:      log,
		loading:  true,
	}
}

// Start resuelve la sesión existente (si la hay) y queda suscripto a los
// cambios posteriores. Un error consultando la sesión no impide la
// suscripción: el estado arranca vacío y se corrige en el próximo cambio.
func (h *Holder) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.unsubscribe != nil {
		h.mu.Unlock()
		return nil
	}
	h.unsubscribe = h.client.OnSessionChange(func(s *auth.Session) {
		h.apply(context.Background(), s)
	})
	h.mu.Unlock()

	s, err := h.client.GetCurrentSession(ctx)
	if err != nil {
		h.log.Warn("session restore failed", map[string]any{"err": err.Error()})
		h.apply(ctx, nil)
		return nil
	}
	h.apply(ctx, s)
	return nil
}

// Close corta la suscripción. El último estado queda accesible.
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
}

// Session devuelve la sesión vigente, o nil si no hay usuario firmado.
func (h *Holder) Session() *auth.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

// Profile devuelve el perfil del usuario firmado, o nil.
func (h *Holder) Profile() *profiles.Profile {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.profile
}

// Loading es true hasta que la primera resolución de sesión termina.
func (h *Holder) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

func (h *Holder) apply(ctx context.Context, s *auth.Session) {
	var profile *profiles.Profile
	if s != nil && h.profiles != nil {
		if p, err := h.profiles.Get(ctx, s.User.ID); err == nil {
			profile = &p
		} else {
			// Sesión sin perfil es válida (primer login): queda nil.
			h.log.Debug("profile fetch on session change failed", map[string]any{
				"user_id": s.User.ID,
				"err":     err.Error(),
			})
		}
	}

	h.mu.Lock()
	h.session = s
	h.profile = profile
	h.loading = false
	h.mu.Unlock()
}
