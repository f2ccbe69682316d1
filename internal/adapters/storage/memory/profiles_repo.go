package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-care-tracker/internal/domain/profiles"
)

type profileRepo struct {
	mu   sync.RWMutex
	byID map[string]profiles.Profile
}

func newProfileRepo() *profileRepo {
	return &profileRepo{byID: make(map[string]profiles.Profile)}
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	r.byID[p.ID] = p
	return nil
}
