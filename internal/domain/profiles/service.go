package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID)
}

type UpdateInput struct {
	Name      *string
	AvatarURL *string
}

// Update aplica el patch sobre el perfil existente. Si el perfil todavía no
// existe (primer login) lo crea con los campos del patch.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	now := s.now()
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		p = Profile{ID: userID, CreatedAt: now}
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	p.UpdatedAt = now

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Upsert pisa el perfil entero. Lo usan el alta de usuarios de prueba y el
// primer sign-in.
func (s *Service) Upsert(ctx context.Context, p Profile) (Profile, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return Profile{}, ErrInvalidInput
	}

	now := s.now()
	if p.CreatedAt.IsZero() {
		if existing, err := s.repo.GetByID(ctx, p.ID); err == nil {
			p.CreatedAt = existing.CreatedAt
		} else {
			p.CreatedAt = now
		}
	}
	p.UpdatedAt = now

	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
