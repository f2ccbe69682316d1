package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/catalog"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

type testSpecies struct{}

func (testSpecies) GetSpecies(ctx context.Context, id int64) (catalog.Species, error) {
	if id == 1 {
		return catalog.Species{ID: 1, Name: "dog"}, nil
	}
	return catalog.Species{}, errors.New("unknown species")
}

type testSeeder struct {
	seeded []Pet
	err    error
}

func (s *testSeeder) PopulateForPet(ctx context.Context, p Pet) error {
	s.seeded = append(s.seeded, p)
	return s.err
}

func newTestService(repo *testRepo) (*Service, *testSeeder) {
	svc := NewService(repo, testSpecies{}, nil)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	seeder := &testSeeder{}
	svc.SetSeeder(seeder)
	return svc, seeder
}

func TestCreateTriggersDefaultSeeding(t *testing.T) {
	svc, seeder := newTestService(newTestRepo())

	birth := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Luna",
		SpeciesID: 1,
		BirthDate: &birth,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if len(seeder.seeded) != 1 {
		t.Fatalf("expected seeder called once, got %d", len(seeder.seeded))
	}
	if seeder.seeded[0].ID != p.ID {
		t.Errorf("expected seeder to receive the created pet")
	}
	if p.Gender != GenderUnknown {
		t.Errorf("expected gender defaulted to unknown, got %s", p.Gender)
	}
}

func TestCreateSurvivesSeederFailure(t *testing.T) {
	repo := newTestRepo()
	svc, seeder := newTestService(repo)
	seeder.err = errors.New("seed boom")

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Luna",
		SpeciesID: 1,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, ok := repo.byID[p.ID]; !ok {
		t.Errorf("expected pet persisted even when seeding fails")
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newTestService(newTestRepo())

	cases := []struct {
		owner string
		in    CreateInput
	}{
		{"", CreateInput{Name: "Luna", SpeciesID: 1}},
		{"owner-1", CreateInput{SpeciesID: 1}},
		{"owner-1", CreateInput{Name: "  ", SpeciesID: 1}},
		{"owner-1", CreateInput{Name: "Luna"}},
	}
	for i, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.owner, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdateBirthDatePatch(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo)

	birth := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Luna",
		SpeciesID: 1,
		BirthDate: &birth,
	})

	// patch sin birth_date: queda como estaba
	name := "Luna II"
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.BirthDate == nil || !updated.BirthDate.Equal(birth) {
		t.Errorf("expected birth date untouched, got %v", updated.BirthDate)
	}

	// birth_date: null => limpiar
	updated, err = svc.Update(context.Background(), p.ID, UpdateInput{
		BirthDate: BirthDatePatch{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.BirthDate != nil {
		t.Errorf("expected birth date cleared, got %v", updated.BirthDate)
	}
}

func TestGetByIDExpandsSpecies(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo)

	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Luna",
		SpeciesID: 1,
	})

	got, err := svc.GetByID(context.Background(), p.ID, Include{Species: true})
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Species == nil || got.Species.Name != "dog" {
		t.Errorf("expected species expanded to dog, got %+v", got.Species)
	}

	// sin Include la expansión no corre
	got, err = svc.GetByID(context.Background(), p.ID, Include{})
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Species != nil {
		t.Errorf("expected no expansion without include")
	}
}

func TestOwnerOf(t *testing.T) {
	svc, _ := newTestService(newTestRepo())

	p, _ := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "Luna",
		SpeciesID: 1,
	})

	owner, err := svc.OwnerOf(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("OwnerOf returned error: %v", err)
	}
	if owner != "owner-1" {
		t.Errorf("expected owner-1, got %q", owner)
	}

	if _, err := svc.OwnerOf(context.Background(), "missing"); err == nil {
		t.Errorf("expected error for unknown pet")
	}
}
