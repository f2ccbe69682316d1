package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type countingRepo struct {
	Repository
	listSpeciesCalls int
	species          []Species
}

func (r *countingRepo) ListSpecies(ctx context.Context) ([]Species, error) {
	r.listSpeciesCalls++
	return r.species, nil
}

// mapCache guarda JSON en memoria, igual que el backend Redis.
type mapCache struct {
	data map[string][]byte
	err  error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string, out any) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) Set(ctx context.Context, key string, val any) error {
	if c.err != nil {
		return c.err
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func TestListSpeciesUsesCache(t *testing.T) {
	repo := &countingRepo{species: []Species{{ID: 1, Name: "dog"}}}
	cache := newMapCache()
	svc := NewService(repo, cache, nil)

	for i := 0; i < 3; i++ {
		got, err := svc.ListSpecies(context.Background())
		if err != nil {
			t.Fatalf("ListSpecies: %v", err)
		}
		if len(got) != 1 || got[0].Name != "dog" {
			t.Fatalf("unexpected species %+v", got)
		}
	}

	if repo.listSpeciesCalls != 1 {
		t.Errorf("expected 1 repo call with warm cache, got %d", repo.listSpeciesCalls)
	}
}

func TestListSpeciesCacheErrorFallsBackToRepo(t *testing.T) {
	repo := &countingRepo{species: []Species{{ID: 1, Name: "dog"}}}
	cache := newMapCache()
	cache.err = errors.New("redis down")
	svc := NewService(repo, cache, nil)

	got, err := svc.ListSpecies(context.Background())
	if err != nil {
		t.Fatalf("ListSpecies: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected repo data despite cache failure, got %+v", got)
	}
	if repo.listSpeciesCalls != 1 {
		t.Errorf("expected repo called, got %d calls", repo.listSpeciesCalls)
	}
}

func TestListSpeciesWithoutCache(t *testing.T) {
	repo := &countingRepo{species: []Species{{ID: 1, Name: "dog"}}}
	svc := NewService(repo, nil, nil)

	if _, err := svc.ListSpecies(context.Background()); err != nil {
		t.Fatalf("ListSpecies: %v", err)
	}
	if _, err := svc.ListSpecies(context.Background()); err != nil {
		t.Fatalf("ListSpecies: %v", err)
	}
	if repo.listSpeciesCalls != 2 {
		t.Errorf("expected repo hit each time without cache, got %d", repo.listSpeciesCalls)
	}
}

func TestGetSpeciesValidatesID(t *testing.T) {
	svc := NewService(&countingRepo{}, nil, nil)

	if _, err := svc.GetSpecies(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for id 0, got %v", err)
	}
	if _, err := svc.FindTaskCategoryByName(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank name, got %v", err)
	}
}
