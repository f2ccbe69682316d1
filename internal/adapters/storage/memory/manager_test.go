package memory

import (
	"context"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/tasks"
)

func TestDefaultSeedHasHealthCategory(t *testing.T) {
	m := NewManagerWithDefaults()

	c, err := m.Catalog().FindTaskCategoryByName(context.Background(), "health")
	if err != nil {
		t.Fatalf("FindTaskCategoryByName: %v", err)
	}
	if c.Name != "health" {
		t.Fatalf("expected health category, got %q", c.Name)
	}
}

func TestCatalogSchedulesFilteredBySpecies(t *testing.T) {
	m := NewManagerWithDefaults()
	ctx := context.Background()

	dog, err := m.Catalog().ListVaccineSchedules(ctx, 1)
	if err != nil {
		t.Fatalf("ListVaccineSchedules: %v", err)
	}
	for _, s := range dog {
		if s.SpeciesID != 1 {
			t.Errorf("expected only species 1, got schedule %d for species %d", s.ID, s.SpeciesID)
		}
	}
	for i := 1; i < len(dog); i++ {
		if dog[i-1].AgeInMonths > dog[i].AgeInMonths {
			t.Errorf("expected age_in_months ascending, got %d before %d", dog[i-1].AgeInMonths, dog[i].AgeInMonths)
		}
	}

	all, err := m.Catalog().ListVaccineSchedules(ctx, 0)
	if err != nil {
		t.Fatalf("ListVaccineSchedules(0): %v", err)
	}
	if len(all) <= len(dog) {
		t.Errorf("expected species 0 to list all schedules, got %d vs %d", len(all), len(dog))
	}
}

func TestTaskListOrdersByDueDateNullsLast(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	d1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	seed := []tasks.Task{
		{ID: "a", Title: "later", OwnerID: "o", PetID: "p", DueDate: &d1},
		{ID: "b", Title: "no date", OwnerID: "o", PetID: "p"},
		{ID: "c", Title: "sooner", OwnerID: "o", PetID: "p", DueDate: &d2},
	}
	if err := m.Tasks().CreateBatch(ctx, seed); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	got, err := m.Tasks().ListByOwner(ctx, "o", tasks.ListFilter{})
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" {
		t.Errorf("expected order c,a,b got %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestTaskCreateBatchAllOrNothing(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	seed := []tasks.Task{
		{ID: "a", Title: "ok", OwnerID: "o", PetID: "p"},
		{ID: "", Title: "broken", OwnerID: "o", PetID: "p"},
	}
	if err := m.Tasks().CreateBatch(ctx, seed); err == nil {
		t.Fatalf("expected error for batch with empty id")
	}

	got, err := m.Tasks().ListByOwner(ctx, "o", tasks.ListFilter{})
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tasks after failed batch, got %d", len(got))
	}
}

func TestTaskListFiltersByPet(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	seed := []tasks.Task{
		{ID: "a", Title: "t1", OwnerID: "o", PetID: "p1"},
		{ID: "b", Title: "t2", OwnerID: "o", PetID: "p2"},
	}
	if err := m.Tasks().CreateBatch(ctx, seed); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	got, err := m.Tasks().ListByOwner(ctx, "o", tasks.ListFilter{PetID: "p1"})
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only task a, got %+v", got)
	}
}
