package defaults

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/catalog"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/vaccines"
)

type fakeTemplates struct {
	items []tasks.DefaultTask
	err   error
}

func (f *fakeTemplates) ListDefaultTasks(_ context.Context, _ int64) ([]tasks.DefaultTask, error) {
	return f.items, f.err
}

type fakeSchedules struct {
	items []catalog.VaccineSchedule
	err   error
}

func (f *fakeSchedules) ListVaccineSchedules(_ context.Context, _ int64) ([]catalog.VaccineSchedule, error) {
	return f.items, f.err
}

type fakeTaskWriter struct {
	batches [][]tasks.CreateInput
	err     error
}

func (f *fakeTaskWriter) CreateBatch(_ context.Context, _ string, ins []tasks.CreateInput) ([]tasks.Task, error) {
	f.batches = append(f.batches, ins)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]tasks.Task, len(ins))
	return out, nil
}

type fakeVaccineCreator struct {
	created []vaccines.CreateInput
	failAll bool
}

func (f *fakeVaccineCreator) Create(_ context.Context, in vaccines.CreateInput) (vaccines.PetVaccine, error) {
	if f.failAll {
		return vaccines.PetVaccine{}, errors.New("boom")
	}
	f.created = append(f.created, in)
	return vaccines.PetVaccine{PetID: in.PetID, VaccineTypeID: in.VaccineTypeID}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestGenerator(tpl *fakeTemplates, sch *fakeSchedules, tw *fakeTaskWriter, vc *fakeVaccineCreator, today time.Time) *Generator {
	g := NewGenerator(tpl, sch, tw, vc, nil)
	g.now = func() time.Time { return today }
	return g
}

func testPet(birth *time.Time) pets.Pet {
	return pets.Pet{
		ID:        "pet-1",
		Name:      "Luna",
		SpeciesID: 1,
		BirthDate: birth,
		OwnerID:   "owner-1",
	}
}

func TestPopulateForPetCopiesTemplatesAsDefaultTasks(t *testing.T) {
	catID := int64(3)
	tpl := &fakeTemplates{items: []tasks.DefaultTask{
		{Title: "Feed", RecurringType: tasks.RecurringDaily, Priority: tasks.PriorityHigh},
		{Title: "Walk", RecurringType: tasks.RecurringDaily, Priority: tasks.PriorityMedium},
		{Title: "Groom", CategoryID: &catID, RecurringType: tasks.RecurringMonthly, RecurringInterval: 1},
	}}
	tw := &fakeTaskWriter{}

	g := newTestGenerator(tpl, &fakeSchedules{}, tw, &fakeVaccineCreator{}, date(2024, 3, 1))

	birth := date(2024, 1, 10)
	if err := g.PopulateForPet(context.Background(), testPet(&birth)); err != nil {
		t.Fatalf("PopulateForPet: %v", err)
	}

	if len(tw.batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(tw.batches))
	}
	batch := tw.batches[0]
	if len(batch) != 3 {
		t.Fatalf("expected 3 tasks in batch, got %d", len(batch))
	}
	for i, in := range batch {
		if !in.IsDefault {
			t.Errorf("expected batch[%d].IsDefault true", i)
		}
		if in.PetID != "pet-1" {
			t.Errorf("batch[%d].PetID = %q", i, in.PetID)
		}
		if in.Completed {
			t.Errorf("batch[%d].Completed = true", i)
		}
	}
	if batch[2].CategoryID == nil || *batch[2].CategoryID != catID {
		t.Errorf("expected batch[2].CategoryID %d, got %v", catID, batch[2].CategoryID)
	}
}

func TestPopulateForPetNoTemplatesSkipsEverything(t *testing.T) {
	tw := &fakeTaskWriter{}
	vc := &fakeVaccineCreator{}
	sch := &fakeSchedules{items: []catalog.VaccineSchedule{
		{ID: 1, VaccineTypeID: 10, AgeInMonths: 2},
	}}

	g := newTestGenerator(&fakeTemplates{}, sch, tw, vc, date(2024, 3, 1))

	birth := date(2024, 1, 10)
	if err := g.PopulateForPet(context.Background(), testPet(&birth)); err != nil {
		t.Fatalf("PopulateForPet: %v", err)
	}

	if len(tw.batches) != 0 {
		t.Errorf("expected no batches, got %d", len(tw.batches))
	}
	// Without templates the routine returns before the vaccine schedule.
	if len(vc.created) != 0 {
		t.Errorf("expected no vaccines, got %d", len(vc.created))
	}
}

func TestPopulateForPetNoBirthDateSkipsVaccines(t *testing.T) {
	tpl := &fakeTemplates{items: []tasks.DefaultTask{{Title: "Feed"}}}
	sch := &fakeSchedules{items: []catalog.VaccineSchedule{
		{ID: 1, VaccineTypeID: 10, AgeInMonths: 2},
	}}
	tw := &fakeTaskWriter{}
	vc := &fakeVaccineCreator{}

	g := newTestGenerator(tpl, sch, tw, vc, date(2024, 3, 1))

	if err := g.PopulateForPet(context.Background(), testPet(nil)); err != nil {
		t.Fatalf("PopulateForPet: %v", err)
	}

	if len(tw.batches) != 1 {
		t.Errorf("expected 1 batch, got %d", len(tw.batches))
	}
	if len(vc.created) != 0 {
		t.Errorf("expected no vaccines, got %d", len(vc.created))
	}
}

func TestPopulateForPetBatchFailureStillProjectsVaccines(t *testing.T) {
	tpl := &fakeTemplates{items: []tasks.DefaultTask{{Title: "Feed"}}}
	sch := &fakeSchedules{items: []catalog.VaccineSchedule{
		{ID: 1, VaccineTypeID: 10, AgeInMonths: 5},
	}}
	tw := &fakeTaskWriter{err: errors.New("db down")}
	vc := &fakeVaccineCreator{}

	g := newTestGenerator(tpl, sch, tw, vc, date(2024, 3, 1))

	birth := date(2023, 10, 15)
	if err := g.PopulateForPet(context.Background(), testPet(&birth)); err != nil {
		t.Fatalf("PopulateForPet: %v", err)
	}

	if len(vc.created) != 1 {
		t.Fatalf("expected 1 vaccine, got %d", len(vc.created))
	}
}

func TestScheduledDates(t *testing.T) {
	today := date(2024, 3, 1)
	birth := date(2023, 10, 15)

	cases := []struct {
		name  string
		sched catalog.VaccineSchedule
		want  time.Time
	}{
		{
			// nominal 2024-03-15 is still in the future, kept as is
			name:  "future date unchanged",
			sched: catalog.VaccineSchedule{AgeInMonths: 5},
			want:  date(2024, 3, 15),
		},
		{
			// nominal 2023-12-15 already passed, non-recurring: clamp to today
			name:  "past non-recurring clamps to today",
			sched: catalog.VaccineSchedule{AgeInMonths: 2},
			want:  today,
		},
		{
			// nominal 2023-11-15 already passed: step forward 12 months
			// from the nominal date until out of the past
			name:  "past recurring advances from nominal",
			sched: catalog.VaccineSchedule{AgeInMonths: 1, IsRecurring: true, RecurringMonths: 12},
			want:  date(2024, 11, 15),
		},
		{
			// recurring with an invalid step behaves as non-recurring
			name:  "recurring with zero step clamps",
			sched: catalog.VaccineSchedule{AgeInMonths: 1, IsRecurring: true, RecurringMonths: 0},
			want:  today,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scheduledDate(birth, tc.sched, today)
			if !got.Equal(tc.want) {
				t.Errorf("expected %s, got %s", tc.want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

func TestPopulateForPetEntryFailureContinues(t *testing.T) {
	tpl := &fakeTemplates{items: []tasks.DefaultTask{{Title: "Feed"}}}
	sch := &fakeSchedules{items: []catalog.VaccineSchedule{
		{ID: 1, VaccineTypeID: 10, AgeInMonths: 5},
		{ID: 2, VaccineTypeID: 11, AgeInMonths: 6},
	}}
	vc := &fakeVaccineCreator{failAll: true}

	g := newTestGenerator(tpl, sch, &fakeTaskWriter{}, vc, date(2024, 3, 1))

	birth := date(2023, 10, 15)
	if err := g.PopulateForPet(context.Background(), testPet(&birth)); err != nil {
		t.Fatalf("PopulateForPet: %v", err)
	}
}

func TestPopulateForPetProjectsAllScheduleEntries(t *testing.T) {
	tpl := &fakeTemplates{items: []tasks.DefaultTask{{Title: "Feed"}}}
	sch := &fakeSchedules{items: []catalog.VaccineSchedule{
		{ID: 1, VaccineTypeID: 10, AgeInMonths: 5, Notes: "primera dosis"},
		{ID: 2, VaccineTypeID: 11, AgeInMonths: 6},
	}}
	vc := &fakeVaccineCreator{}

	g := newTestGenerator(tpl, sch, &fakeTaskWriter{}, vc, date(2024, 3, 1))

	birth := date(2023, 10, 15)
	if err := g.PopulateForPet(context.Background(), testPet(&birth)); err != nil {
		t.Fatalf("PopulateForPet: %v", err)
	}

	if len(vc.created) != 2 {
		t.Fatalf("expected 2 vaccines, got %d", len(vc.created))
	}
	if vc.created[0].VaccineTypeID != 10 || vc.created[1].VaccineTypeID != 11 {
		t.Errorf("expected vaccine types 10,11, got %d,%d", vc.created[0].VaccineTypeID, vc.created[1].VaccineTypeID)
	}
	if vc.created[0].Notes != "primera dosis" {
		t.Errorf("expected notes carried over, got %q", vc.created[0].Notes)
	}
	for i, in := range vc.created {
		if in.PetID != "pet-1" {
			t.Errorf("created[%d].PetID = %q", i, in.PetID)
		}
	}
}
