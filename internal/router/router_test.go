package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-tracker/internal/router"
)

type taskJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	PetID     string `json:"pet_id"`
	IsDefault bool   `json:"is_default"`
}

type vaccineJSON struct {
	ID            string `json:"id"`
	PetID         string `json:"pet_id"`
	VaccineTypeID int64  `json:"vaccine_type_id"`
	ScheduledDate string `json:"scheduled_date"`
	Administered  bool   `json:"administered"`
	TaskID        string `json:"task_id"`
}

func TestHTTP_EndToEnd_PetDefaultsAndVaccines(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner crea una mascota perro con fecha de nacimiento
	birth := time.Now().UTC().AddDate(0, -3, 0).Format("2006-01-02")
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Luna",
		"species_id": 1,
		"breed":      "mixed",
		"gender":     "female",
		"birth_date": birth,
	})

	// 2) El alta genera tareas por defecto y el plan de vacunación
	tasks := listTasks(t, ts.URL, ownerID, petID)
	if len(tasks) == 0 {
		t.Fatalf("expected generated default tasks, got none")
	}
	defaultCount := 0
	for _, task := range tasks {
		if task.IsDefault {
			defaultCount++
		}
	}
	if defaultCount != len(tasks) {
		t.Errorf("expected all generated tasks flagged is_default, got %d of %d", defaultCount, len(tasks))
	}

	vaccines := listVaccines(t, ts.URL, ownerID, petID)
	if len(vaccines) == 0 {
		t.Fatalf("expected generated vaccine plan, got none")
	}
	for _, v := range vaccines {
		if v.PetID != petID {
			t.Errorf("vaccine %s belongs to pet %s, expected %s", v.ID, v.PetID, petID)
		}
		if v.TaskID == "" {
			t.Errorf("vaccine %s has no linked task", v.ID)
		}
		if v.Administered {
			t.Errorf("vaccine %s should start not administered", v.ID)
		}
	}

	// orden por scheduled_date asc
	for i := 1; i < len(vaccines); i++ {
		if vaccines[i-1].ScheduledDate > vaccines[i].ScheduledDate {
			t.Errorf("expected vaccines ordered by scheduled_date, got %s before %s",
				vaccines[i-1].ScheduledDate, vaccines[i].ScheduledDate)
		}
	}

	// 3) Otro usuario no ve la mascota ni sus vacunas
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for stranger, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/vaccines", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 listing vaccines as stranger, got %d", st)
		}
	}

	// 4) Marcar una vacuna administrada completa su tarea asociada
	target := vaccines[0]
	{
		st, body := doReq(t, ts.URL, "PATCH", "/vaccines/"+target.ID, ownerID, map[string]any{
			"administered": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patching vaccine, got %d body=%s", st, string(body))
		}
	}
	linked := findTask(t, ts.URL, ownerID, petID, target.TaskID)
	if linked == nil {
		t.Fatalf("linked task %s not found after administering", target.TaskID)
	}
	if !linked.Completed {
		t.Errorf("expected linked task completed after administering vaccine")
	}

	// 5) Completar una tarea NO administra su vacuna (solo va en un sentido)
	other := vaccines[1]
	{
		st, body := doReq(t, ts.URL, "PATCH", "/tasks/"+other.TaskID, ownerID, map[string]any{
			"completed": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 completing task, got %d body=%s", st, string(body))
		}
	}
	for _, v := range listVaccines(t, ts.URL, ownerID, petID) {
		if v.ID == other.ID && v.Administered {
			t.Errorf("completing the task must not administer the vaccine")
		}
	}

	// 6) Borrar una vacuna borra su tarea asociada
	{
		st, body := doReq(t, ts.URL, "DELETE", "/vaccines/"+other.ID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 deleting vaccine, got %d body=%s", st, string(body))
		}
	}
	if found := findTask(t, ts.URL, ownerID, petID, other.TaskID); found != nil {
		t.Errorf("expected linked task deleted with its vaccine")
	}
}

func TestHTTP_PetWithoutBirthDateSkipsVaccines(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ownerID := "owner-2"
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Michi",
		"species_id": 2,
	})

	if tasks := listTasks(t, ts.URL, ownerID, petID); len(tasks) == 0 {
		t.Errorf("expected default tasks even without birth date")
	}
	if vaccines := listVaccines(t, ts.URL, ownerID, petID); len(vaccines) != 0 {
		t.Errorf("expected no vaccine plan without birth date, got %d", len(vaccines))
	}
}

func TestHTTP_CatalogIsPublic(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, path := range []string{"/species", "/task-categories", "/vaccine-types", "/vaccine-schedules?species_id=1"} {
		st, body := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, st)
		}
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("%s: invalid json: %v", path, err)
		}
		if len(items) == 0 {
			t.Errorf("expected seeded data for %s", path)
		}
	}
}

func TestHTTP_RequestsWithoutIdentityAreRejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/pets", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func TestHTTP_AuthRoutesWithoutClientReturn503(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/auth/sign-in", "", map[string]any{
		"email":    "a@b.c",
		"password": "x",
	})
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without auth client, got %d", st)
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func listTasks(t *testing.T, baseURL, userID, petID string) []taskJSON {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/tasks?pet_id="+petID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing tasks, got %d body=%s", st, string(body))
	}
	var out []taskJSON
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("list tasks: invalid json: %v", err)
	}
	return out
}

func findTask(t *testing.T, baseURL, userID, petID, taskID string) *taskJSON {
	t.Helper()

	for _, task := range listTasks(t, baseURL, userID, petID) {
		if task.ID == taskID {
			return &task
		}
	}
	return nil
}

func listVaccines(t *testing.T, baseURL, userID, petID string) []vaccineJSON {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/pets/"+petID+"/vaccines", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing vaccines, got %d body=%s", st, string(body))
	}
	var out []vaccineJSON
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("list vaccines: invalid json: %v", err)
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path, userID string, payload map[string]any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}
