package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tasks", func(tr chi.Router) {
		tr.Post("/", createTaskHandler(svc))
		tr.Get("/", listTasksHandler(svc))
		tr.Get("/{taskID}", getTaskHandler(svc))
		tr.Patch("/{taskID}", updateTaskHandler(svc))
		tr.Delete("/{taskID}", deleteTaskHandler(svc))
	})

	r.Get("/default-tasks", listDefaultTasksHandler(svc))
}

type createTaskRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	CategoryID        *int64 `json:"category_id"`
	DueDate           string `json:"due_date"` // YYYY-MM-DD opcional
	PetID             string `json:"pet_id"`
	RecurringType     string `json:"recurring_type"`
	RecurringInterval int    `json:"recurring_interval"`
	Priority          string `json:"priority"`
	ParentTaskID      string `json:"parent_task_id"`
}

type taskResponse struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description,omitempty"`
	CategoryID        *int64        `json:"category_id,omitempty"`
	Completed         bool          `json:"completed"`
	DueDate           *time.Time    `json:"due_date,omitempty"`
	PetID             string        `json:"pet_id"`
	RecurringType     RecurringType `json:"recurring_type"`
	RecurringInterval int           `json:"recurring_interval,omitempty"`
	Priority          Priority      `json:"priority,omitempty"`
	OwnerID           string        `json:"owner_id"`
	IsDefault         bool          `json:"is_default"`
	ParentTaskID      string        `json:"parent_task_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	Category *categoryInfo `json:"category,omitempty"`
	Pet      *petInfo      `json:"pet,omitempty"`
}

type categoryInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

type petInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SpeciesID   int64  `json:"species_id"`
	SpeciesName string `json:"species_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type updateTaskRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	CategoryID        *int64  `json:"category_id"`
	Completed         *bool   `json:"completed"`
	DueDate           *string `json:"due_date"`
	RecurringType     *string `json:"recurring_type"`
	RecurringInterval *int    `json:"recurring_interval"`
	Priority          *string `json:"priority"`
}

type defaultTaskResponse struct {
	ID                int64         `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description,omitempty"`
	CategoryID        *int64        `json:"category_id,omitempty"`
	SpeciesID         int64         `json:"species_id"`
	RecurringType     RecurringType `json:"recurring_type,omitempty"`
	RecurringInterval int           `json:"recurring_interval,omitempty"`
	Priority          Priority      `json:"priority,omitempty"`
	AgeMinMonths      *int          `json:"age_min_months,omitempty"`
	AgeMaxMonths      *int          `json:"age_max_months,omitempty"`
}

func createTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var due *time.Time
		if strings.TrimSpace(req.DueDate) != "" {
			t, err := time.Parse("2006-01-02", req.DueDate)
			if err != nil {
				http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			due = &t
		}

		rt, ok := ParseRecurringType(req.RecurringType)
		if !ok {
			http.Error(w, "invalid recurring_type", http.StatusBadRequest)
			return
		}
		pr, ok := ParsePriority(req.Priority)
		if !ok {
			http.Error(w, "invalid priority", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Title:             req.Title,
			Description:       req.Description,
			CategoryID:        req.CategoryID,
			DueDate:           due,
			PetID:             req.PetID,
			RecurringType:     rt,
			RecurringInterval: req.RecurringInterval,
			Priority:          pr,
			ParentTaskID:      req.ParentTaskID,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toTaskResponse(t))
	}
}

func listTasksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f := ListFilter{PetID: strings.TrimSpace(r.URL.Query().Get("pet_id"))}

		items, err := svc.List(r.Context(), claims.UserID, f, Include{Category: true, Pet: true})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]taskResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTaskResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := ownedTask(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(t))
	}
}

func updateTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownedTask(w, r, svc)
		if !ok {
			return
		}

		var req updateTaskRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Title:             req.Title,
			Description:       req.Description,
			CategoryID:        req.CategoryID,
			Completed:         req.Completed,
			RecurringInterval: req.RecurringInterval,
		}

		if req.DueDate != nil {
			t, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DueDate = &t
		}
		if req.RecurringType != nil {
			rt, ok := ParseRecurringType(*req.RecurringType)
			if !ok {
				http.Error(w, "invalid recurring_type", http.StatusBadRequest)
				return
			}
			in.RecurringType = &rt
		}
		if req.Priority != nil {
			pr, ok := ParsePriority(*req.Priority)
			if !ok {
				http.Error(w, "invalid priority", http.StatusBadRequest)
				return
			}
			in.Priority = &pr
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "task not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toTaskResponse(updated))
	}
}

func deleteTaskHandler(svc *Service) http.HandlerFunc {
	// Borrar una tarea asociada a una vacuna NO borra la vacuna
	// (la cascada es asimétrica y vive en el módulo de vacunas).
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := ownedTask(w, r, svc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), t.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func listDefaultTasksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var speciesID int64
		if raw := r.URL.Query().Get("species_id"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v <= 0 {
				http.Error(w, "species_id must be a positive integer", http.StatusBadRequest)
				return
			}
			speciesID = v
		}

		items, err := svc.ListDefaultTasks(r.Context(), speciesID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]defaultTaskResponse, 0, len(items))
		for _, dt := range items {
			out = append(out, defaultTaskResponse{
				ID:                dt.ID,
				Title:             dt.Title,
				Description:       dt.Description,
				CategoryID:        dt.CategoryID,
				SpeciesID:         dt.SpeciesID,
				RecurringType:     dt.RecurringType,
				RecurringInterval: dt.RecurringInterval,
				Priority:          dt.Priority,
				AgeMinMonths:      dt.AgeMinMonths,
				AgeMaxMonths:      dt.AgeMaxMonths,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ownedTask(w http.ResponseWriter, r *http.Request, svc *Service) (Task, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Task{}, false
	}

	taskID := chi.URLParam(r, "taskID")
	t, err := svc.GetByID(r.Context(), taskID, Include{Category: true, Pet: true})
	if err != nil {
		http.Error(w, "task not found", http.StatusNotFound)
		return Task{}, false
	}

	if t.OwnerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return Task{}, false
	}

	return t, true
}

func toTaskResponse(t Task) taskResponse {
	resp := taskResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		CategoryID:        t.CategoryID,
		Completed:         t.Completed,
		DueDate:           t.DueDate,
		PetID:             t.PetID,
		RecurringType:     t.RecurringType,
		RecurringInterval: t.RecurringInterval,
		Priority:          t.Priority,
		OwnerID:           t.OwnerID,
		IsDefault:         t.IsDefault,
		ParentTaskID:      t.ParentTaskID,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.Category != nil {
		resp.Category = &categoryInfo{
			ID:    t.Category.ID,
			Name:  t.Category.Name,
			Color: t.Category.Color,
			Icon:  t.Category.Icon,
		}
	}
	if t.Pet != nil {
		pi := &petInfo{
			ID:        t.Pet.ID,
			Name:      t.Pet.Name,
			SpeciesID: t.Pet.SpeciesID,
			ImageURL:  t.Pet.ImageURL,
		}
		if t.Pet.Species != nil {
			pi.SpeciesName = t.Pet.Species.Name
		}
		resp.Pet = pi
	}
	return resp
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
