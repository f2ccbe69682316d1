package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/species", listSpeciesHandler(svc))
	r.Get("/task-categories", listTaskCategoriesHandler(svc))
	r.Get("/vaccine-types", listVaccineTypesHandler(svc))
	r.Get("/vaccine-schedules", listVaccineSchedulesHandler(svc))
}

type speciesResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type taskCategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type vaccineTypeResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	ApplicableSpecies []int64 `json:"applicable_species"`
}

type vaccineScheduleResponse struct {
	ID              int64                `json:"id"`
	VaccineTypeID   int64                `json:"vaccine_type_id"`
	SpeciesID       int64                `json:"species_id"`
	AgeInMonths     int                  `json:"age_in_months"`
	IsRecurring     bool                 `json:"is_recurring"`
	RecurringMonths int                  `json:"recurring_months,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	VaccineType     *vaccineTypeResponse `json:"vaccine_type,omitempty"`
}

func listSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListSpecies(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]speciesResponse, 0, len(items))
		for _, sp := range items {
			out = append(out, speciesResponse{
				ID:          sp.ID,
				Name:        sp.Name,
				Description: sp.Description,
				CreatedAt:   sp.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listTaskCategoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListTaskCategories(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]taskCategoryResponse, 0, len(items))
		for _, c := range items {
			out = append(out, taskCategoryResponse{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				Color:       c.Color,
				Icon:        c.Icon,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listVaccineTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListVaccineTypes(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]vaccineTypeResponse, 0, len(items))
		for _, vt := range items {
			out = append(out, toVaccineTypeResponse(vt))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listVaccineSchedulesHandler(svc *Service) http.HandlerFunc {
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

		items, err := svc.ListVaccineSchedules(r.Context(), speciesID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vaccineScheduleResponse, 0, len(items))
		for _, sc := range items {
			resp := vaccineScheduleResponse{
				ID:              sc.ID,
				VaccineTypeID:   sc.VaccineTypeID,
				SpeciesID:       sc.SpeciesID,
				AgeInMonths:     sc.AgeInMonths,
				IsRecurring:     sc.IsRecurring,
				RecurringMonths: sc.RecurringMonths,
				Notes:           sc.Notes,
			}
			if sc.VaccineType != nil {
				vt := toVaccineTypeResponse(*sc.VaccineType)
				resp.VaccineType = &vt
			}
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toVaccineTypeResponse(vt VaccineType) vaccineTypeResponse {
	return vaccineTypeResponse{
		ID:                vt.ID,
		Name:              vt.Name,
		Description:       vt.Description,
		ApplicableSpecies: vt.ApplicableSpecies,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
