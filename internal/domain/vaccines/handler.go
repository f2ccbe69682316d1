package vaccines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/pets/{petID}/vaccines", listPetVaccinesHandler(svc, petsSvc))

	r.Route("/vaccines", func(vr chi.Router) {
		vr.Post("/", createVaccineHandler(svc, petsSvc))
		vr.Patch("/{vaccineID}", updateVaccineHandler(svc, petsSvc))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc, petsSvc))
	})
}

type createVaccineRequest struct {
	PetID         string `json:"pet_id"`
	VaccineTypeID int64  `json:"vaccine_type_id"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD
	Notes         string `json:"notes"`
	TaskID        string `json:"task_id"`
}

type vaccineResponse struct {
	ID               string     `json:"id"`
	PetID            string     `json:"pet_id"`
	VaccineTypeID    int64      `json:"vaccine_type_id"`
	ScheduledDate    string     `json:"scheduled_date"`
	AdministeredDate *time.Time `json:"administered_date,omitempty"`
	Administered     bool       `json:"administered"`
	Notes            string     `json:"notes,omitempty"`
	TaskID           string     `json:"task_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	VaccineTypeName string `json:"vaccine_type_name,omitempty"`
}

type updateVaccineRequest struct {
	ScheduledDate    *string `json:"scheduled_date"`
	AdministeredDate *string `json:"administered_date"`
	Administered     *bool   `json:"administered"`
	Notes            *string `json:"notes"`
}

func listPetVaccinesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := petsSvc.OwnerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, Include{VaccineType: true})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccineResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createVaccineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createVaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		owner, err := petsSvc.OwnerOf(r.Context(), req.PetID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			http.Error(w, "scheduled_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			PetID:         req.PetID,
			VaccineTypeID: req.VaccineTypeID,
			ScheduledDate: scheduled,
			Notes:         req.Notes,
			TaskID:        req.TaskID,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toVaccineResponse(v))
	}
}

func updateVaccineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := ownedVaccine(w, r, svc, petsSvc)
		if !ok {
			return
		}

		var req updateVaccineRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Administered: req.Administered,
			Notes:        req.Notes,
		}
		if req.ScheduledDate != nil {
			t, err := time.Parse("2006-01-02", *req.ScheduledDate)
			if err != nil {
				http.Error(w, "scheduled_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.ScheduledDate = &t
		}
		if req.AdministeredDate != nil {
			t, err := time.Parse("2006-01-02", *req.AdministeredDate)
			if err != nil {
				http.Error(w, "administered_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.AdministeredDate = &t
		}

		updated, err := svc.Update(r.Context(), v.ID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "vaccine not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toVaccineResponse(updated))
	}
}

func deleteVaccineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := ownedVaccine(w, r, svc, petsSvc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), v.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func ownedVaccine(w http.ResponseWriter, r *http.Request, svc *Service, petsSvc *pets.Service) (PetVaccine, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return PetVaccine{}, false
	}

	vaccineID := chi.URLParam(r, "vaccineID")
	v, err := svc.GetByID(r.Context(), vaccineID, Include{})
	if err != nil {
		http.Error(w, "vaccine not found", http.StatusNotFound)
		return PetVaccine{}, false
	}

	owner, err := petsSvc.OwnerOf(r.Context(), v.PetID)
	if err != nil || owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return PetVaccine{}, false
	}

	return v, true
}

func toVaccineResponse(v PetVaccine) vaccineResponse {
	resp := vaccineResponse{
		ID:               v.ID,
		PetID:            v.PetID,
		VaccineTypeID:    v.VaccineTypeID,
		ScheduledDate:    v.ScheduledDate.Format("2006-01-02"),
		AdministeredDate: v.AdministeredDate,
		Administered:     v.Administered,
		Notes:            v.Notes,
		TaskID:           v.TaskID,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.VaccineType != nil {
		resp.VaccineTypeName = v.VaccineType.Name
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
