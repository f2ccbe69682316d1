package pets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MediaStore emite URLs de subida prefirmadas para imágenes de mascotas.
// Puede ser nil (sin media configurado).
type MediaStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (uploadURL, publicURL string, err error)
}

func RegisterRoutes(r chi.Router, svc *Service, media MediaStore) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
		pr.Post("/{petID}/image-upload", imageUploadHandler(svc, media))
	})
}

type createPetRequest struct {
	Name      string `json:"name"`
	SpeciesID int64  `json:"species_id"`
	Breed     string `json:"breed"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	ImageURL  string `json:"image_url"`
	Notes     string `json:"notes"`
}

type petResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	SpeciesID int64        `json:"species_id"`
	Breed     string       `json:"breed,omitempty"`
	BirthDate *time.Time   `json:"birth_date,omitempty"`
	Gender    Gender       `json:"gender"`
	ImageURL  string       `json:"image_url,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	OwnerID   string       `json:"owner_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Species   *speciesInfo `json:"species,omitempty"`
}

type speciesInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string `json:"name"`
	SpeciesID *int64  `json:"species_id"`
	Breed     *string `json:"breed"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"` // YYYY-MM-DD; null = limpiar
	ImageURL  *string `json:"image_url"`
	Notes     *string `json:"notes"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		gender, ok := ParseGender(req.Gender)
		if !ok {
			http.Error(w, "gender must be male, female or unknown", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			SpeciesID: req.SpeciesID,
			Breed:     req.Breed,
			BirthDate: bd,
			Gender:    gender,
			ImageURL:  req.ImageURL,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, Include{Species: true})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := ownedPet(w, r, svc)
		if !ok {
			return
		}

		// Para soportar birth_date: null hay que detectar presencia del campo,
		// así que primero decodificamos a un map de raw messages.
		var raw map[string]json.RawMessage
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		bd := BirthDatePatch{}
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		var gender *Gender
		if req.Gender != nil {
			g, ok := ParseGender(*req.Gender)
			if !ok {
				http.Error(w, "gender must be male, female or unknown", http.StatusBadRequest)
				return
			}
			gender = &g
		}

		updated, err := svc.Update(r.Context(), current.ID, UpdateInput{
			Name:      req.Name,
			SpeciesID: req.SpeciesID,
			Breed:     req.Breed,
			Gender:    gender,
			ImageURL:  req.ImageURL,
			Notes:     req.Notes,
			BirthDate: bd,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ownedPet(w, r, svc)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), p.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

type imageUploadRequest struct {
	ContentType string `json:"content_type"`
}

type imageUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

func imageUploadHandler(svc *Service, media MediaStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if media == nil {
			http.Error(w, "media storage not configured", http.StatusServiceUnavailable)
			return
		}

		p, ok := ownedPet(w, r, svc)
		if !ok {
			return
		}

		var req imageUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.ContentType) == "" {
			req.ContentType = "image/jpeg"
		}

		key := fmt.Sprintf("pets/%s/%s", p.ID, uuid.NewString())
		uploadURL, publicURL, err := media.PresignUpload(r.Context(), key, req.ContentType)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Guardamos la URL pública de una; el cliente sube con el PUT prefirmado.
		if _, err := svc.SetImageURL(r.Context(), p.ID, publicURL); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, imageUploadResponse{
			UploadURL: uploadURL,
			PublicURL: publicURL,
		})
	}
}

// ownedPet resuelve claims + mascota y corta con 401/404/403 si corresponde.
func ownedPet(w http.ResponseWriter, r *http.Request, svc *Service) (Pet, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Pet{}, false
	}

	petID := chi.URLParam(r, "petID")
	p, err := svc.GetByID(r.Context(), petID, Include{Species: true})
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return Pet{}, false
	}

	if p.OwnerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return Pet{}, false
	}

	return p, true
}

func toPetResponse(p Pet) petResponse {
	resp := petResponse{
		ID:        p.ID,
		Name:      p.Name,
		SpeciesID: p.SpeciesID,
		Breed:     p.Breed,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		ImageURL:  p.ImageURL,
		Notes:     p.Notes,
		OwnerID:   p.OwnerID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Species != nil {
		resp.Species = &speciesInfo{
			ID:          p.Species.ID,
			Name:        p.Species.Name,
			Description: p.Species.Description,
		}
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
