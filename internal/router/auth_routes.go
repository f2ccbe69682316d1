package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/adapters/auth/gotrue"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// registerAuthRoutes expone el flujo de cuentas contra el servicio de auth
// hosteado. Con client nil (modo dev sin auth) todas responden 503.
func registerAuthRoutes(r chi.Router, client auth.SessionClient, log logger.Logger) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/sign-in", signInHandler(client, log))
		ar.Post("/sign-up", signUpHandler(client, log))
		ar.Post("/sign-out", signOutHandler(client, log))
		ar.Post("/reset-password", resetPasswordHandler(client, log))
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"` // solo sign-up
}

type resetPasswordRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to"`
}

type sessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func signInHandler(client auth.SessionClient, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			http.Error(w, "email and password required", http.StatusBadRequest)
			return
		}

		s, err := client.SignInWithPassword(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(w, log, "sign-in failed", err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

func signUpHandler(client auth.SessionClient, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}

		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			http.Error(w, "email and password required", http.StatusBadRequest)
			return
		}

		var metadata map[string]any
		if name := strings.TrimSpace(req.Name); name != "" {
			metadata = map[string]any{"name": name}
		}

		s, err := client.SignUp(r.Context(), req.Email, req.Password, metadata)
		if err != nil {
			writeAuthError(w, log, "sign-up failed", err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(s))
	}
}

func signOutHandler(client auth.SessionClient, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}

		if err := client.SignOut(r.Context()); err != nil {
			writeAuthError(w, log, "sign-out failed", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"signed_out": true})
	}
}

func resetPasswordHandler(client auth.SessionClient, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}

		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			http.Error(w, "email required", http.StatusBadRequest)
			return
		}

		if err := client.ResetPasswordForEmail(r.Context(), req.Email, req.RedirectTo); err != nil {
			writeAuthError(w, log, "reset password failed", err)
			return
		}
		// Respuesta uniforme: no revela si el mail existe.
		writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
	}
}

func writeAuthError(w http.ResponseWriter, log logger.Logger, msg string, err error) {
	if errors.Is(err, gotrue.ErrUnauthorized) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	log.Error(msg, map[string]any{"err": err.Error()})
	http.Error(w, "auth service error", http.StatusBadGateway)
}

func toSessionResponse(s *auth.Session) sessionResponse {
	var resp sessionResponse
	if s == nil {
		return resp
	}
	resp.AccessToken = s.AccessToken
	resp.RefreshToken = s.RefreshToken
	resp.ExpiresAt = s.ExpiresAt
	resp.User.ID = s.User.ID
	resp.User.Email = s.User.Email
	return resp
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
