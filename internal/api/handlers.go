package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"utfpr.edu.br/menfin/internal/auth"
	"utfpr.edu.br/menfin/internal/core"
	"utfpr.edu.br/menfin/internal/store"
	"utfpr.edu.br/menfin/internal/validation"
)

type contextKey string

const userIDKey contextKey = "userID"

type APIHandler struct {
	accounts *core.AccountService
	ledger   *core.LedgerService
	mentor   *core.MentorService
	chat     *core.ChatService
}

func NewAPIHandler(accounts *core.AccountService, ledger *core.LedgerService, mentor *core.MentorService, chat *core.ChatService) *APIHandler {
	return &APIHandler{
		accounts: accounts,
		ledger:   ledger,
		mentor:   mentor,
		chat:     chat,
	}
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := auth.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if _, err := h.accounts.User(r.Context(), userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "User not found", http.StatusUnauthorized)
				return
			}
			log.Printf("Error in JWTAuthMiddleware for user %d: %v", userID, err)
			http.Error(w, "Failed to process user identity", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(r *http.Request) int64 {
	return r.Context().Value(userIDKey).(int64)
}

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps service errors to status codes. Anything unexpected is
// logged and answered with fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *validation.Errors
	var mErr *core.MentorError
	switch {
	case errors.As(err, &verr):
		msg := "Verifique os campos destacados."
		if general, ok := verr.Fields["general"]; ok {
			msg = general
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Message: msg, Fields: verr.Fields})
	case errors.Is(err, core.ErrProfileMissing):
		writeJSON(w, http.StatusConflict, errorResponse{Message: core.MsgProfileMissing})
	case errors.Is(err, store.ErrProfileExists):
		writeJSON(w, http.StatusConflict, errorResponse{Message: "Perfil financeiro já cadastrado."})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Registro não encontrado."})
	case errors.Is(err, core.ErrBusy), errors.Is(err, core.ErrQueueFull):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Message: "Aguarde a resposta anterior do mentor."})
	case errors.As(err, &mErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: mErr.Message})
	default:
		log.Printf("Error: %s: %v", fallback, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: fallback})
	}
}

func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req core.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, "Failed to log in")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandler) GetOnboardingHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.accounts.Profile(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err, "Failed to get profile")
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: core.MsgProfileMissing})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *APIHandler) PostOnboardingHandler(w http.ResponseWriter, r *http.Request) {
	var req core.OnboardingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	profile, err := h.accounts.CompleteOnboarding(r.Context(), userIDFrom(r), req)
	if err != nil {
		writeError(w, err, "Failed to save profile")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}
