package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/bifroggame1-create/FastPayAI/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users   *service.UserService
	timeout time.Duration
}

func NewUserHandler(users *service.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{
		users:   users,
		timeout: timeout,
	}
}

type RegisterUserRequestDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Avatar     string `json:"avatar"`
	ReferredBy string `json:"referredBy"`
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "User ID is required")
		return
	}

	user, err := h.users.Register(ctx, service.RegisterUserRequest{
		ID:         req.ID,
		Name:       req.Name,
		Username:   req.Username,
		Avatar:     req.Avatar,
		ReferredBy: req.ReferredBy,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to register user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
