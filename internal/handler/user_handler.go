package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"snapgram/internal/repository"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.GetAllUsers(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(users) == 0 {
		WriteError(w, "No users found!", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

// SearchUsers matches usernames against a case-insensitive regex.
func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]
	if query == "" {
		WriteError(w, "Query required!", http.StatusBadRequest)
		return
	}

	users, err := h.UserRepo.SearchUsers(r.Context(), query)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req repository.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			WriteError(w, "Duplicate username!", http.StatusConflict)
			return
		}
		WriteError(w, "Invalid user data received!", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("New user %s created!", user.Username)}, http.StatusCreated)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req repository.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			WriteError(w, "Duplicate username!", http.StatusConflict)
		case errors.Is(err, repository.ErrNotFound):
			WriteError(w, "User not found!", http.StatusBadRequest)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("%s's data updated!", user.Username)}, http.StatusOK)
}

// UpdateFollow toggles the follow relationship between the target user
// in the path and the caller. The caller's identity comes from the
// refresh cookie on this route, not the Authorization header.
func (h *Handlers) UpdateFollow(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	if targetID == "" {
		WriteError(w, "User ID required!", http.StatusBadRequest)
		return
	}

	// target existence is checked before the caller's identity
	if _, err := h.UserRepo.GetUserByID(r.Context(), targetID); err != nil {
		WriteError(w, "User not found!", http.StatusBadRequest)
		return
	}

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		WriteError(w, "Unauthorized!", http.StatusUnauthorized)
		return
	}

	claims, err := h.AuthService.VerifyRefreshToken(cookie.Value)
	if err != nil {
		WriteError(w, "Forbidden!", http.StatusForbidden)
		return
	}

	actor, target, err := h.UserService.ToggleFollow(r.Context(), claims.UserID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found!", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	message := fmt.Sprintf("%s's following count and %s's followers' count updated!",
		actor.Username, target.Username)
	WriteSuccess(w, MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		WriteError(w, "User ID required!", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.DeleteUser(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found!", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	message := fmt.Sprintf("Username %s with ID %s deleted!", user.Username, user.UserID)
	WriteSuccess(w, MessageResponse{Message: message}, http.StatusOK)
}
