package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"snapgram/internal/repository"
	"snapgram/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostRepo.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(posts) == 0 {
		WriteError(w, "No posts found!", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPostsByUserID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if _, err := h.UserRepo.GetUserByID(r.Context(), userID); err != nil {
		WriteError(w, "User not found!", http.StatusBadRequest)
		return
	}

	posts, err := h.PostRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

// CreatePost makes the caller the owner; the request body carries no
// user id, so nobody can post as someone else.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := service.ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthorized!", http.StatusUnauthorized)
		return
	}

	var req repository.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if len(req.Images) == 0 {
		WriteError(w, "Picture(s) missing!", http.StatusBadRequest)
		return
	}

	_, err := h.PostService.CreatePost(r.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found!", http.StatusConflict)
			return
		}
		WriteError(w, "Missing data!", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "New post created!"}, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := service.ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthorized!", http.StatusUnauthorized)
		return
	}

	var req repository.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Post ID required!", http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		WriteError(w, "Post ID required!", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found!", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("Post %s updated!", post.PostID)}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		WriteError(w, "Post ID required!", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found!", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("Post %s deleted!", req.ID)}, http.StatusOK)
}
