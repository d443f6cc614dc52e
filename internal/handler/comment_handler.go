package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"snapgram/internal/models"
	"snapgram/internal/repository"

	"github.com/gorilla/mux"
)

type CommentIDResponse struct {
	CommentID string `json:"commentId"`
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentRepo.GetAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(comments) == 0 {
		WriteError(w, "No comments found!", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) GetCommentsByPostID(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	if postID == "" {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		WriteError(w, "Post not found!", http.StatusBadRequest)
		return
	}

	comments, err := h.CommentRepo.GetByPostID(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

// CreateComment stores the comment on its own; the caller links it to a
// post afterwards through the post update endpoint.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req repository.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	comment := &models.Comment{
		UserID: req.User,
		Text:   req.Text,
	}

	if err := h.CommentRepo.Create(r.Context(), comment); err != nil {
		WriteError(w, "Missing data!", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, CommentIDResponse{CommentID: comment.CommentID}, http.StatusOK)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req repository.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentRepo.GetByID(r.Context(), req.ID)
	if err != nil {
		WriteError(w, "Comment not found!", http.StatusBadRequest)
		return
	}

	if req.Text != "" {
		comment.Text = req.Text
	}

	if err := h.CommentRepo.Update(r.Context(), comment); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("Comment %s updated!", comment.CommentID)}, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		WriteError(w, "Comment ID required!", http.StatusBadRequest)
		return
	}

	if err := h.CommentRepo.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Comment not found!", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: fmt.Sprintf("Comment %s deleted!", req.ID)}, http.StatusOK)
}
