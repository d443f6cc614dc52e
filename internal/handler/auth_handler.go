package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"snapgram/internal/service"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

const refreshCookieName = "jwt"

// Login checks the credentials, returns a short-lived access token and
// sets the long-lived refresh token as an HTTP-only cross-site cookie.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	_, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			WriteError(w, "Unauthorized!", http.StatusUnauthorized)
			return
		}
		WriteError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setRefreshCookie(w, refreshToken, int(h.Cfg.RefreshTokenDuration.Seconds()))

	WriteSuccess(w, AccessTokenResponse{AccessToken: accessToken}, http.StatusOK)
}

// Logout clears the refresh cookie. Idempotent: without a cookie it
// answers 204 and does nothing.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(refreshCookieName); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.setRefreshCookie(w, "", -1)

	WriteSuccess(w, MessageResponse{Message: "Cookie cleared!"}, http.StatusOK)
}

// Refresh reads the refresh cookie and mints a new access token. The
// refresh token is not rotated.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		WriteError(w, "Unauthorized!", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.AuthService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			WriteError(w, "Forbidden!", http.StatusForbidden)
		case errors.Is(err, service.ErrUnauthorized):
			WriteError(w, "Unauthorized user!", http.StatusUnauthorized)
		default:
			WriteError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, AccessTokenResponse{AccessToken: accessToken}, http.StatusOK)
}

func (h *Handlers) setRefreshCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
