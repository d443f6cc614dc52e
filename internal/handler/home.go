package handlers

import (
	"net/http"
	"os"
	"strings"
)

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "snapgram API"}, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "DB unavailable", http.StatusServiceUnavailable)
		return
	}
	WriteSuccess(w, MessageResponse{Message: "OK"}, http.StatusOK)
}

// NotFoundHandler answers unmatched routes with a body negotiated from
// the Accept header: HTML page, JSON message or plain text.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")

	switch {
	case strings.Contains(accept, "text/html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		page, err := os.ReadFile("views/404.html")
		if err != nil {
			w.Write([]byte("<h1>404 Page Not Found!</h1>"))
			return
		}
		w.Write(page)
	case strings.Contains(accept, "application/json"), strings.Contains(accept, "*/*"), accept == "":
		WriteError(w, "404 Page Not Found!", http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 Page Not Found!"))
	}
}
