package handler

import "net/http"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		WriteMethodNotAllowed(w, http.MethodGet, http.MethodHead)
	}
}
