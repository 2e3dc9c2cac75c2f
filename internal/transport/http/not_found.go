package http

import "net/http"

// NotFoundHandler answers unknown routes with the service's JSON error shape
// instead of the mux's plain-text default.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}
