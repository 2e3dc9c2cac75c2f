package http

import "net/http"

// HealthHandler reports liveness. It does not touch the database, so a
// healthy response only means the process is serving.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
