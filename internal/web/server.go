// Package web serves the rendered report directory for local preview.
package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler returns the preview router: a health probe plus the report
// directory served at the root.
func Handler(dir string) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
