package report

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewServer returns an HTTP server exposing the archive directory. The
// handler logs requests in Apache combined format.
func NewServer(archiveDir, addr string) *http.Server {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(archiveDir)))

	return &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, r),
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
}
