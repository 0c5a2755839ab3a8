// Package runs exposes the plan run log over HTTP for the operations
// dashboard.
package runs

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/visitplan/visitplan/infra/planlog"
)

// NewHandler returns an HTTP handler exposing run records via GET /api/runs.
// Requests must include an Authorization header with "Bearer <token>" when
// token is non-empty.
func NewHandler(store planlog.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		q := planlog.RunQuery{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		q.RunID = r.URL.Query().Get("run_id")
		q.Inspector = r.URL.Query().Get("inspector")
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
