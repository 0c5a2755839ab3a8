// Package inspectors exposes per-inspector workload KPIs over HTTP.
package inspectors

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/visitplan/visitplan/core/planner"
)

// KPIStore supplies KPI history; implemented by infra/kpi.SQLiteStore.
type KPIStore interface {
	Query(inspector string, start, end time.Time) ([]planner.InspectorKPI, error)
}

// NewKPIHandler exposes workload history via GET /api/inspectors/{name}/kpis.
func NewKPIHandler(store KPIStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/api/inspectors/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[1] != "kpis" {
			http.NotFound(w, r)
			return
		}
		name := parts[0]
		start, _ := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
		end, _ := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
		if end.IsZero() {
			end = time.Now()
		}
		kpis, err := store.Query(name, start, end)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(kpis)
	})
}
