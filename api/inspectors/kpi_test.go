package inspectors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/visitplan/visitplan/core/planner"
)

type memStore struct{ kpis []planner.InspectorKPI }

func (m *memStore) Query(inspector string, start, end time.Time) ([]planner.InspectorKPI, error) {
	var res []planner.InspectorKPI
	for _, k := range m.kpis {
		if k.Inspector == inspector {
			res = append(res, k)
		}
	}
	return res, nil
}

func TestKPIHandler(t *testing.T) {
	store := &memStore{kpis: []planner.InspectorKPI{
		{Inspector: "Adrian", Visits: 8, Km: 320.5, Hours: 42.0, Days: 5},
		{Inspector: "Paolo", Visits: 6, Km: 210.0, Hours: 30.0, Days: 4},
	}}
	h := NewKPIHandler(store)

	req := httptest.NewRequest("GET", "/api/inspectors/Adrian/kpis", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var out []planner.InspectorKPI
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Inspector != "Adrian" || out[0].Visits != 8 {
		t.Fatalf("unexpected kpis %+v", out)
	}
}

func TestKPIHandler_NotFound(t *testing.T) {
	h := NewKPIHandler(&memStore{})
	req := httptest.NewRequest("GET", "/api/inspectors/Adrian", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
