package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/visitplan/visitplan/config"
)

const testCustomers = `ID Cliente,Nome del Cliente,Indirizzo completo,CAP,Città,Regione,Ore lavoro,Data visita di riferimento 2026
1,Rossi SpA,Via Roma 1,33010,Pagnacco,Friuli-Venezia Giulia,2.5,2026-01-15
2,Bianchi Srl,Corso Buenos Aires 10,20124,Milano,Lombardia,3.0,2026-02-01
3,Verdi Snc,Via Garibaldi 5,10121,Torino,Piemonte,2.0,2026-06-20
`

const testOrders = `ID_Ordine,Cliente,Indirizzo_Sede,Data_Ordine
W001,Rossi SpA,Via Roma 1,2025-11-01
W002,Bianchi Srl,Corso Buenos Aires 10,2025-11-02
W003,Verdi Snc,Via Garibaldi 5,2025-11-03
W004,Sconosciuto Srl,Via Ignota 9,2025-11-04
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.Work.Seed = 42
	cfg.PlanLog.Enabled = true
	cfg.PlanLog.Backend = "jsonl"
	cfg.PlanLog.Path = filepath.Join(t.TempDir(), "runs.jsonl")
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func writeInput(t *testing.T, dir string) (string, string) {
	t.Helper()
	customers := filepath.Join(dir, "anagrafica.csv")
	orders := filepath.Join(dir, "ordini.csv")
	if err := os.WriteFile(customers, []byte(testCustomers), 0o644); err != nil {
		t.Fatalf("write customers: %v", err)
	}
	if err := os.WriteFile(orders, []byte(testOrders), 0o644); err != nil {
		t.Fatalf("write orders: %v", err)
	}
	return customers, orders
}

func TestServiceGeneratePlanFromFiles(t *testing.T) {
	svc := newTestService(t)
	customers, orders := writeInput(t, t.TempDir())

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	res, err := svc.GeneratePlanFromFiles(context.Background(), customers, orders, start)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Stats.VisitsPlanned != 3 {
		t.Errorf("visits planned = %d, want 3", res.Stats.VisitsPlanned)
	}
	if len(res.UnmatchedOrders) != 1 || res.UnmatchedOrders[0].ID != "W004" {
		t.Errorf("unexpected unmatched orders %+v", res.UnmatchedOrders)
	}
	for _, v := range res.Plan {
		if v.Date.Before(start) {
			t.Errorf("visit scheduled before start: %v", v.Date)
		}
	}
}

func TestServiceExport(t *testing.T) {
	svc := newTestService(t)
	customers, orders := writeInput(t, t.TempDir())

	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	res, err := svc.GeneratePlanFromFiles(context.Background(), customers, orders, start)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "out")
	if err := svc.Export(res, outDir); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range []string{"planning_tour.csv", "planning_tour.json", "rinnovi.csv", "rinnovi.json"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestServiceRecordsRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Work.Seed = 42
	cfg.PlanLog.Enabled = true
	cfg.PlanLog.Backend = "jsonl"
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	cfg.PlanLog.Path = path
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() { _ = svc.Close() }()

	customers, orders := writeInput(t, t.TempDir())
	if _, err := svc.GeneratePlanFromFiles(context.Background(), customers, orders, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("run log is empty")
	}
}
