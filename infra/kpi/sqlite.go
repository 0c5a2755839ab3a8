package kpi

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/visitplan/visitplan/core/planner"
)

// SQLiteStore keeps a history of per-inspector KPIs across planning runs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS inspector_kpi (
        run_id TEXT,
        ts INTEGER,
        inspector TEXT,
        visits INTEGER,
        km REAL,
        hours REAL,
        days INTEGER,
        PRIMARY KEY(run_id, inspector)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts or replaces the KPI rows of one run.
func (s *SQLiteStore) Add(runID string, at time.Time, kpis []planner.InspectorKPI) error {
	for _, k := range kpis {
		_, err := s.db.Exec(`INSERT INTO inspector_kpi (run_id, ts, inspector, visits, km, hours, days)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(run_id, inspector) DO UPDATE SET
            visits = excluded.visits,
            km = excluded.km,
            hours = excluded.hours,
            days = excluded.days`,
			runID, at.Unix(), k.Inspector, k.Visits, k.Km, k.Hours, k.Days)
		if err != nil {
			return err
		}
	}
	return nil
}

// Query returns one inspector's KPI rows in the range [start,end].
func (s *SQLiteStore) Query(inspector string, start, end time.Time) ([]planner.InspectorKPI, error) {
	rows, err := s.db.Query(`SELECT inspector, visits, km, hours, days
        FROM inspector_kpi WHERE inspector = ? AND ts >= ? AND ts <= ? ORDER BY ts`,
		inspector, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []planner.InspectorKPI
	for rows.Next() {
		var k planner.InspectorKPI
		if err := rows.Scan(&k.Inspector, &k.Visits, &k.Km, &k.Hours, &k.Days); err != nil {
			return nil, err
		}
		res = append(res, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
