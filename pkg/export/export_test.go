package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/visitplan/visitplan/core/model"
)

func sampleVisit() model.Visit {
	return model.Visit{
		VisitCandidate: model.VisitCandidate{
			Customer: model.Customer{
				Name:      "Rossi SpA",
				Address:   "Via Roma 1",
				City:      "Pagnacco",
				Region:    "Friuli-Venezia Giulia",
				WorkHours: 2.5,
			},
		},
		Inspector:      "Adrian",
		Zone:           "Cluster_0_Adrian",
		KmFromPrevious: 12.34,
		Date:           time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		Week:           12,
		DayName:        "Lunedì",
		Status:         model.StatusPending,
	}
}

func TestWriteVisitsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVisitsCSV(&buf, []model.Visit{sampleVisit()}); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d", len(rows))
	}
	if rows[0][0] != "Settimana" || rows[0][4] != "Tour_Zona" {
		t.Errorf("unexpected header %v", rows[0])
	}
	row := rows[1]
	if row[1] != "16/03/2026" {
		t.Errorf("date = %q", row[1])
	}
	if row[2] != "Lunedì" || row[3] != "Adrian" {
		t.Errorf("unexpected row %v", row)
	}
	if row[10] != "12.3" {
		t.Errorf("km = %q", row[10])
	}
	if row[11] != "Da Confermare" {
		t.Errorf("status = %q", row[11])
	}
}

func TestWriteRenewalsCSV(t *testing.T) {
	r := model.RenewalCandidate{
		Customer: model.Customer{
			ID:     "18923",
			Name:   "Rossi SpA",
			City:   "Pagnacco",
			Region: "Friuli-Venezia Giulia",
		},
		ExpiryDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		DaysToExpiry: 45,
	}
	var buf bytes.Buffer
	if err := WriteRenewalsCSV(&buf, []model.RenewalCandidate{r}); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d", len(rows))
	}
	row := rows[1]
	if row[0] != "18923" || row[5] != "01/02/2026" || row[6] != "45" {
		t.Errorf("unexpected row %v", row)
	}
	// contact columns start empty
	for i := 7; i <= 10; i++ {
		if row[i] != "" {
			t.Errorf("column %d should be empty, got %q", i, row[i])
		}
	}
}

func TestWriteVisitsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVisitsJSON(&buf, []model.Visit{sampleVisit()}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "Cluster_0_Adrian") {
		t.Errorf("zone missing from JSON: %s", buf.String())
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatDuration(2.5); got != "2h 30min" {
		t.Errorf("FormatDuration = %q", got)
	}
	if got := FormatDistance(145.68); got != "145.7 km" {
		t.Errorf("FormatDistance = %q", got)
	}
}
