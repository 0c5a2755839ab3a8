package renewal

import (
	"testing"
	"time"

	"github.com/visitplan/visitplan/core/model"
)

var now = time.Date(2025, 12, 1, 10, 30, 0, 0, time.UTC)

func customer(id string, ref string) model.Customer {
	return model.Customer{ID: id, Name: id, ReferenceDate: ref}
}

func TestSelectWindowBoundaries(t *testing.T) {
	customers := []model.Customer{
		customer("in60", "2026-01-30"),   // 60 days out
		customer("out120", "2026-03-31"), // 120 days out
		customer("today", "2025-12-01"),
		customer("edge", "2026-03-01"), // exactly 90 days out
		customer("past", "2025-11-20"),
	}
	got := Select(customers, 90, now)

	ids := map[string]bool{}
	for _, r := range got {
		ids[r.Customer.ID] = true
	}
	if !ids["in60"] {
		t.Errorf("customer 60 days out must appear in a 90-day window")
	}
	if ids["out120"] {
		t.Errorf("customer 120 days out must not appear in a 90-day window")
	}
	if !ids["today"] || !ids["edge"] {
		t.Errorf("window is inclusive on both ends: %v", ids)
	}
	if ids["past"] {
		t.Errorf("already expired contracts are not renewals")
	}
}

func TestSelectSortedByUrgency(t *testing.T) {
	customers := []model.Customer{
		customer("later", "2026-02-15"),
		customer("soon", "2025-12-10"),
		customer("mid", "2026-01-05"),
	}
	got := Select(customers, 90, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 renewals, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].DaysToExpiry > got[i].DaysToExpiry {
			t.Fatalf("renewals must be sorted most urgent first: %+v", got)
		}
	}
	if got[0].Customer.ID != "soon" {
		t.Errorf("expected soon first, got %s", got[0].Customer.ID)
	}
}

func TestSelectDaysToExpiry(t *testing.T) {
	got := Select([]model.Customer{customer("c", "2025-12-31")}, 90, now)
	if len(got) != 1 || got[0].DaysToExpiry != 30 {
		t.Fatalf("expected 30 days to expiry, got %+v", got)
	}
}

func TestSelectSkipsUnparseableDates(t *testing.T) {
	customers := []model.Customer{
		customer("bad", "da definire"),
		customer("empty", ""),
		customer("ok", "2025-12-20"),
	}
	got := Select(customers, 90, now)
	if len(got) != 1 || got[0].Customer.ID != "ok" {
		t.Fatalf("unparseable dates are skipped silently, got %+v", got)
	}
}

func TestSelectContactFieldsStartEmpty(t *testing.T) {
	got := Select([]model.Customer{customer("c", "2025-12-20")}, 90, now)
	r := got[0]
	if r.ContactStatus != "" || r.ContactDate != "" || r.OrderReceived != "" || r.Notes != "" {
		t.Fatalf("contact-tracking fields must start empty: %+v", r)
	}
}

func TestSelectAlternateLayouts(t *testing.T) {
	got := Select([]model.Customer{customer("it", "20/12/2025")}, 90, now)
	if len(got) != 1 {
		t.Fatalf("dd/mm/yyyy layout should parse, got %+v", got)
	}
}
