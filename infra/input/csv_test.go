package input

import (
	"strings"
	"testing"
)

const customerCSV = `ID Cliente,Nome del Cliente,Indirizzo completo,CAP,Città,Regione,Ore lavoro,Data visita di riferimento 2026
18923,Rossi SpA,Via Roma 1,33010,Pagnacco,Friuli-Venezia Giulia,"2,5",2026-03-15
19001,Bianchi Srl,Corso Buenos Aires 10,20124,Milano,Lombardia,3.0,2026-05-02
`

const orderCSV = `ID_Ordine,Cliente,Indirizzo_Sede,Data_Ordine
W2500547-000,Rossi SpA,Via Roma 1,2025-11-02
W2500548-000,Bianchi Srl,Corso Buenos Aires 10,2025-11-03
`

func TestReadCustomers(t *testing.T) {
	customers, err := ReadCustomers(strings.NewReader(customerCSV))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	c := customers[0]
	if c.ID != "18923" || c.Name != "Rossi SpA" || c.Region != "Friuli-Venezia Giulia" {
		t.Errorf("unexpected customer %+v", c)
	}
	if c.WorkHours != 2.5 {
		t.Errorf("comma decimal not parsed: %v", c.WorkHours)
	}
	if c.ReferenceDate != "2026-03-15" {
		t.Errorf("reference date = %q", c.ReferenceDate)
	}
}

func TestReadCustomersMissingColumn(t *testing.T) {
	csv := "ID Cliente,Nome del Cliente\n1,Test\n"
	if _, err := ReadCustomers(strings.NewReader(csv)); err == nil {
		t.Fatalf("expected error for missing columns")
	} else if !strings.Contains(err.Error(), "missing columns") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadCustomersBadHours(t *testing.T) {
	csv := `ID Cliente,Nome del Cliente,Indirizzo completo,CAP,Città,Regione,Ore lavoro
1,Test,Via X,00100,Roma,Lazio,abc
`
	if _, err := ReadCustomers(strings.NewReader(csv)); err == nil {
		t.Fatalf("expected error for invalid hours")
	}
}

func TestReadOrders(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(orderCSV))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "W2500547-000" || orders[0].Customer != "Rossi SpA" {
		t.Errorf("unexpected order %+v", orders[0])
	}
}

func TestReadOrdersMissingColumn(t *testing.T) {
	csv := "ID_Ordine,Cliente\nW1,Test\n"
	if _, err := ReadOrders(strings.NewReader(csv)); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}
