// Package input loads the two source tables of the engine, the customer
// master and the confirmed orders, from CSV files. Loading validates the
// header so a wrong export fails loudly instead of planning garbage.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/visitplan/visitplan/core/model"
)

// Column names as they appear in the customer master export.
const (
	colCustomerID    = "ID Cliente"
	colCustomerName  = "Nome del Cliente"
	colAddress       = "Indirizzo completo"
	colPostalCode    = "CAP"
	colCity          = "Città"
	colRegion        = "Regione"
	colWorkHours     = "Ore lavoro"
	colReferenceDate = "Data visita di riferimento 2026"
)

// Column names of the confirmed orders export.
const (
	colOrderID     = "ID_Ordine"
	colOrderClient = "Cliente"
	colSiteAddress = "Indirizzo_Sede"
	colOrderDate   = "Data_Ordine"
)

var customerRequired = []string{
	colCustomerID, colCustomerName, colAddress, colPostalCode,
	colCity, colRegion, colWorkHours,
}

var orderRequired = []string{colOrderID, colOrderClient, colSiteAddress}

// LoadCustomers reads the customer master table.
func LoadCustomers(path string) ([]model.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadCustomers(f)
}

// ReadCustomers parses customer rows from r.
func ReadCustomers(r io.Reader) ([]model.Customer, error) {
	idx, rows, err := readTable(r, customerRequired)
	if err != nil {
		return nil, fmt.Errorf("customer master: %w", err)
	}
	customers := make([]model.Customer, 0, len(rows))
	for i, row := range rows {
		hours, err := parseHours(field(row, idx, colWorkHours))
		if err != nil {
			return nil, fmt.Errorf("customer master row %d: %w", i+2, err)
		}
		customers = append(customers, model.Customer{
			ID:            field(row, idx, colCustomerID),
			Name:          field(row, idx, colCustomerName),
			Address:       field(row, idx, colAddress),
			PostalCode:    field(row, idx, colPostalCode),
			City:          field(row, idx, colCity),
			Region:        field(row, idx, colRegion),
			WorkHours:     hours,
			ReferenceDate: field(row, idx, colReferenceDate),
		})
	}
	return customers, nil
}

// LoadOrders reads the confirmed orders table.
func LoadOrders(path string) ([]model.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadOrders(f)
}

// ReadOrders parses order rows from r.
func ReadOrders(r io.Reader) ([]model.Order, error) {
	idx, rows, err := readTable(r, orderRequired)
	if err != nil {
		return nil, fmt.Errorf("confirmed orders: %w", err)
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, model.Order{
			ID:          field(row, idx, colOrderID),
			Customer:    field(row, idx, colOrderClient),
			SiteAddress: field(row, idx, colSiteAddress),
			OrderDate:   field(row, idx, colOrderDate),
		})
	}
	return orders, nil
}

// readTable reads the header and all rows, validating the required columns
// are present. Optional columns simply resolve to an empty field.
func readTable(r io.Reader, required []string) (map[string]int, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return idx, rows, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseHours accepts both decimal point and the Italian comma form.
func parseHours(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid work hours %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative work hours %q", s)
	}
	return v, nil
}
