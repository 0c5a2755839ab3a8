// Package export serializes planning results into the CSV and JSON layouts
// consumed by the operations team. Column names and order are part of the
// contract with the downstream spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/visitplan/visitplan/core/model"
)

const dateLayout = "02/01/2006"

var planHeader = []string{
	"Settimana", "Data", "Giorno", "Ispettore", "Tour_Zona", "Cliente",
	"Indirizzo", "Città", "Regione", "Ore_Stimate", "Km_da_Precedente",
	"Stato", "Note",
}

var renewalHeader = []string{
	"ID_Cliente", "Cliente", "Indirizzo", "Città", "Regione",
	"Data_Scadenza_2026", "Giorni_a_Scadenza", "Stato_Contatto",
	"Data_Contatto", "Ordine_Ricevuto", "Note",
}

// WriteVisitsJSON writes the plan to w in JSON format.
func WriteVisitsJSON(w io.Writer, visits []model.Visit) error {
	enc := json.NewEncoder(w)
	return enc.Encode(visits)
}

// WriteVisitsCSV writes the plan to w with the operations headers.
func WriteVisitsCSV(w io.Writer, visits []model.Visit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(planHeader); err != nil {
		return err
	}
	for _, v := range visits {
		rec := []string{
			strconv.Itoa(v.Week),
			v.Date.Format(dateLayout),
			v.DayName,
			v.Inspector,
			v.Zone,
			v.Customer.Name,
			v.Customer.Address,
			v.Customer.City,
			v.Customer.Region,
			strconv.FormatFloat(v.Customer.WorkHours, 'f', -1, 64),
			strconv.FormatFloat(v.KmFromPrevious, 'f', 1, 64),
			string(v.Status),
			v.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRenewalsJSON writes the renewal list to w in JSON format.
func WriteRenewalsJSON(w io.Writer, renewals []model.RenewalCandidate) error {
	enc := json.NewEncoder(w)
	return enc.Encode(renewals)
}

// WriteRenewalsCSV writes the renewal list to w. Contact-tracking columns
// are emitted empty for the operator to fill in.
func WriteRenewalsCSV(w io.Writer, renewals []model.RenewalCandidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(renewalHeader); err != nil {
		return err
	}
	for _, r := range renewals {
		rec := []string{
			r.Customer.ID,
			r.Customer.Name,
			r.Customer.Address,
			r.Customer.City,
			r.Customer.Region,
			r.ExpiryDate.Format(dateLayout),
			strconv.Itoa(r.DaysToExpiry),
			r.ContactStatus,
			r.ContactDate,
			r.OrderReceived,
			r.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatDuration renders hours as "2h 30min".
func FormatDuration(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%dh %02dmin", h, m)
}

// FormatDistance renders kilometers as "145.7 km".
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}
