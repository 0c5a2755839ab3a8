package model

import "time"

// VisitStatus tracks the confirmation lifecycle of a planned visit. The
// planner always emits StatusPending; the other states are set by manual
// editing downstream.
type VisitStatus string

const (
	StatusPending   VisitStatus = "Da Confermare"
	StatusConfirmed VisitStatus = "Confermato"
	StatusCancelled VisitStatus = "Annullato"
)

// VisitCandidate is the join of an order with its customer record. It is
// enriched in place through geocoding and clustering before allocation.
type VisitCandidate struct {
	Order    Order
	Customer Customer

	// Coordinates resolved by the geo resolver, possibly a regional fallback.
	Lat float64
	Lon float64

	// ClusterID groups geographically close candidates; assigned by the
	// spatial clusterer, values in [0, K).
	ClusterID int
}

// Visit is a fully planned row: a candidate with an inspector, a position in
// its tour and a calendar date.
type Visit struct {
	VisitCandidate

	Inspector      string
	Zone           string  // tour zone label, e.g. "Cluster_3_Adrian"
	KmFromPrevious float64 // geodesic km from the previous stop (home base for the first)

	Date     time.Time
	Week     int     // ISO week number
	DayName  string  // localized day name
	DayHours float64 // accumulated work hours on the assigned day, this visit included

	Status VisitStatus
	Notes  string
}

// RequiredHours returns the work load of the visit including the fixed
// per-visit buffer and travel time at the given average speed.
func (v Visit) RequiredHours(bufferHours, speedKmh float64) float64 {
	travel := 0.0
	if speedKmh > 0 {
		travel = v.KmFromPrevious / speedKmh
	}
	return v.Customer.WorkHours + bufferHours + travel
}
