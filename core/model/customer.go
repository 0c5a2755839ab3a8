package model

// Customer is an immutable master-data record describing an inspection site.
// The engine never mutates customer rows; they are owned by the master table.
type Customer struct {
	ID            string
	Name          string
	Address       string
	PostalCode    string
	City          string
	Region        string
	WorkHours     float64 // expected on-site duration in hours
	ReferenceDate string  // contract reference date as found in the master table
}
