package model

import "time"

// RenewalCandidate is a customer whose contract reference date falls inside
// the alert window. Contact-tracking fields start empty and are filled in by
// the operator.
type RenewalCandidate struct {
	Customer     Customer
	ExpiryDate   time.Time
	DaysToExpiry int

	ContactStatus string
	ContactDate   string
	OrderReceived string
	Notes         string
}
