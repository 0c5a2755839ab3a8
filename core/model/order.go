package model

// Order is a confirmed order row. An order may match zero customers, in which
// case it stays in the unmatched set of the run.
type Order struct {
	ID          string
	Customer    string
	SiteAddress string
	OrderDate   string
}
