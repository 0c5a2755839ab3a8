// Package match joins confirmed orders against the customer master table.
// The join key is the normalized (name, address) pair; only matched orders
// proceed to planning.
package match

import "github.com/visitplan/visitplan/core/model"

type matchKey struct {
	name    string
	address string
}

// MatchOrders performs an inner equi-join of orders against customers on
// normalized (name, address). When several customer rows share a key, every
// (order, customer) combination is emitted. Orders whose key matches no
// customer are returned in the unmatched set; every order id appears in
// exactly one of the two sets.
func MatchOrders(customers []model.Customer, orders []model.Order) ([]model.VisitCandidate, []model.Order) {
	index := make(map[matchKey][]model.Customer, len(customers))
	for _, c := range customers {
		k := matchKey{name: Normalize(c.Name), address: Normalize(c.Address)}
		index[k] = append(index[k], c)
	}

	var matched []model.VisitCandidate
	var unmatched []model.Order
	for _, o := range orders {
		k := matchKey{name: Normalize(o.Customer), address: Normalize(o.SiteAddress)}
		hits, ok := index[k]
		if !ok {
			unmatched = append(unmatched, o)
			continue
		}
		for _, c := range hits {
			matched = append(matched, model.VisitCandidate{Order: o, Customer: c})
		}
	}
	return matched, unmatched
}
