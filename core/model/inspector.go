package model

// Inspector is static roster configuration. It is never mutated at runtime.
type Inspector struct {
	Name         string
	BaseLocation string
	BaseLat      float64
	BaseLon      float64

	// AllowedRegions restricts the inspector to a fixed territory. An empty
	// list means national coverage.
	AllowedRegions []string
}

// National reports whether the inspector covers the whole country.
func (i Inspector) National() bool { return len(i.AllowedRegions) == 0 }

// Allows reports whether the inspector may work in the given region.
// National inspectors are allowed everywhere.
func (i Inspector) Allows(region string) bool {
	if i.National() {
		return true
	}
	for _, r := range i.AllowedRegions {
		if r == region {
			return true
		}
	}
	return false
}
