package config

import (
	"fmt"

	"github.com/visitplan/visitplan/core/model"
)

// InspectorConfig describes one roster entry.
type InspectorConfig struct {
	Name           string   `json:"name"`
	BaseLocation   string   `json:"base_location"`
	BaseLat        float64  `json:"base_lat"`
	BaseLon        float64  `json:"base_lon"`
	AllowedRegions []string `json:"allowed_regions"`
}

// DefaultRoster returns the standard fleet: three national inspectors based
// in Pagnacco and one regional inspector based in Milano, restricted to the
// north-west.
func DefaultRoster() []InspectorConfig {
	return []InspectorConfig{
		{Name: "Adrian", BaseLocation: "Pagnacco, UD", BaseLat: 46.08, BaseLon: 13.18},
		{Name: "Salvatore", BaseLocation: "Pagnacco, UD", BaseLat: 46.08, BaseLon: 13.18},
		{Name: "Mattia", BaseLocation: "Pagnacco, UD", BaseLat: 46.08, BaseLon: 13.18},
		{Name: "Paolo", BaseLocation: "Milano", BaseLat: 45.46, BaseLon: 9.19,
			AllowedRegions: []string{"Lombardia", "Piemonte", "Liguria", "Valle d'Aosta"}},
	}
}

// ValidateRoster enforces the configuration invariant behind allocation:
// unique names and at least one national inspector, so every region maps to
// at least one eligible inspector.
func ValidateRoster(roster []InspectorConfig) error {
	if len(roster) == 0 {
		return fmt.Errorf("roster is empty")
	}
	seen := map[string]struct{}{}
	national := 0
	for _, ins := range roster {
		if ins.Name == "" {
			return fmt.Errorf("inspector without a name")
		}
		if _, dup := seen[ins.Name]; dup {
			return fmt.Errorf("duplicate inspector %q", ins.Name)
		}
		seen[ins.Name] = struct{}{}
		if len(ins.AllowedRegions) == 0 {
			national++
		}
	}
	if national == 0 {
		return fmt.Errorf("at least one inspector must have national coverage")
	}
	return nil
}

// Roster converts the configuration entries into model inspectors.
func Roster(roster []InspectorConfig) []model.Inspector {
	out := make([]model.Inspector, len(roster))
	for i, ins := range roster {
		out[i] = model.Inspector{
			Name:           ins.Name,
			BaseLocation:   ins.BaseLocation,
			BaseLat:        ins.BaseLat,
			BaseLon:        ins.BaseLon,
			AllowedRegions: append([]string(nil), ins.AllowedRegions...),
		}
	}
	return out
}
