package nutrition

import (
	"fmt"
	"math"
)

// Band holds the cutoffs for one nutrient. A zero Moderate means the
// nutrient has no moderate tier.
type Band struct {
	High     float64 `json:"high" yaml:"high"`
	Moderate float64 `json:"moderate,omitempty" yaml:"moderate,omitempty"`
}

// Thresholds is the table every rule compares against.
type Thresholds struct {
	Sugar     Band    `json:"sugar" yaml:"sugar"`
	Sodium    Band    `json:"sodium" yaml:"sodium"`
	SatFat    Band    `json:"sat_fat" yaml:"sat_fat"`
	TransFat  Band    `json:"trans_fat" yaml:"trans_fat"`
	FiberLow  float64 `json:"fiber_low" yaml:"fiber_low"`
	Additives int     `json:"additives_high" yaml:"additives_high"`
	// ComboTotalFat is the total fat cutoff of the sugar and fat combination rule.
	ComboTotalFat float64 `json:"combo_total_fat" yaml:"combo_total_fat"`
}

// DefaultThresholds returns the general guideline table (per 100g/100ml).
func DefaultThresholds() Thresholds {
	return Thresholds{
		Sugar:         Band{High: 10, Moderate: 5},
		Sodium:        Band{High: 600, Moderate: 300},
		SatFat:        Band{High: 5, Moderate: 2},
		TransFat:      Band{High: 0.2},
		FiberLow:      3,
		Additives:     3,
		ComboTotalFat: 10,
	}
}

// Validate checks that every cutoff is finite and non-negative and that
// High >= Moderate for each band.
func (t Thresholds) Validate() error {
	bands := []struct {
		name string
		b    Band
	}{
		{"sugar", t.Sugar},
		{"sodium", t.Sodium},
		{"sat_fat", t.SatFat},
		{"trans_fat", t.TransFat},
	}
	for _, nb := range bands {
		if err := checkCutoff(nb.name+".high", nb.b.High); err != nil {
			return err
		}
		if err := checkCutoff(nb.name+".moderate", nb.b.Moderate); err != nil {
			return err
		}
		if nb.b.High < nb.b.Moderate {
			return fmt.Errorf("thresholds: %s: high %g is below moderate %g", nb.name, nb.b.High, nb.b.Moderate)
		}
	}
	if err := checkCutoff("fiber_low", t.FiberLow); err != nil {
		return err
	}
	if err := checkCutoff("combo_total_fat", t.ComboTotalFat); err != nil {
		return err
	}
	if t.Additives < 0 {
		return fmt.Errorf("thresholds: additives_high must be >= 0")
	}
	return nil
}

func checkCutoff(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("thresholds: %s must be finite", name)
	}
	if v < 0 {
		return fmt.Errorf("thresholds: %s must be >= 0", name)
	}
	return nil
}
