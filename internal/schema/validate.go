// Package schema validates product records before they reach the scoring engine.
//
// The engine itself accepts any record. Boundaries that take records from
// outside (files, HTTP bodies) run them through Validate first: ids are
// required, every quantity must be finite and non-negative, and absent fields
// decode as zero. A dangling better_alternative_id is not an error.
package schema

import (
	"fmt"
	"math"

	"github.com/dshills/labelcritic/internal/nutrition"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks one product record. prefix is prepended to field paths
// and may be empty.
func Validate(p nutrition.Product, prefix string) []ValidationError {
	var errs []ValidationError
	path := func(field string) string {
		if prefix == "" {
			return field
		}
		return prefix + "." + field
	}

	if p.ID == "" {
		errs = append(errs, ValidationError{path("id"), "required"})
	}

	for _, q := range []struct {
		name string
		v    float64
	}{
		{"sugar_g", p.SugarG},
		{"sodium_mg", p.SodiumMg},
		{"total_fat_g", p.TotalFatG},
		{"sat_fat_g", p.SatFatG},
		{"trans_fat_g", p.TransFatG},
		{"fiber_g", p.FiberG},
		{"calories_kcal", p.CaloriesKcal},
		{"caffeine", p.Caffeine},
	} {
		switch {
		case math.IsNaN(q.v) || math.IsInf(q.v, 0):
			errs = append(errs, ValidationError{path(q.name), "must be a finite number"})
		case q.v < 0:
			errs = append(errs, ValidationError{path(q.name), fmt.Sprintf("must be >= 0, got %g", q.v)})
		}
	}

	if p.AdditiveCount < 0 {
		errs = append(errs, ValidationError{path("additive_count"), fmt.Sprintf("must be >= 0, got %d", p.AdditiveCount)})
	}
	if p.AlternativeID != "" && p.AlternativeID == p.ID {
		errs = append(errs, ValidationError{path("better_alternative_id"), "must not reference the product itself"})
	}

	return errs
}

// ValidateCatalog checks every record and rejects duplicate ids.
func ValidateCatalog(products []nutrition.Product) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, p := range products {
		prefix := fmt.Sprintf("products[%d]", i)
		errs = append(errs, Validate(p, prefix)...)
		if p.ID == "" {
			continue
		}
		if seen[p.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", p.ID)})
		}
		seen[p.ID] = true
	}
	return errs
}

// DanglingAlternatives returns the ids of products whose alternative is not
// in the set. They are legal; callers may want to log them.
func DanglingAlternatives(products []nutrition.Product) []string {
	ids := make(map[string]bool, len(products))
	for _, p := range products {
		ids[p.ID] = true
	}
	var out []string
	for _, p := range products {
		if p.AlternativeID != "" && !ids[p.AlternativeID] {
			out = append(out, p.ID)
		}
	}
	return out
}
