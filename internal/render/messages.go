package render

import (
	"fmt"
	"strconv"

	"github.com/dshills/labelcritic/internal/nutrition"
)

// Message returns the display text for a finding. Unknown codes render as
// the bare code.
func Message(f nutrition.Finding) string {
	if !f.Code.Valid() {
		return string(f.Code)
	}
	switch f.Code {
	case nutrition.CodeHighSugar:
		return fmt.Sprintf("High Sugar (%sg): Limits your daily intake.", num(f.Value))
	case nutrition.CodeModerateSugar:
		return fmt.Sprintf("Moderate Sugar (%sg).", num(f.Value))
	case nutrition.CodeLowSugar:
		return "Low in Sugar."
	case nutrition.CodeHighSodium:
		return fmt.Sprintf("High Sodium (%smg): Bad for blood pressure.", num(f.Value))
	case nutrition.CodeModerateSodium:
		return "Moderate Sodium."
	case nutrition.CodeHighSatFat:
		return fmt.Sprintf("High Saturated Fat (%sg).", num(f.Value))
	case nutrition.CodeTransFat:
		return fmt.Sprintf("Contains Trans Fat (%sg): Avoid if possible.", num(f.Value))
	case nutrition.CodeHighlyProcessed:
		return fmt.Sprintf("Highly Processed (%d additives).", f.Count)
	case nutrition.CodeRefinedCarb:
		return "Contains Refined Carbs (Maida/White Flour)."
	case nutrition.CodeGoodFiber:
		return "Good Source of Fiber."
	case nutrition.CodeSugarFatCombo:
		return "⚠ High Sugar & Fat Combo: Calorie dense and addictive."
	case nutrition.CodeSaltyRefinedCarb:
		return "⚠ Salty Refined Carb: Not filling, high craving risk."
	}
	return string(f.Code)
}

// RecommendationText returns the advice sentence for r, or "" when r is
// not a known recommendation.
func RecommendationText(r nutrition.Recommendation) string {
	if !r.Valid() {
		return ""
	}
	switch r {
	case nutrition.RecommendPositive:
		return "Great choice! This seems healthy for regular consumption."
	case nutrition.RecommendModeration:
		return "Okay generally, but consume in moderation due to identified ingredients."
	case nutrition.RecommendLimit:
		return "Limit intake. Contains high levels of sugar, salt, or bad fats."
	}
	return ""
}

// num formats a quantity the shortest way that round-trips: 25, 0.5, 1.25.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
