package nutrition

// TrafficLight is the coarse at-a-glance classification of a product.
type TrafficLight string

const (
	LightRed    TrafficLight = "red"
	LightYellow TrafficLight = "yellow"
	LightGreen  TrafficLight = "green"
)

func (l TrafficLight) Valid() bool {
	switch l {
	case LightRed, LightYellow, LightGreen:
		return true
	}
	return false
}

// Level returns a sort key (higher = worse).
func (l TrafficLight) Level() int {
	switch l {
	case LightRed:
		return 2
	case LightYellow:
		return 1
	default:
		return 0
	}
}

// Recommendation selects the advice shown with a score.
type Recommendation string

const (
	RecommendPositive   Recommendation = "positive"
	RecommendModeration Recommendation = "moderation"
	RecommendLimit      Recommendation = "limit"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendPositive, RecommendModeration, RecommendLimit:
		return true
	}
	return false
}

// Kind separates warnings from positive points.
type Kind string

const (
	KindWarning  Kind = "warning"
	KindPositive Kind = "positive"
)

// FindingCode identifies the rule that produced a finding.
type FindingCode string

const (
	CodeHighSugar        FindingCode = "HIGH_SUGAR"
	CodeModerateSugar    FindingCode = "MODERATE_SUGAR"
	CodeLowSugar         FindingCode = "LOW_SUGAR"
	CodeHighSodium       FindingCode = "HIGH_SODIUM"
	CodeModerateSodium   FindingCode = "MODERATE_SODIUM"
	CodeHighSatFat       FindingCode = "HIGH_SAT_FAT"
	CodeTransFat         FindingCode = "TRANS_FAT"
	CodeHighlyProcessed  FindingCode = "HIGHLY_PROCESSED"
	CodeRefinedCarb      FindingCode = "REFINED_CARB"
	CodeGoodFiber        FindingCode = "GOOD_FIBER"
	CodeSugarFatCombo    FindingCode = "SUGAR_FAT_COMBO"
	CodeSaltyRefinedCarb FindingCode = "SALTY_REFINED_CARB"
)

func (c FindingCode) Valid() bool {
	switch c {
	case CodeHighSugar, CodeModerateSugar, CodeLowSugar,
		CodeHighSodium, CodeModerateSodium, CodeHighSatFat, CodeTransFat,
		CodeHighlyProcessed, CodeRefinedCarb, CodeGoodFiber,
		CodeSugarFatCombo, CodeSaltyRefinedCarb:
		return true
	}
	return false
}
