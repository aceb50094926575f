package nutrition

// Rule penalties. Scores start at 100 and are clamped to [0, 100] once,
// after every rule has run.
const (
	startScore = 100

	penaltyHighSugar      = 30
	penaltyModerateSugar  = 10
	penaltyHighSodium     = 30
	penaltyModerateSodium = 10
	penaltyHighSatFat     = 20
	penaltyTransFat       = 50
	penaltyAdditives      = 15
	penaltyRefinedCarb    = 10
	penaltyCombo          = 10

	bonusFiber       = 10
	bonusLenient     = 10
	lenientBelow     = 40
	alternativeBelow = 60
)

// Engine scores products against a fixed threshold table.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	t Thresholds
}

// NewEngine returns an engine bound to t after validating it.
func NewEngine(t Thresholds) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Engine{t: t}, nil
}

var defaultEngine = &Engine{t: DefaultThresholds()}

// Analyze scores p with the default thresholds. r may be nil.
func Analyze(p Product, r Resolver) Result {
	return defaultEngine.Analyze(p, r)
}

// Thresholds returns a copy of the engine's table.
func (e *Engine) Thresholds() Thresholds {
	return e.t
}

// Analyze scores p. When the final score is below 60 and p names an
// alternative, r is asked for it; an unknown id leaves Alternative nil.
func (e *Engine) Analyze(p Product, r Resolver) Result {
	t := e.t
	score := startScore
	critical := 0
	warnings := []Finding{}
	positives := []Finding{}

	warn := func(code FindingCode, value float64) {
		warnings = append(warnings, Finding{Code: code, Kind: KindWarning, Value: value})
	}

	switch {
	case p.SugarG > t.Sugar.High:
		score -= penaltyHighSugar
		warn(CodeHighSugar, p.SugarG)
		critical++
	case p.SugarG > t.Sugar.Moderate:
		score -= penaltyModerateSugar
		warn(CodeModerateSugar, p.SugarG)
	default:
		positives = append(positives, Finding{Code: CodeLowSugar, Kind: KindPositive, Value: p.SugarG})
	}

	switch {
	case p.SodiumMg > t.Sodium.High:
		score -= penaltyHighSodium
		warn(CodeHighSodium, p.SodiumMg)
		critical++
	case p.SodiumMg > t.Sodium.Moderate:
		score -= penaltyModerateSodium
		warn(CodeModerateSodium, p.SodiumMg)
	}

	if p.SatFatG > t.SatFat.High {
		score -= penaltyHighSatFat
		warn(CodeHighSatFat, p.SatFatG)
		critical++
	}

	// Trans fat counts double toward the red light.
	if p.TransFatG > t.TransFat.High {
		score -= penaltyTransFat
		warn(CodeTransFat, p.TransFatG)
		critical += 2
	}

	if p.AdditiveCount > t.Additives {
		score -= penaltyAdditives
		warnings = append(warnings, Finding{Code: CodeHighlyProcessed, Kind: KindWarning, Count: p.AdditiveCount})
	}

	if p.RefinedCarb {
		score -= penaltyRefinedCarb
		warn(CodeRefinedCarb, 0)
	}

	if p.FiberG > t.FiberLow {
		score += bonusFiber
		positives = append(positives, Finding{Code: CodeGoodFiber, Kind: KindPositive, Value: p.FiberG})
	}

	score = lenient(score, critical)

	// Combination rules re-test their predicates independently of the
	// per-nutrient branches above.
	if p.SugarG > t.Sugar.High && p.TotalFatG > t.ComboTotalFat {
		score -= penaltyCombo
		warn(CodeSugarFatCombo, 0)
	}
	if p.SodiumMg > t.Sodium.High && bool(p.RefinedCarb) {
		score -= penaltyCombo
		warn(CodeSaltyRefinedCarb, 0)
	}

	score = clamp(score)

	res := Result{
		Score:          score,
		TrafficLight:   TrafficLightFor(score, critical),
		Warnings:       warnings,
		Positives:      positives,
		Recommendation: RecommendationFor(score),
		CriticalFlags:  critical,
		Nutrients:      nutrientsOf(p),
	}

	if score < alternativeBelow && p.AlternativeID != "" && r != nil {
		if alt, ok := r.Resolve(p.AlternativeID); ok {
			res.Alternative = &alt
		}
	}
	return res
}

// lenient softens a low score built only from minor deductions.
func lenient(score, critical int) int {
	if score < lenientBelow && critical == 0 {
		return score + bonusLenient
	}
	return score
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TrafficLightFor classifies a final score. Three or more critical flags
// force red whatever the score.
func TrafficLightFor(score, criticalFlags int) TrafficLight {
	if criticalFlags >= 3 || score < 40 {
		return LightRed
	}
	if score < 75 {
		return LightYellow
	}
	return LightGreen
}

// RecommendationFor picks advice from the score alone. Unlike
// TrafficLightFor it ignores critical flags, so a red product can still
// receive the moderation message; keep the two in step only deliberately.
func RecommendationFor(score int) Recommendation {
	switch {
	case score >= 75:
		return RecommendPositive
	case score >= 40:
		return RecommendModeration
	default:
		return RecommendLimit
	}
}
