// Package nutrition scores packaged food products from their per-100g nutrient facts.
package nutrition

// Product is a packaged food record. All quantities are per 100g (or 100ml).
// Caffeine is carried for display and future rules; no rule reads it.
type Product struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"product_name" yaml:"product_name"`
	SugarG        float64 `json:"sugar_g" yaml:"sugar_g"`
	SodiumMg      float64 `json:"sodium_mg" yaml:"sodium_mg"`
	TotalFatG     float64 `json:"total_fat_g" yaml:"total_fat_g"`
	SatFatG       float64 `json:"sat_fat_g" yaml:"sat_fat_g"`
	TransFatG     float64 `json:"trans_fat_g" yaml:"trans_fat_g"`
	FiberG        float64 `json:"fiber_g" yaml:"fiber_g"`
	CaloriesKcal  float64 `json:"calories_kcal" yaml:"calories_kcal"`
	RefinedCarb   Flag    `json:"refined_carb" yaml:"refined_carb"`
	Caffeine      float64 `json:"caffeine" yaml:"caffeine"`
	AdditiveCount int     `json:"additive_count" yaml:"additive_count"`
	AlternativeID string  `json:"better_alternative_id,omitempty" yaml:"better_alternative_id,omitempty"`
}

// Finding is a single warning or positive point produced by a rule.
// Value carries the nutrient quantity the rule tested, Count the additive count.
type Finding struct {
	Code  FindingCode `json:"code"`
	Kind  Kind        `json:"kind"`
	Value float64     `json:"value,omitempty"`
	Count int         `json:"count,omitempty"`
}

// Bar is one entry of the nutrient display bundle.
type Bar struct {
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
}

// Nutrients is the display bundle used for bar charts. It is never scored.
type Nutrients struct {
	Sugar  Bar `json:"sugar"`
	Salt   Bar `json:"salt"`
	SatFat Bar `json:"fat"`
}

// Result is the outcome of scoring one product.
type Result struct {
	Score          int            `json:"score"`
	TrafficLight   TrafficLight   `json:"traffic_light"`
	Warnings       []Finding      `json:"warnings"`
	Positives      []Finding      `json:"positives"`
	Recommendation Recommendation `json:"recommendation"`
	CriticalFlags  int            `json:"critical_flags"`
	Nutrients      Nutrients      `json:"nutrients"`
	Alternative    *Product       `json:"alternative,omitempty"`
}

// Display maxima for the nutrient bars.
const (
	SugarBarMax  = 15
	SodiumBarMax = 900
	SatFatBarMax = 10
)

func nutrientsOf(p Product) Nutrients {
	return Nutrients{
		Sugar:  Bar{Value: p.SugarG, Max: SugarBarMax, Label: "Sugar", Unit: "g"},
		Salt:   Bar{Value: p.SodiumMg, Max: SodiumBarMax, Label: "Sodium", Unit: "mg"},
		SatFat: Bar{Value: p.SatFatG, Max: SatFatBarMax, Label: "Sat. Fat", Unit: "g"},
	}
}
