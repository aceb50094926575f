package render

import (
	"github.com/dshills/labelcritic/internal/nutrition"
)

// Report is the serializable view of one analysis.
type Report struct {
	Tool           string                 `json:"tool"`
	Version        string                 `json:"version"`
	Product        ProductRef             `json:"product"`
	Score          int                    `json:"score"`
	TrafficLight   nutrition.TrafficLight `json:"traffic_light"`
	CriticalFlags  int                    `json:"critical_flags"`
	Warnings       []Line                 `json:"warnings"`
	GoodPoints     []Line                 `json:"good_points"`
	Recommendation string                 `json:"recommendation"`
	Nutrients      nutrition.Nutrients    `json:"nutrients"`
	Alternative    *ProductRef            `json:"alternative,omitempty"`
	Source         *Source                `json:"source,omitempty"`
}

// ProductRef identifies a product in a report.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Line is a rendered finding with its rule code.
type Line struct {
	Code nutrition.FindingCode `json:"code"`
	Text string                `json:"text"`
}

// Source records where the product and alternatives came from.
type Source struct {
	Catalog string `json:"catalog"`
	Hash    string `json:"hash"`
}

// NewReport renders an analysis result for output.
func NewReport(p nutrition.Product, res nutrition.Result) Report {
	r := Report{
		Product:        ProductRef{ID: p.ID, Name: p.Name},
		Score:          res.Score,
		TrafficLight:   res.TrafficLight,
		CriticalFlags:  res.CriticalFlags,
		Warnings:       lines(res.Warnings),
		GoodPoints:     lines(res.Positives),
		Recommendation: RecommendationText(res.Recommendation),
		Nutrients:      res.Nutrients,
	}
	if res.Alternative != nil {
		r.Alternative = &ProductRef{ID: res.Alternative.ID, Name: res.Alternative.Name}
	}
	return r
}

func lines(fs []nutrition.Finding) []Line {
	out := make([]Line, 0, len(fs))
	for _, f := range fs {
		out = append(out, Line{Code: f.Code, Text: Message(f)})
	}
	return out
}
