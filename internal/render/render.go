// Package render turns analysis results into display text: JSON-ready
// reports, Markdown, and plain terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/labelcritic/internal/nutrition"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", titleOf(r.Product))
	fmt.Fprintf(&b, "**Score:** %d / 100\n", r.Score)
	fmt.Fprintf(&b, "**Traffic light:** %s\n\n", strings.ToUpper(string(r.TrafficLight)))
	fmt.Fprintf(&b, "%s\n\n", r.Recommendation)

	b.WriteString("## Warnings\n\n")
	if len(r.Warnings) == 0 {
		b.WriteString("- No major concerns.\n")
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "- %s\n", w.Text)
	}
	b.WriteString("\n")

	b.WriteString("## Good Points\n\n")
	if len(r.GoodPoints) == 0 {
		b.WriteString("- -\n")
	}
	for _, g := range r.GoodPoints {
		fmt.Fprintf(&b, "- %s\n", g.Text)
	}
	b.WriteString("\n")

	b.WriteString("## Nutrients (per 100g)\n\n")
	b.WriteString("| Nutrient | Value | Reference max |\n")
	b.WriteString("|----------|-------|---------------|\n")
	for _, bar := range bars(r.Nutrients) {
		fmt.Fprintf(&b, "| %s | %s%s | %s%s |\n", bar.Label, num(bar.Value), bar.Unit, num(bar.Max), bar.Unit)
	}
	b.WriteString("\n")

	if r.Alternative != nil {
		b.WriteString("## Better Alternative\n\n")
		fmt.Fprintf(&b, "Try **%s** instead.\n\n", titleOf(*r.Alternative))
	}

	return b.String()
}

const barWidth = 20

// Text renders a report for a terminal.
func Text(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleOf(r.Product))
	fmt.Fprintf(&b, "Score: %d/100 [%s]\n", r.Score, strings.ToUpper(string(r.TrafficLight)))
	fmt.Fprintf(&b, "%s\n\n", r.Recommendation)

	b.WriteString("Warnings:\n")
	if len(r.Warnings) == 0 {
		b.WriteString("  No major concerns.\n")
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  ! %s\n", w.Text)
	}

	b.WriteString("Good points:\n")
	if len(r.GoodPoints) == 0 {
		b.WriteString("  -\n")
	}
	for _, g := range r.GoodPoints {
		fmt.Fprintf(&b, "  + %s\n", g.Text)
	}

	b.WriteString("Nutrients:\n")
	for _, bar := range bars(r.Nutrients) {
		fmt.Fprintf(&b, "  %-9s %s %s%s\n", bar.Label, meter(bar), num(bar.Value), bar.Unit)
	}

	if r.Alternative != nil {
		fmt.Fprintf(&b, "Better alternative: %s\n", titleOf(*r.Alternative))
	}
	return b.String()
}

func titleOf(p ProductRef) string {
	switch {
	case p.Name != "" && p.ID != "":
		return fmt.Sprintf("%s (%s)", p.Name, p.ID)
	case p.Name != "":
		return p.Name
	default:
		return p.ID
	}
}

func bars(n nutrition.Nutrients) []nutrition.Bar {
	return []nutrition.Bar{n.Sugar, n.Salt, n.SatFat}
}

// meter draws a fixed-width bar, saturating at the display max.
func meter(bar nutrition.Bar) string {
	filled := 0
	if bar.Max > 0 {
		// Clamp in float space; huge ratios overflow int.
		ratio := bar.Value / bar.Max * barWidth
		switch {
		case ratio >= barWidth:
			filled = barWidth
		case ratio > 0:
			filled = int(ratio)
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
