package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/labelcritic/internal/render"
)

func defaultFlags() *analyzeFlags {
	return &analyzeFlags{builtin: "sample", format: "json"}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// --- Pure function tests ---

func TestFormatReportsJSONSingle(t *testing.T) {
	reps := []render.Report{{Product: render.ProductRef{ID: "a"}, Score: 70}}
	out, err := formatReports(reps, "json", false)
	if err != nil {
		t.Fatal(err)
	}
	var got render.Report
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("single report should be a JSON object: %v", err)
	}
	if got.Product.ID != "a" || got.Score != 70 {
		t.Errorf("got %+v", got)
	}
}

func TestFormatReportsJSONList(t *testing.T) {
	reps := []render.Report{{Product: render.ProductRef{ID: "a"}}, {Product: render.ProductRef{ID: "b"}}}
	out, err := formatReports(reps, "json", true)
	if err != nil {
		t.Fatal(err)
	}
	var got []render.Report
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("--all should produce a JSON array: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d reports, want 2", len(got))
	}
}

func TestFormatReportsMarkdownSeparator(t *testing.T) {
	reps := []render.Report{{Product: render.ProductRef{ID: "a", Name: "A"}}, {Product: render.ProductRef{ID: "b", Name: "B"}}}
	out, err := formatReports(reps, "md", true)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(out, "---\n") != 1 {
		t.Errorf("expected one separator between reports:\n%s", out)
	}
}

// --- runAnalyze tests ---

func TestRunAnalyzeByID(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.json")
	f := defaultFlags()
	f.out = outPath

	if err := runAnalyze([]string{"p2"}, f, &bytes.Buffer{}); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var rep render.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rep.Score != 15 || rep.TrafficLight != "red" {
		t.Errorf("score/light = %d/%s, want 15/red", rep.Score, rep.TrafficLight)
	}
	if rep.Tool != "labelcritic" || rep.Version != version {
		t.Errorf("tool/version = %q/%q", rep.Tool, rep.Version)
	}
	if rep.Alternative == nil || rep.Alternative.ID != "p3" {
		t.Errorf("alternative = %+v, want p3", rep.Alternative)
	}
	if rep.Source == nil || rep.Source.Catalog != "sample" || !strings.HasPrefix(rep.Source.Hash, "sha256:") {
		t.Errorf("source = %+v", rep.Source)
	}
}

func TestRunAnalyzeTextToStdout(t *testing.T) {
	var buf bytes.Buffer
	f := defaultFlags()
	f.format = "text"
	if err := runAnalyze([]string{"p5"}, f, &buf); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Score: 30/100 [RED]") {
		t.Errorf("missing score line:\n%s", out)
	}
	if !strings.Contains(out, "Better alternative: Roasted Makhana (Foxnuts) (p6)") {
		t.Errorf("missing alternative line:\n%s", out)
	}
}

func TestRunAnalyzeAll(t *testing.T) {
	var buf bytes.Buffer
	f := defaultFlags()
	f.all = true
	if err := runAnalyze(nil, f, &buf); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	var reps []render.Report
	if err := json.Unmarshal(buf.Bytes(), &reps); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []int{0, 15, 100, 55, 30, 100}
	if len(reps) != len(want) {
		t.Fatalf("got %d reports, want %d", len(reps), len(want))
	}
	for i, w := range want {
		if reps[i].Score != w {
			t.Errorf("%s score = %d, want %d", reps[i].Product.ID, reps[i].Score, w)
		}
	}
	// p4 names an alternative that the catalog does not hold.
	if reps[3].Alternative != nil {
		t.Errorf("p4 alternative = %+v, want none", reps[3].Alternative)
	}
}

func TestRunAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wafer.yaml")
	data := "id: w1\nproduct_name: Cream Wafer\nsugar_g: 30\nsat_fat_g: 8\ntotal_fat_g: 20\nbetter_alternative_id: p6\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	f := defaultFlags()
	f.file = path
	if err := runAnalyze(nil, f, &buf); err != nil {
		t.Fatalf("runAnalyze: %v", err)
	}
	var rep render.Report
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	// 100 - 30 sugar - 20 sat fat - 10 combo
	if rep.Score != 40 {
		t.Errorf("score = %d, want 40", rep.Score)
	}
	if rep.Alternative == nil || rep.Alternative.ID != "p6" {
		t.Errorf("alternative = %+v, want p6", rep.Alternative)
	}
}

func TestRunAnalyzeInputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mod  func(f *analyzeFlags)
	}{
		{"unknown product", []string{"p99"}, func(f *analyzeFlags) {}},
		{"no selector", nil, func(f *analyzeFlags) {}},
		{"two selectors", []string{"p1"}, func(f *analyzeFlags) { f.all = true }},
		{"bad format", []string{"p1"}, func(f *analyzeFlags) { f.format = "xml" }},
		{"green fail-on", []string{"p1"}, func(f *analyzeFlags) { f.failOn = "green" }},
		{"bad fail-on", []string{"p1"}, func(f *analyzeFlags) { f.failOn = "blue" }},
		{"unknown builtin", []string{"p1"}, func(f *analyzeFlags) { f.builtin = "nope" }},
		{"missing file", nil, func(f *analyzeFlags) { f.file = filepath.Join(t.TempDir(), "nope.json") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := defaultFlags()
			tt.mod(f)
			err := runAnalyze(tt.args, f, &bytes.Buffer{})
			if got := exitCode(err); got != 3 {
				t.Errorf("exit code = %d, want 3 (err: %v)", got, err)
			}
		})
	}
}

func TestRunAnalyzeFailOn(t *testing.T) {
	tests := []struct {
		id     string
		failOn string
		want   int
	}{
		{"p3", "yellow", 0},
		{"p4", "yellow", 2},
		{"p4", "red", 0},
		{"p1", "red", 2},
		{"p1", "RED", 2},
	}
	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.failOn, func(t *testing.T) {
			f := defaultFlags()
			f.failOn = tt.failOn
			err := runAnalyze([]string{tt.id}, f, &bytes.Buffer{})
			if got := exitCode(err); got != tt.want {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestRunProducts(t *testing.T) {
	var buf bytes.Buffer
	if err := runProducts("", "sample", &buf); err != nil {
		t.Fatalf("runProducts: %v", err)
	}
	var header, rows []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.HasPrefix(line, "# ") {
			header = append(header, line)
			continue
		}
		rows = append(rows, line)
	}
	if len(header) == 0 || header[0] != "# sample (6 products)" {
		t.Errorf("header = %q", header)
	}
	if len(header) < 2 || !strings.Contains(header[1], "Demonstration catalog") {
		t.Errorf("header should carry the catalog description: %q", header)
	}
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want column header + 6:\n%s", len(rows), buf.String())
	}
	if !strings.HasPrefix(rows[0], "ID") {
		t.Errorf("column header = %q", rows[0])
	}
	if !strings.Contains(rows[4], "filter_coffee") {
		t.Errorf("p4 row = %q, want its declared alternative", rows[4])
	}
	if !strings.HasSuffix(rows[3], "-") {
		t.Errorf("p3 row = %q, want - for no alternative", rows[3])
	}
}

func TestRunThresholds(t *testing.T) {
	var buf bytes.Buffer
	if err := runThresholds(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"sugar:", "high: 10", "moderate: 5", "additives_high: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("thresholds output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"analyze", "products", "thresholds", "serve"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}
