package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/labelcritic/internal/catalog"
	"github.com/dshills/labelcritic/internal/logging"
	"github.com/dshills/labelcritic/internal/nutrition"
	"github.com/dshills/labelcritic/internal/render"
)

type analyzeFlags struct {
	catalogPath string
	builtin     string
	file        string
	all         bool
	format      string
	out         string
	failOn      string
	verbose     bool
}

func newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [product-id]",
		Short: "Score a product and print its report",
		Long: `Score a catalog product by id, every product with --all, or a single
record read from --file. Better alternatives are looked up in the catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args, f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	addCatalogFlags(flags, &f.catalogPath, &f.builtin)
	flags.StringVar(&f.file, "file", "", "Score a single product record from a YAML or JSON file")
	flags.BoolVar(&f.all, "all", false, "Score every product in the catalog")
	flags.StringVar(&f.format, "format", "text", "Output format: json, md, or text")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit 2 if any product is at or above this light: yellow or red")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runAnalyze(args []string, f *analyzeFlags, stdout io.Writer) error {
	log, err := logging.CLI(f.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	switch f.format {
	case "json", "md", "text":
	default:
		return exitError(3, "unknown format: %s", f.format)
	}
	var failLight nutrition.TrafficLight
	if f.failOn != "" {
		failLight = nutrition.TrafficLight(strings.ToLower(f.failOn))
		if !failLight.Valid() || failLight == nutrition.LightGreen {
			return exitError(3, "unknown --fail-on level: %s (want yellow or red)", f.failOn)
		}
	}

	selectors := 0
	if len(args) == 1 {
		selectors++
	}
	if f.all {
		selectors++
	}
	if f.file != "" {
		selectors++
	}
	if selectors != 1 {
		return exitError(3, "give exactly one of a product id, --all, or --file")
	}

	// 1. Load catalog
	log.Debug("loading catalog", zap.String("path", f.catalogPath), zap.String("builtin", f.builtin))
	cat, err := catalog.Open(f.catalogPath, f.builtin)
	if err != nil {
		return exitError(3, "failed to load catalog: %v", err)
	}
	log.Debug("catalog loaded",
		zap.String("name", cat.Name),
		zap.Int("products", cat.Len()),
		zap.String("hash", cat.Hash))
	for _, id := range cat.Dangling() {
		log.Debug("alternative not in catalog", zap.String("product", id))
	}

	// 2. Select products
	var products []nutrition.Product
	switch {
	case f.file != "":
		log.Debug("loading product record", zap.String("path", f.file))
		p, err := catalog.LoadProduct(f.file)
		if err != nil {
			return exitError(3, "failed to load product: %v", err)
		}
		products = append(products, p)
	case f.all:
		products = cat.Products()
	default:
		p, ok := cat.Get(args[0])
		if !ok {
			return exitError(3, "no product data for %q in catalog %s", args[0], cat.Name)
		}
		products = append(products, p)
	}

	// 3. Score
	reports := make([]render.Report, 0, len(products))
	worst := nutrition.LightGreen
	for _, p := range products {
		res := nutrition.Analyze(p, cat)
		log.Debug("scored",
			zap.String("product", p.ID),
			zap.Int("score", res.Score),
			zap.String("light", string(res.TrafficLight)),
			zap.Int("critical_flags", res.CriticalFlags))
		rep := render.NewReport(p, res)
		rep.Tool = "labelcritic"
		rep.Version = version
		rep.Source = &render.Source{Catalog: cat.Name, Hash: cat.Hash}
		reports = append(reports, rep)
		if res.TrafficLight.Level() > worst.Level() {
			worst = res.TrafficLight
		}
	}

	// 4. Output
	output, err := formatReports(reports, f.format, f.all)
	if err != nil {
		return err
	}
	if f.out != "" {
		log.Debug("writing output", zap.String("path", f.out))
		if err := os.WriteFile(f.out, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	// 5. Exit code based on --fail-on
	if failLight != "" && worst.Level() >= failLight.Level() {
		return exitError(2, "traffic light %s meets fail threshold %s", worst, failLight)
	}
	return nil
}

func formatReports(reports []render.Report, format string, asList bool) (string, error) {
	switch format {
	case "json":
		var v any = reports
		if !asList {
			v = reports[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal output: %w", err)
		}
		return string(data) + "\n", nil
	case "md":
		parts := make([]string, 0, len(reports))
		for i := range reports {
			parts = append(parts, render.Markdown(&reports[i]))
		}
		return strings.Join(parts, "---\n\n"), nil
	default:
		parts := make([]string, 0, len(reports))
		for i := range reports {
			parts = append(parts, render.Text(&reports[i]))
		}
		return strings.Join(parts, "\n"), nil
	}
}
