package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/dshills/labelcritic/internal/catalog"
	"github.com/dshills/labelcritic/internal/nutrition"
)

func addCatalogFlags(flags *pflag.FlagSet, path, builtin *string) {
	flags.StringVar(path, "catalog", "", "Product catalog file (YAML or JSON)")
	flags.StringVar(builtin, "builtin", "sample", "Built-in catalog name, used when --catalog is empty")
}

func newProductsCmd() *cobra.Command {
	var path, builtin string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(path, builtin, cmd.OutOrStdout())
		},
	}
	addCatalogFlags(cmd.Flags(), &path, &builtin)
	return cmd
}

func runProducts(path, builtin string, w io.Writer) error {
	cat, err := catalog.Open(path, builtin)
	if err != nil {
		return exitError(3, "failed to load catalog: %v", err)
	}
	fmt.Fprintf(w, "# %s (%d products)\n", cat.Name, cat.Len())
	if cat.Description != "" {
		for _, line := range strings.Split(cat.Description, "\n") {
			fmt.Fprintf(w, "# %s\n", line)
		}
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tALTERNATIVE")
	for _, p := range cat.Products() {
		alt := p.AlternativeID
		if alt == "" {
			alt = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, alt)
	}
	return tw.Flush()
}

func newThresholdsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds",
		Short: "Print the threshold table used for scoring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThresholds(cmd.OutOrStdout())
		},
	}
}

func runThresholds(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nutrition.DefaultThresholds()); err != nil {
		return fmt.Errorf("failed to encode thresholds: %w", err)
	}
	return enc.Close()
}
