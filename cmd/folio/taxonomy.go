package main

import (
	"fmt"
	"strings"

	"github.com/rpggio/folio/internal/config"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/spf13/cobra"
)

// loadTaxonomy returns the configured taxonomy without opening the database.
func loadTaxonomy() (*taxonomy.Taxonomy, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if cfg.Taxonomy.Path == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(cfg.Taxonomy.Path)
}

func taxonomyCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the canonical tags by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := loadTaxonomy()
			if err != nil {
				return err
			}

			var only taxonomy.Category
			if category != "" {
				if only, err = taxonomy.ParseCategory(category); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, g := range tax.Groups() {
				if only != "" && g.Category != only {
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", g.Category, strings.Join(g.Tags, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only print this category")
	return cmd
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize TAG...",
		Short: "Print the canonical form and category of each tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := loadTaxonomy()
			if err != nil {
				return err
			}
			for _, raw := range args {
				canonical := tax.Normalize(raw)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", raw, canonical, tax.Category(canonical))
			}
			return nil
		},
	}
}
