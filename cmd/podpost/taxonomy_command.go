package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podpost/internal/taxonomy"
)

func newTaxonomyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Inspect the fandom taxonomy",
	}
	cmd.AddCommand(newTaxonomyListCommand(ctx))
	return cmd
}

func newTaxonomyListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Dump the taxonomy as one joined table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := taxonomy.Open(cfg.Paths.TaxonomyDB)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Taxonomy is empty.")
				return nil
			}

			rows := make([][]string, len(entries))
			for i, entry := range entries {
				rows[i] = []string{entry.RawTags, entry.PreferredTags, entry.GroupTag, entry.Code, entry.Category}
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Raw", "Preferred", "Group", "Code", "Category"}, rows))
			return nil
		},
	}
}
