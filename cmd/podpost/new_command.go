package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"podpost/internal/fileutil"
	"podpost/internal/pipeline"
)

func newNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new [html files...]",
		Short: "Seed a project from downloaded parent-work HTML",
		Long: "Creates the project directory, copies the given HTML documents into it, " +
			"extracts the parent-work metadata, resolves the fandom tags, and writes " +
			"the initial metadata record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}

			for _, src := range args {
				dst := filepath.Join(proj.Dir(), filepath.Base(src))
				if err := fileutil.CopyFile(src, dst); err != nil {
					return fmt.Errorf("copy %s: %w", src, err)
				}
			}

			return ctx.withPublisher(func(pub *pipeline.Publisher) error {
				rec, err := pub.Seed(cmd.Context(), proj)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\nRecord: %s\n", proj.ID, rec.Path())
				return nil
			})
		},
	}
}
