package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podpost/internal/pipeline"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var massXpost bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Validate the record and write the posting drafts",
		Long: "Runs the draft gate, derives the podfic tags and title prefix, and " +
			"writes the posting form body and work text under the project's drafts " +
			"directory. With --mass-xpost the posted gate also runs and the " +
			"announcement is rendered and collected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}
			return ctx.withPublisher(func(pub *pipeline.Publisher) error {
				if _, err := pub.Draft(cmd.Context(), proj); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s\n",
					proj.DraftPath(pipeline.FormDraftFile), proj.DraftPath(pipeline.WorkTextDraftFile))

				if !massXpost {
					return nil
				}
				if _, err := pub.Promote(cmd.Context(), proj); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", proj.DraftPath(pipeline.AnnouncementDraftFile))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&massXpost, "mass-xpost", false, "Also render the announcement and collect it")
	return cmd
}
