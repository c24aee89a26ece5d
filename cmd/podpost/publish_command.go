package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"podpost/internal/metadata"
	"podpost/internal/pipeline"
)

func newPublishCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Run the full publish flow",
		Long: "Drafts the post, stamps the posting date, runs the posted gate, and " +
			"renders the announcement. The published work link must be recorded " +
			"(`podpost set \"Podfic Link\" <url>`) between drafting and announcing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}
			return ctx.withPublisher(func(pub *pipeline.Publisher) error {
				if _, err := pub.Draft(cmd.Context(), proj); err != nil {
					return err
				}

				rec, err := pub.LoadRecord(proj)
				if err != nil {
					return err
				}
				if rec.Get(metadata.FieldPodficLink).IsPlaceholder() {
					return fmt.Errorf("drafts written; record the published link with "+
						"`podpost set %q <url>` and re-run publish", metadata.FieldPodficLink)
				}
				if rec.Get(metadata.FieldPostingDate).IsPlaceholder() {
					if err := rec.StampPostingDate(time.Now()); err != nil {
						return err
					}
				}

				if _, err := pub.Promote(cmd.Context(), proj); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s; announcement at %s\n",
					proj.ID, proj.DraftPath(pipeline.AnnouncementDraftFile))
				return nil
			})
		},
	}
}
