package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"podpost/internal/pipeline"
	"podpost/internal/validate"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var posted bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate the record whenever its file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory, not the file: atomic saves replace the
			// file, which drops a direct file watch.
			if err := watcher.Add(proj.Dir()); err != nil {
				return fmt.Errorf("watch %s: %w", proj.Dir(), err)
			}

			mode := validate.ModeDraft
			if posted {
				mode = validate.ModePosted
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return ctx.withPublisher(func(pub *pipeline.Publisher) error {
				check := func() {
					violations, err := pub.Validate(proj, mode)
					if err != nil {
						fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
						return
					}
					printGateReport(cmd, mode, violations)
				}
				check()

				for {
					select {
					case <-runCtx.Done():
						return nil
					case event, ok := <-watcher.Events:
						if !ok {
							return nil
						}
						if event.Name != proj.MetadataPath() {
							continue
						}
						if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
							continue
						}
						check()
					case err, ok := <-watcher.Errors:
						if !ok {
							return nil
						}
						fmt.Fprintf(cmd.OutOrStdout(), "watch error: %v\n", err)
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&posted, "posted", false, "Run the post-publish gate")
	return cmd
}
