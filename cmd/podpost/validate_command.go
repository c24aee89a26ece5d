package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podpost/internal/pipeline"
	"podpost/internal/validate"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var posted bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the validation gate and report violations",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}
			mode := validate.ModeDraft
			if posted {
				mode = validate.ModePosted
			}
			return ctx.withPublisher(func(pub *pipeline.Publisher) error {
				violations, err := pub.Validate(proj, mode)
				if err != nil {
					return err
				}
				printGateReport(cmd, mode, violations)
				if len(violations) > 0 {
					return fmt.Errorf("%d violation(s)", len(violations))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&posted, "posted", false, "Run the post-publish gate")
	return cmd
}

func printGateReport(cmd *cobra.Command, mode validate.Mode, violations []error) {
	out := cmd.OutOrStdout()
	if len(violations) == 0 {
		fmt.Fprintf(out, "Record passes the %s gate.\n", mode)
		return
	}
	rows := make([][]string, len(violations))
	for i, violation := range violations {
		rows[i] = []string{fmt.Sprintf("%d", i+1), violation.Error()}
	}
	fmt.Fprintln(out, renderTable([]string{"#", "Violation"}, rows))
}
