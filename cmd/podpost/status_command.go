package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"podpost/internal/metadata"
	"podpost/internal/pipeline"
	"podpost/internal/validate"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the record and its gate status",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}
			return ctx.withPublisher(func(pub *pipeline.Publisher) error {
				rec, err := pub.LoadRecord(proj)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(metadata.Fields()))
				for _, field := range metadata.Fields() {
					value := rec.Get(field)
					state := "set"
					if value.IsPlaceholder() {
						state = "placeholder"
					} else if value.Len() == 0 {
						state = "empty"
					}
					rows = append(rows, []string{field, state, summarize(value)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "State", "Value"}, rows))

				for _, mode := range []validate.Mode{validate.ModeDraft, validate.ModePosted} {
					violations, err := pub.Validate(proj, mode)
					if err != nil {
						return err
					}
					verdict := "pass"
					if len(violations) > 0 {
						verdict = fmt.Sprintf("%d violation(s)", len(violations))
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s gate: %s\n", mode, verdict)
				}
				return nil
			})
		},
	}
}

const valuePreview = 60

func summarize(value metadata.Value) string {
	var text string
	switch value.Kind() {
	case metadata.KindList:
		text = strings.Join(value.List(), ", ")
	case metadata.KindPairs:
		names := make([]string, 0, value.Len())
		for _, pair := range value.Pairs() {
			names = append(names, pair.Name)
		}
		text = strings.Join(names, ", ")
	default:
		text = value.Scalar()
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > valuePreview {
		text = text[:valuePreview-1] + "…"
	}
	return text
}
