package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"podpost/internal/metadata"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>...",
		Short: "Edit one metadata field",
		Long: "Writes a field through the record's single mutation entrypoint, which " +
			"re-persists the whole file. One value sets a scalar, several set a list. " +
			"Values of the form url|name set (URL, display name) pairs.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := ctx.project()
			if err != nil {
				return err
			}

			field, values := args[0], args[1:]
			if !metadata.IsField(field) {
				return fmt.Errorf("unknown field %q (see `podpost status` for the vocabulary)", field)
			}

			rec, err := metadata.Load(proj.MetadataPath(), ctx.seed())
			if err != nil {
				return err
			}
			value, err := parseValue(values)
			if err != nil {
				return err
			}
			if err := rec.Set(field, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q in %s\n", field, rec.Path())
			return nil
		},
	}
}

func parseValue(values []string) (metadata.Value, error) {
	pairs := make([]metadata.Link, 0, len(values))
	isPairs := false
	for _, value := range values {
		if url, name, ok := strings.Cut(value, "|"); ok {
			pairs = append(pairs, metadata.Link{URL: url, Name: name})
			isPairs = true
		}
	}
	if isPairs {
		if len(pairs) != len(values) {
			return metadata.Value{}, errors.New("mixing url|name pairs with plain values")
		}
		return metadata.Pairs(pairs...), nil
	}
	if len(values) == 1 {
		return metadata.Scalar(values[0]), nil
	}
	return metadata.List(values...), nil
}
