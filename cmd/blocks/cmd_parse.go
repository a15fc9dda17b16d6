package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/blocks/format"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump its block forest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForest(args[0])
			if err != nil {
				return err
			}
			enc, err := format.New(a.config.GetString("format"), cmd.OutOrStdout(), format.Options{Color: a.color()})
			if err != nil {
				return err
			}
			if err := enc.Encode(f.Roots()); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "tree",
		"output format ("+strings.Join(format.Names(), ", ")+")")

	return cmd
}
