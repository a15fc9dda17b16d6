package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/blocks/format"
)

func newFmtCmd(a *app) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a file in canonical form, keeping comments",
		Long: `Print a file in canonical form to stdout: one top-level form per line,
single spaces between elements.

Comments attached inside a form are printed above it.

Use -w to overwrite the file in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := a.parseFile(args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := format.NewSourceEncoder(&buf).Encode(nodes); err != nil {
				return fmt.Errorf("format: %w", err)
			}
			if overwrite {
				return os.WriteFile(args[0], buf.Bytes(), 0644)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
