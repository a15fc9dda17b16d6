package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	var ancestors bool

	cmd := &cobra.Command{
		Use:   "describe <file> <line:column>",
		Short: "Describe the innermost node at a position, as a screen reader would hear it",
		Long: `Describe the innermost node holding the given 0-based position.

The describe-depth setting controls how many levels of children the
description mentions. With --ancestors every enclosing node is described
too, innermost first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			f, err := a.loadForest(args[0])
			if err != nil {
				return err
			}
			depth := a.config.GetInt("describe-depth")

			n := f.Containing(pos)
			if n == nil {
				return fmt.Errorf("%s: no node at %s", args[0], pos)
			}
			for ; n != nil; n = f.ParentOf(n) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", n.ID(), n.Span(), n.Describe(depth))
				if !ancestors {
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&ancestors, "ancestors", "a", false, "describe enclosing nodes as well")

	return cmd
}
