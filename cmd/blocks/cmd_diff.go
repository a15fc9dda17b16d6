package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/blocks/format"
)

func newDiffCmd(a *app) *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show the patch that turns the forest of one file into another's",
		Long: `Load <old> as a live forest, reconcile the forest of <new> into it and
print the operations that were applied.

With --tree the patched forest is printed afterwards.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := a.loadForest(args[0])
			if err != nil {
				return err
			}
			next, err := a.parseFile(args[1])
			if err != nil {
				return err
			}
			p, err := live.Reconcile(next)
			if err != nil {
				return err
			}

			opts := format.Options{Color: a.color()}
			if err := format.NewPatchEncoder(cmd.OutOrStdout(), opts).Encode(p); err != nil {
				return err
			}
			if showTree {
				return format.NewTreeEncoder(cmd.OutOrStdout(), opts).Encode(live.Roots())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTree, "tree", false, "print the patched forest")

	return cmd
}
