package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/blocks/ast"
	"github.com/dhamidi/blocks/workspace"
)

func newNavCmd(a *app) *cobra.Command {
	var kinds []string

	cmd := &cobra.Command{
		Use:   "nav <file> <id> <next|prev|parent|child|closest>",
		Short: "Move from one node to another the way keyboard navigation does",
		Long: `Print the node reached by moving from the node with the given id.

Ids are comma separated child indexes, e.g. "0,2,1". With --kind, next and
prev skip every node whose kind is not listed. The closest move resolves an
id that no longer exists to the node that takes over its selection.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			move, err := workspace.ParseMove(args[2])
			if err != nil {
				return err
			}
			var want []ast.Kind
			for _, name := range kinds {
				k, ok := ast.ParseKind(name)
				if !ok {
					return &ast.KindError{Name: name}
				}
				want = append(want, k)
			}

			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			w := workspace.New(".", a.registry)
			if _, err := w.UpdateFile(path, content); err != nil {
				return err
			}

			target, ok := w.Navigate(path, args[1], move, want...)
			if !ok {
				return fmt.Errorf("no node %s of %s", move, args[1])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", target.ID, target.Kind, target.Span, target.Description)
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "kinds to stop at, e.g. Expression,FunctionDefinition")

	return cmd
}
