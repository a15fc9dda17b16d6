package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/blocks/workspace"
)

func newLSPCmd(a *app) *cobra.Command {
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []workspace.ServerOption{
				workspace.WithDescribeDepth(a.config.GetInt("describe-depth")),
			}
			if watch > 0 {
				opts = append(opts, workspace.WithWatcher(watch))
			}
			server := workspace.NewLSPServer(version, a.registry, opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().DurationVar(&watch, "watch", 0, "poll the workspace for outside changes at this interval")

	return cmd
}
