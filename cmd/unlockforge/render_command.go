package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Fetch the catalog and write the unlocked items page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, ctx)
		},
	}
}

func runRender(cmd *cobra.Command, ctx *commandContext) error {
	runner, err := ctx.runner()
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "HTML page generated at %s (%d items, %s)\n",
		result.OutputPath, len(result.Build.Shown), humanize.Bytes(uint64(result.Bytes)))
	if len(result.Added) > 0 {
		fmt.Fprintf(out, "Newly unlocked: %s\n", joinIDs(result.Added))
	}
	return nil
}
