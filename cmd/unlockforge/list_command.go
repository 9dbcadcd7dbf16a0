package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var unlockedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the loaded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := ctx.runner()
			if err != nil {
				return err
			}
			build, err := runner.Build(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]table.Row, 0, len(build.Items))
			for _, item := range build.Items {
				unlocked := build.Unlocked.Contains(item.ID)
				if unlockedOnly && !unlocked {
					continue
				}
				rows = append(rows, table.Row{
					item.ID,
					item.Points.String(),
					item.Expansion,
					item.XWS,
					item.Image,
					yesNo(unlocked),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderItemTable(rows))
			fmt.Fprintf(out, "%d items (%d shown, %d skipped records, %d duplicates)\n",
				len(build.Items), len(build.Shown), build.Stats.Misses, build.Stats.Duplicates)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unlockedOnly, "unlocked", false, "Only list unlocked items")
	return cmd
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
