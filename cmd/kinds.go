package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wasilva/rendimento-code-generator/internal/gitops"
	"github.com/wasilva/rendimento-code-generator/internal/workitem"
	"github.com/wasilva/rendimento-code-generator/pkg/models"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List work item kinds and their processing strategies",
	Run: func(cmd *cobra.Command, args []string) {
		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.AppendHeader(table.Row{"KIND", "STRATEGY", "BRANCH PREFIX", "SUPPORTED"})
		for _, kind := range models.KnownKinds() {
			prefix := gitops.BranchPrefix(kind)
			if strategy, err := workitem.Resolve(kind); err == nil {
				tw.AppendRow(table.Row{string(kind), strategy.Name, prefix, "yes"})
			} else {
				tw.AppendRow(table.Row{string(kind), "", prefix, "no"})
			}
		}
		tw.Render()
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
