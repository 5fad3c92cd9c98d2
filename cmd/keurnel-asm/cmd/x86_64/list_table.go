package x86_64

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	itable "github.com/keurnel/x86enc/internal/encoder/table"
)

var ListTableCmd = &cobra.Command{
	Use:     "table",
	GroupID: "file-operations",
	Short:   "List every registered mnemonic and its form count.",
	Long:    `List every mnemonic registered in internal/encoder/table, sorted alphabetically, with its form count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups := itable.All()
		sort.Slice(groups, func(i, j int) bool { return groups[i].Mnemonic < groups[j].Mnemonic })

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.AppendHeader(table.Row{"Mnemonic", "Forms"})
		for _, g := range groups {
			tw.AppendRow(table.Row{g.Mnemonic, len(g.Forms)})
		}
		tw.Render()
		return nil
	},
}
