package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var itemColumns = table.Row{"ID", "Points", "Expansion", "XWS", "Image", "Unlocked"}

// renderItemTable lays out catalog rows with the numeric columns right aligned.
func renderItemTable(rows []table.Row) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(itemColumns)
	tw.AppendRows(rows)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "ID", Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Name: "Points", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
