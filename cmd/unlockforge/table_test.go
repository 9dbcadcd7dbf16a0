package main

import (
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

func TestRenderItemTableRightAlignsNumbers(t *testing.T) {
	out := renderItemTable([]table.Row{
		{7, "2", "Core", "a", "img/7.png", "yes"},
		{123, "10", "Core", "b", "img/123.png", "no"},
	})

	require.Contains(t, out, "│ ID  │ POINTS │")
	require.Contains(t, out, "│   7 │      2 │")
	require.Contains(t, out, "│ 123 │     10 │")
}
