package cli

import (
	"cmp"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/matzehuels/timelanes/pkg/timeline"
)

// renderRows prints the rows of l ordered top to bottom, then by start.
func renderRows(w io.Writer, l timeline.Layout) {
	rows := slices.Clone(l.Rows)
	slices.SortStableFunc(rows, func(a, b timeline.Row) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Y", "Category", "Lane", "ID", "Start", "End", "Title"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Y, r.Category, r.Lane, r.ID, r.Start, r.End, r.Title})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "height", l.Height})
	t.Render()
}
