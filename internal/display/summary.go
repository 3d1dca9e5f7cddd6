package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SummaryRow is one processed file in the end-of-run table.
type SummaryRow struct {
	Name   string
	Action string // "compressed", "kept", "converted", "failed", "dry-run"
	Before int64
	After  int64 // Zero when no output was produced.
}

// SummaryTable renders rows plus a totals footer. Totals only count rows
// that produced output, so failed files don't skew the saved figure.
func SummaryTable(rows []SummaryRow) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Action", "Before", "After", "Saved"})

	var before, after int64
	for _, r := range rows {
		afterCell, savedCell := "-", "-"
		if r.After > 0 {
			afterCell = FormatSize(r.After)
			savedCell = fmt.Sprintf("%d%%", SavedPercent(r.Before, r.After))
			before += r.Before
			after += r.After
		}
		tw.AppendRow(table.Row{r.Name, r.Action, FormatSize(r.Before), afterCell, savedCell})
	}

	total := "-"
	if before > 0 {
		total = fmt.Sprintf("%d%%", SavedPercent(before, after))
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d files", len(rows)),
		"",
		humanize.Comma(before) + " B",
		humanize.Comma(after) + " B",
		total,
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
