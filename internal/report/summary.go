package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/runnerr0/dayreport/internal/daybucket"
	"github.com/runnerr0/dayreport/internal/record"
)

// SummaryOptions controls the run summary table.
type SummaryOptions struct {
	// Outputs maps a day key to the file written for it. Days without an
	// entry are shown as skipped.
	Outputs map[string]string
	// Plain selects an ASCII style for non-terminal output.
	Plain bool
}

// WriteSummary writes a table with per-source record counts for each day.
func WriteSummary(w io.Writer, days []daybucket.Day, opts SummaryOptions) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if opts.Plain {
		tw.SetStyle(table.StyleDefault)
	} else {
		tw.SetStyle(table.StyleRounded)
	}
	tw.Style().Options.SeparateHeader = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 60},
	})

	tw.AppendHeader(table.Row{"Day", "Browser", "Slack", "Calendar", "Total", "Output"})

	var totals [3]int
	for _, day := range days {
		counts := countKinds(day.Records)
		for i := range totals {
			totals[i] += counts[i]
		}

		output, ok := opts.Outputs[day.Key]
		if !ok {
			output = "(skipped)"
		}
		tw.AppendRow(table.Row{day.Key, counts[0], counts[1], counts[2], len(day.Records), output})
	}

	if len(days) == 0 {
		tw.AppendRow(table.Row{"-", 0, 0, 0, 0, "(no records)"})
	}

	tw.AppendFooter(table.Row{"Total", totals[0], totals[1], totals[2], totals[0] + totals[1] + totals[2], ""})

	_ = tw.Render()
}

func countKinds(records []record.Record) [3]int {
	var c [3]int
	for _, rec := range records {
		switch rec.Kind() {
		case record.KindBrowser:
			c[0]++
		case record.KindMessage:
			c[1]++
		case record.KindCalendar:
			c[2]++
		}
	}
	return c
}
