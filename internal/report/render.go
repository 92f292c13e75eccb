// Package report renders report days as Markdown documents and summarizes
// a run as a table.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/dayreport/internal/record"
)

const indent = "    "

// Render returns the document for one report day. The output depends only on
// its arguments; records are written in the order given.
func Render(day string, records []record.Record, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", day)

	for _, rec := range records {
		clock := record.Time(rec, loc).Format("15:04")

		switch r := rec.(type) {
		case record.Browser:
			fmt.Fprintf(&b, "- %s [%s] %s\n", clock, r.Tag(), r.Title)
			b.WriteString(indent + r.URL + "\n")
		case record.Message:
			fmt.Fprintf(&b, "- %s [%s] #%s\n", clock, r.Tag(), r.Channel)
			for _, line := range splitLines(r.Message) {
				b.WriteString(indent + line + "\n")
			}
		case record.Calendar:
			fmt.Fprintf(&b, "- %s [%s] %s %s\n", clock, r.Tag(), FormatDuration(r.Duration), r.Title)
		default:
			fmt.Fprintf(&b, "- %s [%s] %s\n", clock, rec.Tag(), rec.DayKey())
		}
	}

	return b.String()
}

// FormatDuration formats milliseconds as "1h 30m", "2h" or "45m". Zero and
// negative durations are "0m".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0m"
	}
	d := time.Duration(ms) * time.Millisecond
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)

	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
