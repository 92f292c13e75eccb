package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/dayreport/internal/record"
)

// BrowserConverter handles browser history exports.
type BrowserConverter struct {
	base
}

// NewBrowserConverter creates a BrowserConverter.
func NewBrowserConverter(opts ...Option) *BrowserConverter {
	return &BrowserConverter{base: newBase(opts)}
}

func (c *BrowserConverter) Name() string { return "browser history" }

func (c *BrowserConverter) ExpectedHeaders() []string {
	return []string{"date", "time", "title", "url", "transition"}
}

// Convert drops reloads and untitled visits, cleans Notion titles and
// canonicalizes URLs. Rows with an unparseable date, time or URL are
// logged and skipped.
func (c *BrowserConverter) Convert(rows []Row) []record.Record {
	records := make([]record.Record, 0, len(rows))

	for _, row := range rows {
		if row["transition"] == "reload" {
			continue
		}

		title := strings.TrimSpace(row["title"])
		if title == "" {
			continue
		}

		rawURL := strings.TrimSpace(row["url"])
		if isNotionHost(rawURL) {
			title = stripNotificationCount(title)
		}

		u, err := canonicalURL(rawURL)
		if err != nil {
			c.logger.Error("skipping browser row with invalid url", "url", rawURL, "error", err)
			continue
		}

		epoch, err := c.parseDateTime(row["date"], row["time"])
		if err != nil {
			c.logger.Error("skipping browser row with invalid date format",
				"date", row["date"], "time", row["time"], "error", err)
			continue
		}

		records = append(records, record.Browser{Epoch: epoch, Title: title, URL: u})
	}

	return records
}

// parseDateTime composes a US-order "M/D/YYYY" date and an "H:MM:SS" time
// into a local wall-clock epoch.
func (c *BrowserConverter) parseDateTime(date, clock string) (int64, error) {
	d, err := splitInts(date, "/", 3)
	if err != nil {
		return 0, fmt.Errorf("date %q: %w", date, err)
	}
	t, err := splitInts(clock, ":", 3)
	if err != nil {
		return 0, fmt.Errorf("time %q: %w", clock, err)
	}

	month, day, year := d[0], d[1], d[2]
	hour, minute, second := t[0], t[1], t[2]
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, c.loc).UnixMilli(), nil
}

func splitInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d components separated by %q", n, sep)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
