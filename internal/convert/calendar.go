package convert

import (
	"github.com/runnerr0/dayreport/internal/record"
)

// CalendarConverter handles Google Calendar event exports.
type CalendarConverter struct {
	base
}

// NewCalendarConverter creates a CalendarConverter.
func NewCalendarConverter(opts ...Option) *CalendarConverter {
	return &CalendarConverter{base: newBase(opts)}
}

func (c *CalendarConverter) Name() string { return "calendar events" }

func (c *CalendarConverter) ExpectedHeaders() []string {
	return []string{"startDatetime", "endDatetime", "type", "title", "calendarName", "status", "location"}
}

// Convert keeps accepted events only. Duration is end minus start and is
// not corrected when the export has them reversed.
func (c *CalendarConverter) Convert(rows []Row) []record.Record {
	records := make([]record.Record, 0, len(rows))

	for _, row := range rows {
		if row["status"] != "accepted" {
			continue
		}

		start, err := c.parseEpoch(row["startDatetime"])
		if err != nil {
			c.logger.Error("skipping calendar row with invalid date format",
				"start", row["startDatetime"], "end", row["endDatetime"], "error", err)
			continue
		}
		end, err := c.parseEpoch(row["endDatetime"])
		if err != nil {
			c.logger.Error("skipping calendar row with invalid date format",
				"start", row["startDatetime"], "end", row["endDatetime"], "error", err)
			continue
		}

		records = append(records, record.Calendar{
			Epoch:        start,
			Duration:     end - start,
			Title:        row["title"],
			CalendarName: row["calendarName"],
		})
	}

	return records
}
