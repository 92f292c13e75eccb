package convert

import (
	"regexp"
	"strings"

	"github.com/runnerr0/dayreport/internal/record"
)

// weekdayTokenRe matches the day-of-week token in "2024-03-01 Fri 09:15:00".
var weekdayTokenRe = regexp.MustCompile(`\s[A-Za-z]{3}\s`)

// MessageConverter handles Slack message exports.
type MessageConverter struct {
	base
}

// NewMessageConverter creates a MessageConverter.
func NewMessageConverter(opts ...Option) *MessageConverter {
	return &MessageConverter{base: newBase(opts)}
}

func (c *MessageConverter) Name() string { return "slack messages" }

func (c *MessageConverter) ExpectedHeaders() []string {
	return []string{"datetime", "channelName", "sender", "message"}
}

func (c *MessageConverter) Convert(rows []Row) []record.Record {
	records := make([]record.Record, 0, len(rows))

	for _, row := range rows {
		message := strings.TrimSpace(row["message"])
		if message == "" {
			continue
		}

		epoch, err := c.parseEpoch(removeWeekday(row["datetime"]))
		if err != nil {
			c.logger.Error("skipping message row with invalid datetime", "datetime", row["datetime"], "error", err)
			continue
		}

		records = append(records, record.Message{Epoch: epoch, Channel: row["channelName"], Message: message})
	}

	return records
}

// removeWeekday drops the first weekday token so the remainder is a plain
// "YYYY-MM-DD HH:MM:SS" value.
func removeWeekday(s string) string {
	loc := weekdayTokenRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + " " + s[loc[1]:]
}
