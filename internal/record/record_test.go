package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKeyPerVariant(t *testing.T) {
	tests := []struct {
		name   string
		rec    Record
		expect string
	}{
		{"browser uses url", Browser{Epoch: 1, Title: "Page", URL: "https://example.com/a"}, "https://example.com/a"},
		{"message uses text", Message{Epoch: 1, Channel: "general", Message: "hello"}, "hello"},
		{"calendar uses title", Calendar{Epoch: 1, Duration: 60000, Title: "Standup", CalendarName: "work"}, "Standup"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.rec.DayKey())
		})
	}
}

func TestKindAndTag(t *testing.T) {
	assert.Equal(t, KindBrowser, Browser{}.Kind())
	assert.Equal(t, KindMessage, Message{}.Kind())
	assert.Equal(t, KindCalendar, Calendar{}.Kind())

	assert.Equal(t, "Browser", Browser{}.Tag())
	assert.Equal(t, "Slack", Message{}.Tag())
	assert.Equal(t, "Calendar", Calendar{}.Tag())
}

func TestDumpIsStable(t *testing.T) {
	epoch := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC).UnixMilli()

	b := Browser{Epoch: epoch, Title: "Page", URL: "https://example.com"}
	assert.Equal(t,
		`Browser{epoch=1709280000000 (2024-03-01T08:00:00.000Z), title="Page", url="https://example.com"}`,
		b.Dump())
	assert.Equal(t, b.Dump(), b.Dump())

	m := Message{Epoch: epoch, Channel: "dev", Message: "line1\nline2"}
	assert.Equal(t,
		`Message{epoch=1709280000000 (2024-03-01T08:00:00.000Z), channel="dev", message="line1\nline2"}`,
		m.Dump())

	c := Calendar{Epoch: epoch, Duration: 1800000, Title: "1:1", CalendarName: "work"}
	assert.Equal(t,
		`Calendar{epoch=1709280000000 (2024-03-01T08:00:00.000Z), duration=1800000ms, title="1:1", calendar="work"}`,
		c.Dump())
}

func TestTimeUsesLocation(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	epoch := time.Date(2024, 3, 1, 8, 0, 0, 0, jst).UnixMilli()

	got := Time(Browser{Epoch: epoch}, jst)
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, jst, got.Location())
}
