// Package record defines the normalized activity records produced by the
// CSV converters and consumed by the exclusion, bucketing and report stages.
package record

import (
	"fmt"
	"time"
)

// Kind identifies which source a record came from.
type Kind string

const (
	KindBrowser  Kind = "browser"
	KindMessage  Kind = "message"
	KindCalendar Kind = "calendar"
)

// Record is one normalized activity entry. The set of implementations is
// closed: Browser, Message and Calendar.
type Record interface {
	// EpochMillis is the record's timestamp in milliseconds since the Unix epoch.
	EpochMillis() int64
	Kind() Kind
	// Tag is the short source label shown in reports.
	Tag() string
	// Dump returns a stable single-line debug representation.
	Dump() string
	// DayKey is the identity used to drop duplicates within one report day.
	DayKey() string

	sealed()
}

// Browser is a page visit from a browser history export.
type Browser struct {
	Epoch int64
	Title string
	URL   string
}

// Message is a chat message from a Slack export.
type Message struct {
	Epoch   int64
	Channel string
	Message string
}

// Calendar is an accepted calendar event. Duration is in milliseconds and
// is end minus start as exported, so malformed input may make it negative.
type Calendar struct {
	Epoch        int64
	Duration     int64
	Title        string
	CalendarName string
}

func (r Browser) EpochMillis() int64 { return r.Epoch }
func (r Browser) Kind() Kind         { return KindBrowser }
func (r Browser) Tag() string        { return "Browser" }
func (r Browser) DayKey() string     { return r.URL }
func (r Browser) sealed()            {}

func (r Browser) Dump() string {
	return fmt.Sprintf("Browser{epoch=%d (%s), title=%q, url=%q}", r.Epoch, iso(r.Epoch), r.Title, r.URL)
}

func (r Message) EpochMillis() int64 { return r.Epoch }
func (r Message) Kind() Kind         { return KindMessage }
func (r Message) Tag() string        { return "Slack" }
func (r Message) DayKey() string     { return r.Message }
func (r Message) sealed()            {}

func (r Message) Dump() string {
	return fmt.Sprintf("Message{epoch=%d (%s), channel=%q, message=%q}", r.Epoch, iso(r.Epoch), r.Channel, r.Message)
}

func (r Calendar) EpochMillis() int64 { return r.Epoch }
func (r Calendar) Kind() Kind         { return KindCalendar }
func (r Calendar) Tag() string        { return "Calendar" }
func (r Calendar) DayKey() string     { return r.Title }
func (r Calendar) sealed()            {}

func (r Calendar) Dump() string {
	return fmt.Sprintf("Calendar{epoch=%d (%s), duration=%dms, title=%q, calendar=%q}",
		r.Epoch, iso(r.Epoch), r.Duration, r.Title, r.CalendarName)
}

// Time converts a record's epoch to a time in loc.
func Time(r Record, loc *time.Location) time.Time {
	return time.UnixMilli(r.EpochMillis()).In(loc)
}

// iso is UTC so Dump output does not depend on the machine's zone.
func iso(epoch int64) string {
	return time.UnixMilli(epoch).UTC().Format("2006-01-02T15:04:05.000Z")
}
