// Package daybucket groups records into report days. A report day starts at
// 07:00 local time, so activity after midnight counts toward the previous
// workday.
package daybucket

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/dayreport/internal/record"
)

// Offset is subtracted from a record's time before taking its calendar date.
const Offset = 7 * time.Hour

const dateLayout = "2006-01-02"

// ErrMissingStartDate is returned when no start date is given for a run.
var ErrMissingStartDate = errors.New("start date is required (YYYY-MM-DD)")

// Key returns the YYYY-MM-DD report day for an epoch in milliseconds.
// The offset is absolute time while dayStart uses 07:00 wall clock, so the
// two differ by an hour on DST transition days. Change both or neither.
func Key(epoch int64, loc *time.Location) string {
	return time.UnixMilli(epoch).Add(-Offset).In(loc).Format(dateLayout)
}

// Day is one report day and its deduplicated records in ascending time order.
type Day struct {
	Key     string
	Records []record.Record
}

// BucketAndDedup groups records by report day. Within a day the first record
// seen for each DayKey wins and later ones are dropped, so the result
// depends on input order. Days are returned in ascending key order.
func BucketAndDedup(records []record.Record, loc *time.Location) []Day {
	type bucket struct {
		seen    map[string]struct{}
		records []record.Record
	}
	buckets := make(map[string]*bucket)

	for _, rec := range records {
		key := Key(rec.EpochMillis(), loc)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{seen: make(map[string]struct{})}
			buckets[key] = b
		}
		id := rec.DayKey()
		if _, dup := b.seen[id]; dup {
			continue
		}
		b.seen[id] = struct{}{}
		b.records = append(b.records, rec)
	}

	days := make([]Day, 0, len(buckets))
	for key, b := range buckets {
		sort.SliceStable(b.records, func(i, j int) bool {
			return b.records[i].EpochMillis() < b.records[j].EpochMillis()
		})
		days = append(days, Day{Key: key, Records: b.records})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Key < days[j].Key })
	return days
}

// Range bounds a run. Both ends are inclusive; a zero End leaves the range
// open.
type Range struct {
	Start time.Time
	End   time.Time
}

// RangeFromDates builds a Range from YYYY-MM-DD strings. Start is 07:00 on
// start; End is 06:59:59.999 on the day after end. end may be empty.
func RangeFromDates(start, end string, loc *time.Location) (Range, error) {
	if start == "" {
		return Range{}, ErrMissingStartDate
	}

	s, err := parseDate(start, loc)
	if err != nil {
		return Range{}, fmt.Errorf("start date: %w", err)
	}
	r := Range{Start: dayStart(s, 0, loc)}

	if end != "" {
		e, err := parseDate(end, loc)
		if err != nil {
			return Range{}, fmt.Errorf("end date: %w", err)
		}
		r.End = dayStart(e, 1, loc).Add(-time.Millisecond)
		if r.End.Before(r.Start) {
			return Range{}, fmt.Errorf("end date %s is before start date %s", end, start)
		}
	}
	return r, nil
}

// dayStart returns the start of the report day addDays after d.
func dayStart(d time.Time, addDays int, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day()+addDays, int(Offset/time.Hour), 0, 0, 0, loc)
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if strings.ContainsAny(s, "T:") {
		return time.Time{}, fmt.Errorf("%q should only contain a date (YYYY-MM-DD), not a time", s)
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return t, nil
}

// Contains reports whether epoch (milliseconds) falls inside the range.
func (r Range) Contains(epoch int64) bool {
	if epoch < r.Start.UnixMilli() {
		return false
	}
	return r.End.IsZero() || epoch <= r.End.UnixMilli()
}

// Filter returns the records inside the range, preserving order.
func (r Range) Filter(records []record.Record) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.EpochMillis()) {
			out = append(out, rec)
		}
	}
	return out
}

// String formats the range for log output.
func (r Range) String() string {
	const layout = "2006-01-02 15:04:05.000"
	if r.End.IsZero() {
		return r.Start.Format(layout) + " .. (open)"
	}
	return r.Start.Format(layout) + " .. " + r.End.Format(layout)
}
