package convert

import (
	"fmt"
	"strings"

	"github.com/runnerr0/dayreport/internal/record"
)

// UnrecognizedHeaderError is returned when no converter accepts a header row.
type UnrecognizedHeaderError struct {
	Headers []string
}

func (e *UnrecognizedHeaderError) Error() string {
	return fmt.Sprintf("unrecognized CSV header: %s", strings.Join(e.Headers, ", "))
}

// Result is the outcome of converting one CSV file.
type Result struct {
	Converter string
	Records   []record.Record
}

// Dispatcher picks a converter for a CSV file from its header row.
type Dispatcher struct {
	converters []Converter
}

// NewDispatcher creates a Dispatcher with the built-in converters in
// priority order: browser history, slack messages, calendar events.
func NewDispatcher(opts ...Option) *Dispatcher {
	return &Dispatcher{converters: []Converter{
		NewBrowserConverter(opts...),
		NewMessageConverter(opts...),
		NewCalendarConverter(opts...),
	}}
}

// NewDispatcherWith creates a Dispatcher over the given converters, tried in order.
func NewDispatcherWith(converters ...Converter) *Dispatcher {
	return &Dispatcher{converters: converters}
}

// Select returns the first converter whose expected headers are all present.
func (d *Dispatcher) Select(headers []string) (Converter, error) {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}

	for _, c := range d.converters {
		if hasAll(seen, c.ExpectedHeaders()) {
			return c, nil
		}
	}

	return nil, &UnrecognizedHeaderError{Headers: headers}
}

// Convert parses CSV text, selects a converter from its header and
// converts every row with it. A header row with no data rows is valid.
func (d *Dispatcher) Convert(data []byte) (Result, error) {
	headers, rows, err := ReadCSV(data)
	if err != nil {
		return Result{}, err
	}

	c, err := d.Select(headers)
	if err != nil {
		return Result{}, err
	}

	return Result{Converter: c.Name(), Records: c.Convert(rows)}, nil
}

func hasAll(seen map[string]bool, want []string) bool {
	for _, h := range want {
		if !seen[h] {
			return false
		}
	}
	return true
}
