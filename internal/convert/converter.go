// Package convert turns source-specific CSV exports into normalized records.
//
// Each source format has a Converter that knows its expected headers and
// applies the source's own noise removal (reload visits, unaccepted events,
// empty messages) before a record ever reaches the exclusion stage.
package convert

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/runnerr0/dayreport/internal/record"
)

// Converter converts parsed CSV rows of one source format into records.
type Converter interface {
	Name() string
	ExpectedHeaders() []string
	Convert(rows []Row) []record.Record
}

// Option configures converters built by this package.
type Option func(*base)

// WithLocation sets the zone used for timestamps that carry no offset.
// Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(b *base) { b.loc = loc }
}

// WithLogger sets the logger used to report skipped rows.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) { b.logger = logger }
}

// base holds what every converter shares.
type base struct {
	loc    *time.Location
	logger *slog.Logger
}

func newBase(opts []Option) base {
	b := base{loc: time.Local, logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// parseEpoch parses a date string in any common layout. Values without an
// explicit offset are read in the converter's location.
func (b base) parseEpoch(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("empty date")
	}
	t, err := dateparse.ParseIn(s, b.loc)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}
