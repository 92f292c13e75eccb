// Package pipeline runs a report end to end: read the exports, convert,
// filter by range, apply exclusion rules, bucket into days and write one
// document per day.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/runnerr0/dayreport/internal/convert"
	"github.com/runnerr0/dayreport/internal/daybucket"
	"github.com/runnerr0/dayreport/internal/exclusion"
	"github.com/runnerr0/dayreport/internal/record"
	"github.com/runnerr0/dayreport/internal/secret"
)

// Services are the collaborators a run talks to. Zero fields get defaults
// from WithDefaults.
type Services struct {
	FS        afero.Fs
	Decrypter secret.Decrypter
	Encrypter secret.Encrypter
	Getenv    func(string) string
	// Confirm asks whether an existing report may be overwritten. A nil
	// Confirm declines.
	Confirm func(prompt string) bool
	// Stdout receives documents in dry-run mode.
	Stdout io.Writer
	Logger *slog.Logger
}

// WithDefaults fills zero fields with the OS file system, age, os.Getenv,
// a declining Confirm, os.Stdout and slog.Default().
func (s Services) WithDefaults() Services {
	if s.FS == nil {
		s.FS = afero.NewOsFs()
	}
	if s.Decrypter == nil {
		s.Decrypter = secret.Age{}
	}
	if s.Encrypter == nil {
		s.Encrypter = secret.Age{}
	}
	if s.Getenv == nil {
		s.Getenv = os.Getenv
	}
	if s.Confirm == nil {
		s.Confirm = func(string) bool { return false }
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}

// Options configure a single run.
type Options struct {
	DataDir       string
	OutputDir     string
	RulesFile     string
	PassphraseEnv string
	Extension     string
	Location      *time.Location
	Range         daybucket.Range
	// ReadConcurrency bounds concurrent file reads. Values below 1 mean 1.
	ReadConcurrency int
	Force           bool
	DryRun          bool
}

// Summary describes what a run did.
type Summary struct {
	Files      []FileResult
	Converted  int
	OutOfRange int
	Excluded   int
	Days       []daybucket.Day
	// Outputs maps day keys to the files written for them.
	Outputs map[string]string
}

// Run executes the whole pipeline. Configuration errors (passphrase, rules)
// and I/O errors end the run; a file that cannot be converted is logged and
// contributes no records.
func Run(ctx context.Context, svc Services, opts Options) (*Summary, error) {
	svc = svc.WithDefaults()
	if opts.Location == nil {
		opts.Location = time.Local
	}
	log := svc.Logger

	rules, err := LoadRules(svc, opts.RulesFile, opts.PassphraseEnv)
	if err != nil {
		return nil, err
	}
	log.Info("exclusion rules loaded", "file", opts.RulesFile)

	paths, err := ListInputs(svc.FS, opts.DataDir)
	if err != nil {
		return nil, err
	}
	inputs, err := ReadInputs(ctx, svc.FS, paths, opts.ReadConcurrency)
	if err != nil {
		return nil, err
	}

	dispatcher := convert.NewDispatcher(
		convert.WithLocation(opts.Location),
		convert.WithLogger(log),
	)
	records, files := ConvertInputs(inputs, dispatcher, log)

	sum := &Summary{Files: files, Converted: len(records), Outputs: make(map[string]string)}

	log.Info("filtering records by date range", "range", opts.Range.String())
	inRange := opts.Range.Filter(records)
	sum.OutOfRange = len(records) - len(inRange)

	kept := applyRules(exclusion.New(rules), inRange, log)
	sum.Excluded = len(inRange) - len(kept)

	sum.Days = daybucket.BucketAndDedup(kept, opts.Location)

	if err := writeDays(svc, opts, sum); err != nil {
		return sum, err
	}

	log.Info("report complete",
		"files", len(files),
		"records", sum.Converted,
		"out_of_range", sum.OutOfRange,
		"excluded", sum.Excluded,
		"days", len(sum.Days),
		"written", len(sum.Outputs))
	return sum, nil
}

func applyRules(f *exclusion.Filter, records []record.Record, log *slog.Logger) []record.Record {
	kept := make([]record.Record, 0, len(records))
	for _, rec := range records {
		d := f.Evaluate(rec)
		if !d.Include {
			log.Debug("excluded", "rule", d.Rule, "record", rec.Dump())
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
