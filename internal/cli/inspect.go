package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/runnerr0/dayreport/internal/config"
	"github.com/runnerr0/dayreport/internal/convert"
	"github.com/runnerr0/dayreport/internal/daybucket"
	"github.com/runnerr0/dayreport/internal/exclusion"
	"github.com/runnerr0/dayreport/internal/pipeline"
)

// Execute implements the go-flags Commander interface for InspectCommand.
func (c *InspectCommand) Execute(args []string) error {
	cfg, closer, err := setup(c.globals)
	if err != nil {
		return err
	}
	defer closer.Close()

	return c.executeWithServices(cfg, defaultServices(cfg))
}

// executeWithServices prints every record of the given files (for testing).
func (c *InspectCommand) executeWithServices(cfg *config.Config, svc pipeline.Services) error {
	svc = svc.WithDefaults()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var filter *exclusion.Filter
	if !c.NoRules {
		rules, err := pipeline.LoadRules(svc, cfg.Paths.RulesFile, cfg.Secrets.PassphraseEnv)
		if err != nil {
			slog.Warn("exclusion rules unavailable, showing records without decisions", "error", err)
		} else {
			filter = exclusion.New(rules)
		}
	}

	inputs, err := pipeline.ReadInputs(context.Background(), svc.FS, c.Args.Files, cfg.Report.ReadConcurrency)
	if err != nil {
		return err
	}

	d := convert.NewDispatcher(convert.WithLocation(loc), convert.WithLogger(svc.Logger))
	width := terminalWidth(os.Stdout)

	for _, in := range inputs {
		res, err := d.Convert(in.Data)
		if err != nil {
			fmt.Printf("%s: %v\n", in.Path, err)
			continue
		}
		fmt.Printf("%s: %s, %d records\n", in.Path, res.Converter, len(res.Records))

		for _, rec := range res.Records {
			line := daybucket.Key(rec.EpochMillis(), loc) + " " + rec.Dump()
			if filter != nil {
				if dec := filter.Evaluate(rec); dec.Include {
					line = "  + " + line
				} else {
					line = "  - " + line + " [" + dec.Rule + "]"
				}
			} else {
				line = "    " + line
			}
			fmt.Println(truncate(line, width))
		}
	}

	return nil
}
