package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/runnerr0/dayreport/internal/config"
	"github.com/runnerr0/dayreport/internal/daybucket"
	"github.com/runnerr0/dayreport/internal/pipeline"
	"github.com/runnerr0/dayreport/internal/report"
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	cfg, closer, err := setup(c.globals)
	if err != nil {
		return err
	}
	defer closer.Close()

	return c.executeWithServices(cfg, defaultServices(cfg))
}

// executeWithServices runs the report against the given services (for testing).
func (c *ReportCommand) executeWithServices(cfg *config.Config, svc pipeline.Services) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	r, err := daybucket.RangeFromDates(c.StartDate, c.EndDate, loc)
	if err != nil {
		return err
	}

	slog.Debug("starting report", "version", c.version, "data_dir", cfg.Paths.DataDir, "output_dir", cfg.Paths.OutputDir)

	sum, err := pipeline.Run(context.Background(), svc, pipeline.Options{
		DataDir:         cfg.Paths.DataDir,
		OutputDir:       cfg.Paths.OutputDir,
		RulesFile:       cfg.Paths.RulesFile,
		PassphraseEnv:   cfg.Secrets.PassphraseEnv,
		Extension:       cfg.Report.Extension,
		Location:        loc,
		Range:           r,
		ReadConcurrency: cfg.Report.ReadConcurrency,
		Force:           c.Force,
		DryRun:          c.DryRun,
	})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if c.DryRun {
		return nil
	}

	report.WriteSummary(os.Stdout, sum.Days, report.SummaryOptions{
		Outputs: sum.Outputs,
		Plain:   !isTerminal(os.Stdout),
	})
	return nil
}
