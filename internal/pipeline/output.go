package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/runnerr0/dayreport/internal/report"
)

// OutputPath returns the document path for a report day.
func OutputPath(dir, day, ext string) string {
	return filepath.Join(dir, day+ext)
}

func writeDays(svc Services, opts Options, sum *Summary) error {
	if len(sum.Days) == 0 {
		svc.Logger.Warn("no records left to report")
		return nil
	}

	if !opts.DryRun {
		if err := svc.FS.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, day := range sum.Days {
		doc := report.Render(day.Key, day.Records, opts.Location)

		if opts.DryRun {
			if _, err := fmt.Fprintln(svc.Stdout, doc); err != nil {
				return fmt.Errorf("writing %s: %w", day.Key, err)
			}
			continue
		}

		path := OutputPath(opts.OutputDir, day.Key, opts.Extension)
		ok, err := ShouldWrite(svc, path, opts.Force)
		if err != nil {
			return err
		}
		if !ok {
			svc.Logger.Info("kept existing report", "path", path)
			continue
		}

		if err := afero.WriteFile(svc.FS, path, []byte(doc), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		sum.Outputs[day.Key] = path
		svc.Logger.Info("report written", "path", path, "records", len(day.Records))
	}
	return nil
}

// ShouldWrite reports whether path may be written. A new path is always
// writable; an existing one needs force or the user's confirmation.
func ShouldWrite(svc Services, path string, force bool) (bool, error) {
	svc = svc.WithDefaults()

	exists, err := afero.Exists(svc.FS, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists || force {
		return true, nil
	}

	svc.Logger.Warn("file already exists", "path", path)
	return svc.Confirm(fmt.Sprintf("Overwrite %s?", path)), nil
}
