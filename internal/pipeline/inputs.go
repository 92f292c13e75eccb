package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/dayreport/internal/convert"
	"github.com/runnerr0/dayreport/internal/record"
)

// Input is one export file read into memory.
type Input struct {
	Path string
	Data []byte
}

// FileResult records how one input file was converted. Err is set when the
// file was skipped.
type FileResult struct {
	Path      string
	Converter string
	Records   int
	Err       error
}

// ListInputs returns the .csv files directly inside dir, sorted by name.
// The extension match ignores case.
func ListInputs(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// ReadInputs reads paths with at most limit reads in flight. Results keep the
// order of paths. Any read error cancels the remaining reads.
func ReadInputs(ctx context.Context, fsys afero.Fs, paths []string, limit int) ([]Input, error) {
	if limit < 1 {
		limit = 1
	}

	inputs := make([]Input, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path // per-iteration copy; go directive is 1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			inputs[i] = Input{Path: path, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// ConvertInputs converts each input in order. A file that fails to convert
// is logged and skipped.
func ConvertInputs(inputs []Input, d *convert.Dispatcher, log *slog.Logger) ([]record.Record, []FileResult) {
	var records []record.Record
	results := make([]FileResult, 0, len(inputs))

	for _, in := range inputs {
		res, err := d.Convert(in.Data)
		if err != nil {
			log.Error("skipping file", "path", in.Path, "error", err)
			results = append(results, FileResult{Path: in.Path, Err: err})
			continue
		}

		log.Info("read file", "path", filepath.Base(in.Path), "converter", res.Converter, "records", len(res.Records))
		results = append(results, FileResult{Path: in.Path, Converter: res.Converter, Records: len(res.Records)})
		records = append(records, res.Records...)
	}

	return records, results
}
