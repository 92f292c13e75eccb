package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/runnerr0/dayreport/internal/config"
	"github.com/runnerr0/dayreport/internal/logging"
	"github.com/runnerr0/dayreport/internal/pipeline"
	"github.com/runnerr0/dayreport/internal/secret"
)

// loadConfig loads the config named by --config, or the default config
// (created on first use), and expands its paths.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if globals != nil && globals.Config != "" {
		path, pathErr := config.ExpandPath(globals.Config)
		if pathErr != nil {
			return nil, pathErr
		}
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config and installs the default logger. The returned Closer
// flushes the log file.
func setup(globals *GlobalFlags) (*config.Config, io.Closer, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, err
	}
	verbose := globals != nil && globals.Verbose
	return cfg, logging.Init(cfg.Logging, verbose), nil
}

// defaultServices wires the pipeline to the real file system, age,
// the process environment and an interactive prompt.
func defaultServices(cfg *config.Config) pipeline.Services {
	age := secret.Age{WorkFactor: cfg.Secrets.ScryptWorkFactor}
	return pipeline.Services{
		FS:        afero.NewOsFs(),
		Decrypter: age,
		Encrypter: age,
		Getenv:    os.Getenv,
		Confirm:   promptConfirm,
		Stdout:    os.Stdout,
	}.WithDefaults()
}

// promptConfirm asks a yes/no question on stdout and reads the answer from
// stdin. Anything but y or yes declines, as does a non-interactive stdin.
func promptConfirm(prompt string) bool {
	if !isTerminal(os.Stdin) {
		return false
	}

	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// terminalWidth returns the column count of f, or 0 when f is not a terminal.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return 0
}

// truncate cuts s to width display columns. A width of 0 disables it.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
