package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/dayreport/internal/daybucket"
)

// parseOnly parses args without running the matched command.
func parseOnly(t *testing.T, args ...string) (*GlobalFlags, *commands, goflags.Commander) {
	t.Helper()
	parser, globals, cmds := buildParser("test")

	var matched goflags.Commander
	parser.CommandHandler = func(cmd goflags.Commander, args []string) error {
		matched = cmd
		return nil
	}

	_, err := parser.ParseArgs(args)
	require.NoError(t, err)
	return globals, cmds, matched
}

func TestVersionFlag(t *testing.T) {
	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Contains(t, output, "dayreport 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"report", "--version"})
	})

	assert.Equal(t, "dayreport 1.2.3", strings.TrimSpace(output))
}

func TestReportFlagsBound(t *testing.T) {
	globals, cmds, matched := parseOnly(t,
		"--config", "/tmp/c.yaml", "--verbose",
		"report", "--startDate", "2024-03-01", "--endDate", "2024-03-05", "--force", "--dry-run")

	assert.Same(t, cmds.Report, matched)
	assert.Equal(t, "/tmp/c.yaml", globals.Config)
	assert.True(t, globals.Verbose)
	assert.Equal(t, "2024-03-01", cmds.Report.StartDate)
	assert.Equal(t, "2024-03-05", cmds.Report.EndDate)
	assert.True(t, cmds.Report.Force)
	assert.True(t, cmds.Report.DryRun)
	assert.Same(t, globals, cmds.Report.globals)
}

func TestInspectFlagsBound(t *testing.T) {
	_, cmds, matched := parseOnly(t, "inspect", "--no-rules", "a.csv", "b.csv")

	assert.Same(t, cmds.Inspect, matched)
	assert.True(t, cmds.Inspect.NoRules)
	assert.Equal(t, []string{"a.csv", "b.csv"}, cmds.Inspect.Args.Files)
}

func TestInspectRequiresFile(t *testing.T) {
	parser, _, _ := buildParser("test")
	parser.Options &^= goflags.PrintErrors
	_, err := parser.ParseArgs([]string{"inspect"})
	assert.Error(t, err)
}

func TestRulesSubcommandsRecognized(t *testing.T) {
	tests := []struct {
		args []string
		want func(*commands) goflags.Commander
	}{
		{[]string{"rules", "encrypt", "--force"}, func(c *commands) goflags.Commander { return c.RulesEncrypt }},
		{[]string{"rules", "decrypt"}, func(c *commands) goflags.Commander { return c.RulesDecrypt }},
		{[]string{"rules", "check", "--encrypted"}, func(c *commands) goflags.Commander { return c.RulesCheck }},
		{[]string{"rules", "init"}, func(c *commands) goflags.Commander { return c.RulesInit }},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			_, cmds, matched := parseOnly(t, tt.args...)
			assert.Same(t, tt.want(cmds), matched)
		})
	}

	_, cmds, _ := parseOnly(t, "rules", "encrypt", "--force")
	assert.True(t, cmds.RulesEncrypt.Force)
	_, cmds, _ = parseOnly(t, "rules", "check", "--encrypted")
	assert.True(t, cmds.RulesCheck.Encrypted)
}

func TestRulesWithoutSubcommandErrors(t *testing.T) {
	parser, _, _ := buildParser("test")
	parser.Options &^= goflags.PrintErrors
	_, err := parser.ParseArgs([]string{"rules"})
	assert.Error(t, err)
}

func TestUnknownSubcommandErrors(t *testing.T) {
	parser, _, _ := buildParser("test")
	parser.Options &^= goflags.PrintErrors
	_, err := parser.ParseArgs([]string{"nonexistent"})
	assert.Error(t, err)
}

func TestReportWithoutStartDateFailsThroughRun(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0644))

	err := RunWithArgs("test", []string{"--config", cfgPath, "report"})
	assert.True(t, errors.Is(err, daybucket.ErrMissingStartDate), "got %v", err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncate("abcdef", 0))
	assert.Equal(t, "abcdef", truncate("abcdef", 10))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
}
