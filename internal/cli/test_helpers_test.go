package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/dayreport/internal/config"
	"github.com/runnerr0/dayreport/internal/pipeline"
	"github.com/runnerr0/dayreport/internal/secret"
)

const testPassphrase = "correct horse"

const testBrowserCSV = `date,time,title,url,transition
3/1/2024,09:00:00,Design doc,https://example.com/doc,link
3/1/2024,09:30:00,Sign in,https://example.com/login,link
3/1/2024,09:45:00,Design doc,https://example.com/doc,reload
`

const testRules = `{urlContains: ["/login"], includedCalendarNames: ["Work"]}`

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testEnv is an in-memory workspace: config paths point into an afero
// MemMapFs and age uses a low scrypt work factor.
type testEnv struct {
	cfg *config.Config
	svc pipeline.Services
	fs  afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Paths = config.PathsConfig{
		DataDir:        "/data",
		OutputDir:      "/out",
		RulesFile:      "/rules/exclusions.json5.age",
		PlainRulesFile: "/rules/exclusions.json5",
	}
	cfg.Report.Timezone = "UTC"

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data", 0755))
	require.NoError(t, fsys.MkdirAll("/rules", 0700))

	age := secret.Age{WorkFactor: 10}
	env := map[string]string{"PASSPHRASE": testPassphrase}

	return &testEnv{
		cfg: cfg,
		fs:  fsys,
		svc: pipeline.Services{
			FS:        fsys,
			Decrypter: age,
			Encrypter: age,
			Getenv:    func(k string) string { return env[k] },
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}
}

// writeFile writes a file into the in-memory workspace.
func (e *testEnv) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.fs, path, []byte(content), 0644))
}

// writeEncryptedRules encrypts text to the configured rules file.
func (e *testEnv) writeEncryptedRules(t *testing.T, text string) {
	t.Helper()
	ct, err := e.svc.Encrypter.Encrypt([]byte(text), testPassphrase)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(e.fs, e.cfg.Paths.RulesFile, ct, 0600))
}

func (e *testEnv) readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(e.fs, path)
	require.NoError(t, err)
	return string(data)
}
