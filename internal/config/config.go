package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/dayreport/config.yaml"

// Config holds all dayreport configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Secrets SecretsConfig `yaml:"secrets"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

type PathsConfig struct {
	DataDir        string `yaml:"data_dir"`
	OutputDir      string `yaml:"output_dir"`
	RulesFile      string `yaml:"rules_file"`
	PlainRulesFile string `yaml:"plain_rules_file"`
}

type SecretsConfig struct {
	PassphraseEnv string `yaml:"passphrase_env"`
	// ScryptWorkFactor applies to `rules encrypt`. Zero keeps age's default.
	ScryptWorkFactor int `yaml:"scrypt_work_factor"`
}

type ReportConfig struct {
	Extension       string `yaml:"extension"`
	Timezone        string `yaml:"timezone"`
	ReadConcurrency int    `yaml:"read_concurrency"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

// normalize fixes values a hand-edited file may get slightly wrong.
func (c *Config) normalize() {
	ext := strings.TrimSpace(c.Report.Extension)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Report.Extension = ext

	if c.Report.ReadConcurrency < 1 {
		c.Report.ReadConcurrency = 1
	}
	if c.Secrets.PassphraseEnv == "" {
		c.Secrets.PassphraseEnv = DefaultPassphraseEnv
	}
}

// Location returns the time zone used for parsing exports and bucketing
// days. An empty value or "Local" means the machine's zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Report.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Report.Timezone, err)
	}
	return loc, nil
}

// ExpandPaths resolves a leading ~ in every configured path.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{
		&c.Paths.DataDir,
		&c.Paths.OutputDir,
		&c.Paths.RulesFile,
		&c.Paths.PlainRulesFile,
		&c.Logging.File,
	} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
