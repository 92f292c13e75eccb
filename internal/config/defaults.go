package config

const (
	DefaultExtension     = ".md"
	DefaultPassphraseEnv = "PASSPHRASE"
)

// DefaultConfig returns a Config populated with all default values.
// Relative paths resolve against the working directory.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:        "data",
			OutputDir:      "reports",
			RulesFile:      "exclusions.json5.age",
			PlainRulesFile: "exclusions.json5",
		},
		Secrets: SecretsConfig{
			PassphraseEnv:    DefaultPassphraseEnv,
			ScryptWorkFactor: 0,
		},
		Report: ReportConfig{
			Extension:       DefaultExtension,
			Timezone:        "Local",
			ReadConcurrency: 4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSize:    10,
			MaxBackups: 3,
		},
	}
}
