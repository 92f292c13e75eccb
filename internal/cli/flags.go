package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ReportCommand runs the whole pipeline for a date range.
type ReportCommand struct {
	StartDate string `long:"startDate" description:"First report day, YYYY-MM-DD (required)"`
	EndDate   string `long:"endDate" description:"Last report day, YYYY-MM-DD (default: no upper bound)"`
	Force     bool   `long:"force" description:"Overwrite existing reports without asking"`
	DryRun    bool   `long:"dry-run" description:"Print reports to stdout instead of writing files"`

	globals *GlobalFlags
	version string
}

// InspectCommand converts files and prints the resulting records.
type InspectCommand struct {
	NoRules bool `long:"no-rules" description:"Do not load exclusion rules"`

	Args struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// RulesCommand groups the rules subcommands.
type RulesCommand struct{}

// RulesEncryptCommand encrypts the plain rules file.
type RulesEncryptCommand struct {
	Force bool `long:"force" description:"Overwrite the encrypted file without asking"`

	globals *GlobalFlags
}

// RulesDecryptCommand decrypts the rules file into the plain rules file.
type RulesDecryptCommand struct {
	Force bool `long:"force" description:"Overwrite the plain file without asking"`

	globals *GlobalFlags
}

// RulesCheckCommand validates a rules file.
type RulesCheckCommand struct {
	Encrypted bool `long:"encrypted" description:"Check the encrypted rules file instead of the plain one"`

	globals *GlobalFlags
}

// RulesInitCommand writes a starter plain rules file.
type RulesInitCommand struct {
	Force bool `long:"force" description:"Overwrite an existing plain rules file without asking"`

	globals *GlobalFlags
}
