package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Report       *ReportCommand
	Inspect      *InspectCommand
	Rules        *RulesCommand
	RulesEncrypt *RulesEncryptCommand
	RulesDecrypt *RulesDecryptCommand
	RulesCheck   *RulesCheckCommand
	RulesInit    *RulesInitCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "dayreport"
	parser.LongDescription = "Turn browser history, Slack and calendar CSV exports into one report per working day."

	cmds := &commands{
		Report:       &ReportCommand{globals: &globals, version: version},
		Inspect:      &InspectCommand{globals: &globals, version: version},
		Rules:        &RulesCommand{},
		RulesEncrypt: &RulesEncryptCommand{globals: &globals},
		RulesDecrypt: &RulesDecryptCommand{globals: &globals},
		RulesCheck:   &RulesCheckCommand{globals: &globals},
		RulesInit:    &RulesInitCommand{globals: &globals},
	}

	parser.AddCommand("report", "Build daily reports", "Read every CSV export in the data directory, apply the exclusion rules and write one report per day.", cmds.Report)
	parser.AddCommand("inspect", "Show how export files are converted", "Convert the given CSV files and print every record with its report day and exclusion decision.", cmds.Inspect)

	rules, _ := parser.AddCommand("rules", "Manage the exclusion rules file", "Create, validate, encrypt and decrypt the exclusion rules file.", cmds.Rules)
	rules.AddCommand("encrypt", "Encrypt the plain rules file", "Validate the plain JSON5 rules file and encrypt it with the passphrase.", cmds.RulesEncrypt)
	rules.AddCommand("decrypt", "Decrypt the rules file for editing", "Decrypt the rules file into the plain JSON5 rules file.", cmds.RulesDecrypt)
	rules.AddCommand("check", "Validate rules", "Validate the plain rules file, or the encrypted one with --encrypted.", cmds.RulesCheck)
	rules.AddCommand("init", "Write a starter rules file", "Write a starter JSON5 rules file to the plain rules path.", cmds.RulesInit)

	return parser, &globals, cmds
}

// Run is the main entry point for the dayreport CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("dayreport %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
