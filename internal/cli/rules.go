package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/runnerr0/dayreport/internal/config"
	"github.com/runnerr0/dayreport/internal/exclusion"
	"github.com/runnerr0/dayreport/internal/pipeline"
)

// Execute implements the go-flags Commander interface for RulesEncryptCommand.
func (c *RulesEncryptCommand) Execute(args []string) error {
	cfg, closer, err := setup(c.globals)
	if err != nil {
		return err
	}
	defer closer.Close()

	return c.executeWithServices(cfg, defaultServices(cfg))
}

// executeWithServices encrypts the plain rules file (for testing).
func (c *RulesEncryptCommand) executeWithServices(cfg *config.Config, svc pipeline.Services) error {
	svc = svc.WithDefaults()
	src, dst := cfg.Paths.PlainRulesFile, cfg.Paths.RulesFile

	pass, err := pipeline.Passphrase(svc.Getenv, cfg.Secrets.PassphraseEnv)
	if err != nil {
		return err
	}

	plain, err := readRulesFile(svc.FS, src)
	if err != nil {
		return err
	}
	if _, err := exclusion.Parse(plain); err != nil {
		return fmt.Errorf("refusing to encrypt %s: %w", src, err)
	}

	ciphertext, err := svc.Encrypter.Encrypt(plain, pass)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", src, err)
	}

	return writeIfAllowed(svc, dst, ciphertext, c.Force, fmt.Sprintf("Encrypted %s -> %s", src, dst))
}

// Execute implements the go-flags Commander interface for RulesDecryptCommand.
func (c *RulesDecryptCommand) Execute(args []string) error {
	cfg, closer, err := setup(c.globals)
	if err != nil {
		return err
	}
	defer closer.Close()

	return c.executeWithServices(cfg, defaultServices(cfg))
}

// executeWithServices decrypts the rules file (for testing).
func (c *RulesDecryptCommand) executeWithServices(cfg *config.Config, svc pipeline.Services) error {
	svc = svc.WithDefaults()
	src, dst := cfg.Paths.RulesFile, cfg.Paths.PlainRulesFile

	pass, err := pipeline.Passphrase(svc.Getenv, cfg.Secrets.PassphraseEnv)
	if err != nil {
		return err
	}

	ciphertext, err := readRulesFile(svc.FS, src)
	if err != nil {
		return err
	}

	plain, err := svc.Decrypter.Decrypt(ciphertext, pass)
	if err != nil {
		return fmt.Errorf("decrypting %s: %w", src, err)
	}

	return writeIfAllowed(svc, dst, plain, c.Force, fmt.Sprintf("Decrypted %s -> %s", src, dst))
}

// Execute implements the go-flags Commander interface for RulesCheckCommand.
func (c *RulesCheckCommand) Execute(args []string) error {
	cfg, closer, err := setup(c.globals)
	if err != nil {
		return err
	}
	defer closer.Close()

	return c.executeWithServices(cfg, defaultServices(cfg))
}

// executeWithServices validates a rules file and prints its rule counts (for testing).
func (c *RulesCheckCommand) executeWithServices(cfg *config.Config, svc pipeline.Services) error {
	svc = svc.WithDefaults()

	var (
		rules exclusion.Rules
		path  string
		err   error
	)
	if c.Encrypted {
		path = cfg.Paths.RulesFile
		rules, err = pipeline.LoadRules(svc, path, cfg.Secrets.PassphraseEnv)
	} else {
		path = cfg.Paths.PlainRulesFile
		var plain []byte
		plain, err = readRulesFile(svc.FS, path)
		if err == nil {
			rules, err = exclusion.Parse(plain)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", path)
	fmt.Printf("  urlPrefixes:           %d\n", len(rules.URLPrefixes))
	fmt.Printf("  urlContains:           %d\n", len(rules.URLContains))
	fmt.Printf("  notionIds:             %d\n", len(rules.NotionIDs))
	fmt.Printf("  titleContains:         %d\n", len(rules.TitleContains))
	fmt.Printf("  messageExclusions:     %d\n", len(rules.MessageExclusions))
	fmt.Printf("  includedCalendarNames: %d\n", len(rules.IncludedCalendarNames))
	if len(rules.IncludedCalendarNames) == 0 {
		fmt.Println("Note: includedCalendarNames is empty, so no calendar events will be reported.")
	}
	return nil
}

// Execute implements the go-flags Commander interface for RulesInitCommand.
func (c *RulesInitCommand) Execute(args []string) error {
	cfg, closer, err := setup(c.globals)
	if err != nil {
		return err
	}
	defer closer.Close()

	return c.executeWithServices(cfg, defaultServices(cfg))
}

// executeWithServices writes the starter rules file (for testing).
func (c *RulesInitCommand) executeWithServices(cfg *config.Config, svc pipeline.Services) error {
	svc = svc.WithDefaults()
	dst := cfg.Paths.PlainRulesFile
	return writeIfAllowed(svc, dst, []byte(config.StarterRules()), c.Force, fmt.Sprintf("Wrote starter rules to %s", dst))
}

func readRulesFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("rules file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeIfAllowed writes data to path unless it exists and the user declines.
// Rules files hold private data, so they are created owner-only.
func writeIfAllowed(svc pipeline.Services, path string, data []byte, force bool, done string) error {
	ok, err := pipeline.ShouldWrite(svc, path, force)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("Operation cancelled. %s was not overwritten.\n", path)
		return nil
	}

	if err := afero.WriteFile(svc.FS, path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println(done)
	return nil
}
