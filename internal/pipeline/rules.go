package pipeline

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/runnerr0/dayreport/internal/exclusion"
)

var (
	// ErrMissingPassphrase is returned when the passphrase variable is unset or empty.
	ErrMissingPassphrase = errors.New("passphrase environment variable is not set")
	// ErrRulesNotFound is returned when the encrypted rules file does not exist.
	ErrRulesNotFound = fmt.Errorf("exclusion rules file not found: %w", fs.ErrNotExist)
)

// Passphrase reads the passphrase from the environment variable name.
func Passphrase(getenv func(string) string, name string) (string, error) {
	pass := getenv(name)
	if pass == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingPassphrase, name)
	}
	return pass, nil
}

// LoadRules reads, decrypts and validates the encrypted rules file.
func LoadRules(svc Services, path, passphraseEnv string) (exclusion.Rules, error) {
	svc = svc.WithDefaults()

	pass, err := Passphrase(svc.Getenv, passphraseEnv)
	if err != nil {
		return exclusion.Rules{}, err
	}

	ciphertext, err := afero.ReadFile(svc.FS, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return exclusion.Rules{}, fmt.Errorf("%w: %s", ErrRulesNotFound, path)
		}
		return exclusion.Rules{}, fmt.Errorf("reading rules file: %w", err)
	}

	plain, err := svc.Decrypter.Decrypt(ciphertext, pass)
	if err != nil {
		return exclusion.Rules{}, fmt.Errorf("decrypting %s: %w", path, err)
	}

	return exclusion.Parse(plain)
}
