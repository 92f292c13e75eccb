// Package secret encrypts and decrypts the exclusion rules file with an age
// scrypt passphrase.
package secret

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"
)

// ErrWrongPassphrase is returned when the passphrase does not open the file.
var ErrWrongPassphrase = errors.New("incorrect passphrase")

// Decrypter turns ciphertext into plaintext using a passphrase.
type Decrypter interface {
	Decrypt(ciphertext []byte, passphrase string) ([]byte, error)
}

// Encrypter turns plaintext into ciphertext using a passphrase.
type Encrypter interface {
	Encrypt(plaintext []byte, passphrase string) ([]byte, error)
}

// Age implements Decrypter and Encrypter with age scrypt recipients.
type Age struct {
	// WorkFactor is the scrypt log2 work factor used when encrypting.
	// Zero keeps age's default.
	WorkFactor int
}

// Decrypt opens an age file encrypted to passphrase.
func (a Age) Decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	id, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), id)
	if err != nil {
		var noMatch *age.NoIdentityMatchError
		if errors.As(err, &noMatch) {
			return nil, ErrWrongPassphrase
		}
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read decrypted payload: %w", err)
	}
	return plain, nil
}

// Encrypt seals plaintext to passphrase in the age binary format.
func (a Age) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	rcpt, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("create recipient: %w", err)
	}
	if a.WorkFactor > 0 {
		rcpt.SetWorkFactor(a.WorkFactor)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, rcpt)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish encryption: %w", err)
	}
	return buf.Bytes(), nil
}
