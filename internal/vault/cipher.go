// Package vault implements the encryption-at-rest scheme for clipboard
// entries: a slow password-based key derivation (PBKDF2-SHA256) over a
// persisted random salt, and authenticated AES-256-GCM encryption of entry
// bodies. Ciphertext is self-contained (nonce-prefixed), so decryption
// needs nothing beyond the derived key.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyIterations is the PBKDF2 cost factor. Deliberately slow so that
	// brute-forcing a lost password stays expensive.
	KeyIterations = 100000

	// KeyLen is the raw derived key length, 256 bits for AES-256.
	KeyLen = 32

	// SaltLen is the salt file length in bytes.
	SaltLen = 16
)

// DecryptionError reports ciphertext that is malformed, truncated, or fails
// integrity verification (wrong key, tampering, or corruption). Decrypt
// never returns partial plaintext alongside it.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	if e.Err == nil {
		return "decryption failed"
	}
	return fmt.Sprintf("decryption failed: %v", e.Err)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// DeriveKey derives the symmetric key from a password and salt using
// PBKDF2-SHA256. The 32-byte output is returned url-safe base64 encoded.
// Pure and deterministic: the same inputs always yield the same key.
func DeriveKey(password, salt []byte) []byte {
	raw := pbkdf2.Key(password, salt, KeyIterations, KeyLen, sha256.New)
	key := make([]byte, base64.URLEncoding.EncodedLen(len(raw)))
	base64.URLEncoding.Encode(key, raw)
	return key
}

// DefaultPassword derives a fallback password from the machine's hostname.
// It is guessable by anyone with access to the machine and exists only so
// the vault works out of the box; supply a real password for actual
// confidentiality. Callers choosing this fallback should say so loudly.
func DefaultPassword() []byte {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "local"
	}
	return []byte("clipvault-" + hostname)
}

// LoadOrCreateSalt reads the salt file at path, generating and persisting
// 16 cryptographically random bytes on first use. The salt is never
// rotated; losing the file makes all previously encrypted entries
// permanently undecryptable, which is intentional.
func LoadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		if len(salt) != SaltLen {
			return nil, fmt.Errorf("salt file %s is corrupt: %d bytes, want %d", path, len(salt), SaltLen)
		}
		return salt, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read salt file: %w", err)
	}

	salt = make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if err := os.WriteFile(path, salt, 0600); err != nil {
		return nil, fmt.Errorf("failed to persist salt file: %w", err)
	}
	return salt, nil
}

// Cipher provides authenticated encryption of opaque byte payloads with a
// password-derived key.
type Cipher struct {
	aead cipher.AEAD
}

// New derives a key from password and salt and returns a ready Cipher.
func New(password, salt []byte) (*Cipher, error) {
	return NewWithKey(DeriveKey(password, salt))
}

// NewWithKey builds a Cipher from a url-safe base64-encoded 32-byte key, as
// produced by DeriveKey.
func NewWithKey(key []byte) (*Cipher, error) {
	raw := make([]byte, base64.URLEncoding.DecodedLen(len(key)))
	n, err := base64.URLEncoding.Decode(raw, key)
	if err != nil {
		return nil, fmt.Errorf("invalid key encoding: %w", err)
	}
	if n != KeyLen {
		return nil, fmt.Errorf("invalid key length: %d bytes, want %d", n, KeyLen)
	}

	block, err := aes.NewCipher(raw[:n])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns nonce-prefixed ciphertext. Each
// call uses a fresh random nonce, so equal plaintexts produce different
// ciphertexts.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt. It returns a *DecryptionError when the input is
// too short to carry a nonce or fails authentication.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, &DecryptionError{Err: errors.New("ciphertext too short")}
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	return plaintext, nil
}
