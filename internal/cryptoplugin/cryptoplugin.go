// Package cryptoplugin is the default encryption plugin: PBKDF2-HMAC-
// SHA256 key derivation feeding ChaCha20-Poly1305 AEAD, per SPEC_FULL.md
// §4.12. Wire format: salt(16) || nonce(12) || ciphertext+tag.
package cryptoplugin

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen       = 16
	nonceLen      = 12
	kdfIterations = 100_000
	keyLen        = 32
)

// Overhead is the fixed number of bytes Encrypt adds: salt + nonce + tag.
const Overhead = saltLen + nonceLen + chacha20poly1305.Overhead

// Plugin is the default cryptoplugin.Plugin-shaped value the core modem
// package depends on by interface.
type Plugin struct{}

func (Plugin) Encrypt(data, password []byte) ([]byte, error) { return Encrypt(data, password) }
func (Plugin) Decrypt(data, password []byte) ([]byte, error) { return Decrypt(data, password) }

func deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, kdfIterations, keyLen, sha256.New)
}

// Encrypt derives a key from password and a fresh random salt, then
// seals data with ChaCha20-Poly1305 under a fresh random nonce.
func Encrypt(data, password []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	key := deriveKey(password, salt)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, saltLen+nonceLen+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Decrypt reverses Encrypt. Any failure (short input, bad tag, wrong
// password) is reported as a plain error; callers classify it as
// non-recoverable per modemerr.
func Decrypt(data, password []byte) ([]byte, error) {
	if len(data) < saltLen+nonceLen+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("cryptoplugin: ciphertext too short")
	}
	salt := data[:saltLen]
	nonce := data[saltLen : saltLen+nonceLen]
	sealed := data[saltLen+nonceLen:]

	key := deriveKey(password, salt)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptoplugin: decryption failed: %w", err)
	}
	return plain, nil
}
