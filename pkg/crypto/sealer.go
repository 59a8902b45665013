// Package crypto seals bearer tokens that are kept outside the browser.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when the sealing key is empty.
	ErrInvalidKey = errors.New("invalid sealing key: must not be empty")
	// ErrUnsealFailed is returned for tampered data, a wrong key, or a wrong session binding.
	ErrUnsealFailed = errors.New("unseal failed: invalid data, wrong key or wrong session")
)

// TokenSealer encrypts tokens with AES-256-GCM. Each sealed value is bound to the
// session id it was stored under, so it cannot be replayed under another session key.
type TokenSealer struct {
	gcm cipher.AEAD
}

// NewTokenSealer creates a sealer from a key string.
// The key can be:
//   - A base64-encoded 32-byte key (e.g., from: openssl rand -base64 32)
//   - Any passphrase (hashed to 32 bytes with SHA-256)
func NewTokenSealer(keyInput string) (*TokenSealer, error) {
	if keyInput == "" {
		return nil, ErrInvalidKey
	}

	var key []byte
	decoded, err := base64.StdEncoding.DecodeString(keyInput)
	if err == nil && len(decoded) == 32 {
		key = decoded
	} else {
		hash := sha256.Sum256([]byte(keyInput))
		key = hash[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &TokenSealer{gcm: gcm}, nil
}

// Seal encrypts token for sessionID and returns base64(nonce || ciphertext || tag).
func (s *TokenSealer) Seal(token, sessionID string) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.gcm.Seal(nonce, nonce, []byte(token), []byte(sessionID))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal for the same sessionID.
func (s *TokenSealer) Open(sealed, sessionID string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode failed", ErrUnsealFailed)
	}

	nonceSize := s.gcm.NonceSize()
	if len(data) < nonceSize+s.gcm.Overhead() {
		return "", fmt.Errorf("%w: data too short", ErrUnsealFailed)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	token, err := s.gcm.Open(nil, nonce, ciphertext, []byte(sessionID))
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrUnsealFailed)
	}

	return string(token), nil
}
