// Package cryptox seals file payloads on the client before upload.
//
// A sealed payload is the base64 encoding of
//
//	magic(4) | salt(16) | nonce(12) | AES-256-GCM ciphertext
//
// where the key is derived from a passphrase with Argon2id. The server only
// ever sees the base64 string and never the passphrase.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/fileshare/internal/common"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

var magic = []byte("FSv1")

var (
	ErrNotSealed     = errors.New("payload is not sealed")
	ErrDecryptFailed = errors.New("wrong passphrase or corrupted payload")
	ErrNoPassphrase  = errors.New("passphrase is required")
)

// randRead is a seam for tests.
var randRead = rand.Read

// DeriveKey stretches password into a 32-byte AES key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SealPayload encrypts plaintext under passphrase and returns the base64
// envelope ready to be sent as encryptedData.
func SealPayload(plaintext []byte, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrNoPassphrase
	}

	salt := make([]byte, saltSize)
	if _, err := randRead(salt); err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := randRead(nonce); err != nil {
		return "", err
	}

	key := DeriveKey([]byte(passphrase), salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	buf := make([]byte, 0, len(magic)+saltSize+nonceSize+len(plaintext)+aead.Overhead())
	buf = append(buf, magic...)
	buf = append(buf, salt...)
	buf = append(buf, nonce...)
	buf = aead.Seal(buf, nonce, plaintext, magic)

	return base64.StdEncoding.EncodeToString(buf), nil
}

// OpenPayload reverses SealPayload.
func OpenPayload(encoded string, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrNotSealed
	}
	if !hasEnvelope(raw) {
		return nil, ErrNotSealed
	}
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}

	rest := raw[len(magic):]
	salt, nonce, ct := rest[:saltSize], rest[saltSize:saltSize+nonceSize], rest[saltSize+nonceSize:]

	key := DeriveKey([]byte(passphrase), salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ct, magic)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// IsSealed reports whether encoded looks like a SealPayload envelope.
func IsSealed(encoded string) bool {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	return hasEnvelope(raw)
}

func hasEnvelope(raw []byte) bool {
	return len(raw) >= len(magic)+saltSize+nonceSize+16 && bytes.Equal(raw[:len(magic)], magic)
}
