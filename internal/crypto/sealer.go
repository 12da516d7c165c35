// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const sealedPrefix = "enc:v1:"

// keySalt domain-separates the derived key. The secret itself comes from
// configuration, so a fixed salt is sufficient here.
var keySalt = []byte("postdesk/settings/v1")

var (
	// ErrSealerDisabled is returned by Open for a sealed value when no key
	// is configured.
	ErrSealerDisabled = errors.New("sealer has no key configured")

	// ErrMalformedSealed is returned for a prefixed value that cannot be
	// decoded or authenticated.
	ErrMalformedSealed = errors.New("malformed sealed value")
)

type aesSealer struct {
	aead cipher.AEAD
}

// NewSealer derives an AES-256-GCM key from secret with Argon2id
// (1 iteration, 64 MiB, 4 threads). An empty secret yields a disabled
// sealer.
func NewSealer(secret string) (Sealer, error) {
	if secret == "" {
		return &aesSealer{}, nil
	}

	key := argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}

	return &aesSealer{aead: aead}, nil
}

func (s *aesSealer) Enabled() bool {
	return s.aead != nil
}

func (s *aesSealer) Seal(plaintext string) (string, error) {
	if plaintext == "" || !s.Enabled() {
		return plaintext, nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	blob := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

func (s *aesSealer) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return sealed, nil
	}
	if !s.Enabled() {
		return "", ErrSealerDisabled
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSealed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrMalformedSealed)
	}

	// a wrong key fails authentication here
	plain, err := s.aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSealed, err)
	}

	return string(plain), nil
}
