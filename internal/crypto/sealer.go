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

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

var (
	// ErrEmptySecret is returned by NewSealer when no secret is configured.
	ErrEmptySecret = errors.New("empty sealing secret")
	// ErrSealedDataCorrupted is returned by Open for undecryptable blobs.
	ErrSealedDataCorrupted = errors.New("sealed data is corrupted or sealed with another key")
)

// sealer is the private implementation of [Sealer].
type sealer struct {
	secret []byte

	// Argon2id tuning parameters.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// Option tunes a sealer.
type Option func(*sealer)

// WithArgonParams overrides the Argon2id cost parameters. Memory is in KiB.
func WithArgonParams(time, memory uint32, threads uint8) Option {
	return func(s *sealer) {
		s.argonTime = time
		s.argonMemory = memory
		s.argonThreads = threads
	}
}

// NewSealer constructs a [Sealer] keyed by secret with the Argon2id
// parameters recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (AES-256)
func NewSealer(secret string, opts ...Option) (Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	s := &sealer{
		secret:       []byte(secret),
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		argonKeyLen:  32,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *sealer) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("error generating nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *sealer) Open(blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSealedDataCorrupted, err)
	}
	if len(raw) < saltSize {
		return nil, ErrSealedDataCorrupted
	}

	gcm, err := s.aead(raw[:saltSize])
	if err != nil {
		return nil, err
	}

	rest := raw[saltSize:]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return nil, ErrSealedDataCorrupted
	}

	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSealedDataCorrupted, err)
	}

	return plaintext, nil
}

func (s *sealer) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.secret, salt, s.argonTime, s.argonMemory, s.argonThreads, s.argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("error creating GCM: %w", err)
	}

	return gcm, nil
}
