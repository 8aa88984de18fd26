package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const sealerInfo = "web-client session token"

// ErrSealed is returned when a stored value cannot be opened with the current secret.
var ErrSealed = errors.New("session: cannot open sealed token")

// Sealer encrypts tokens at rest with XChaCha20-Poly1305.
// The session id is bound as additional data so a sealed token cannot be replayed under another id.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives the key from secret with HKDF-SHA256.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("session: empty sealing secret")
	}
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sealerInfo)), key); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts token for id.
func (s *Sealer) Seal(id, token string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(token)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(token), []byte(id))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open decrypts a value produced by Seal for the same id.
func (s *Sealer) Open(id, sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < s.aead.NonceSize() {
		return "", ErrSealed
	}
	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(id))
	if err != nil {
		return "", ErrSealed
	}
	return string(plain), nil
}

// SealedStore wraps a Store so that only sealed tokens reach it.
type SealedStore struct {
	inner  Store
	sealer *Sealer
}

// NewSealedStore returns store wrapper.
func NewSealedStore(inner Store, sealer *Sealer) *SealedStore {
	return &SealedStore{inner: inner, sealer: sealer}
}

// Load opens the stored token. Values that fail to open are treated as absent.
func (s *SealedStore) Load(ctx context.Context, id string) (string, error) {
	sealed, err := s.inner.Load(ctx, id)
	if err != nil {
		return "", err
	}
	token, err := s.sealer.Open(id, sealed)
	if err != nil {
		return "", ErrNotFound
	}
	return token, nil
}

// Save seals and stores the token.
func (s *SealedStore) Save(ctx context.Context, id, token string) error {
	sealed, err := s.sealer.Seal(id, token)
	if err != nil {
		return err
	}
	return s.inner.Save(ctx, id, sealed)
}

// Delete removes the token.
func (s *SealedStore) Delete(ctx context.Context, id string) error {
	return s.inner.Delete(ctx, id)
}
