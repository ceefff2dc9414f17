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

var ErrSealedTooShort = errors.New("sealed value too short")

// ServerKey turns the configured session secret into a 32-byte key. Each
// purpose ("auth", "encryption", "csrf", "storage") gets its own key.
func ServerKey(secret, purpose string) []byte {
	sum := sha256.Sum256([]byte(secret + purpose))
	return sum[:]
}

// Sealer encrypts values with AES-GCM. The label given to Seal is
// authenticated but not stored, and Open must be given the same label: a
// value copied to another storage key will not open.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal returns nonce||ciphertext in unpadded URL-safe base64.
func (s *Sealer) Seal(plaintext, label string) (string, error) {
	size := s.aead.NonceSize()
	nonce := make([]byte, size, size+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), []byte(label))
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed, label string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decoding sealed value: %w", err)
	}
	size := s.aead.NonceSize()
	if len(raw) < size+s.aead.Overhead() {
		return "", ErrSealedTooShort
	}
	plain, err := s.aead.Open(nil, raw[:size], raw[size:], []byte(label))
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
