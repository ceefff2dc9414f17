package storage

import (
	"fmt"

	"bizsite/crypto"
)

// Encrypted seals every value with AES-GCM before handing it to the
// underlying storage. Keys are stored in the clear and bound to their
// values, so swapping two rows makes both unreadable.
type Encrypted struct {
	inner  Storage
	sealer *crypto.Sealer
}

func NewEncrypted(inner Storage, key []byte) (*Encrypted, error) {
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		return nil, err
	}
	return &Encrypted{inner: inner, sealer: sealer}, nil
}

func (e *Encrypted) Get(key string) (string, bool, error) {
	sealed, ok, err := e.inner.Get(key)
	if err != nil || !ok {
		return "", ok, err
	}
	value, err := e.sealer.Open(sealed, key)
	if err != nil {
		return "", false, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return value, true, nil
}

func (e *Encrypted) Set(key, value string) error {
	sealed, err := e.sealer.Seal(value, key)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return e.inner.Set(key, sealed)
}

func (e *Encrypted) Remove(key string) error {
	return e.inner.Remove(key)
}
