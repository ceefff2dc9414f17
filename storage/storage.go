// Package storage is the key/value persistence behind the credential and
// content stores. It models the browser's local storage: string keys,
// string values, last write wins.
package storage

import "sync"

// Logical keys.
const (
	KeyAdminUser          = "adminUser"
	KeyAdminAuthenticated = "adminAuthenticated"
	KeyAdminSessionTime   = "adminSessionTime"
	KeyBusinessConfig     = "businessConfig"
)

// Storage is a string key/value store. Get reports ok=false for a missing key.
// Remove of a missing key is not an error.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-process Storage.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
