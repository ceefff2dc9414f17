// Package content holds the editable site document and the store that
// persists it.
package content

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"bizsite/storage"
)

// Store persists a BusinessConfig override. Without one, readers see
// Default().
type Store struct {
	storage storage.Storage
	logger  *zap.Logger
}

func NewStore(s storage.Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{storage: s, logger: logger}
}

// Load returns the stored override, or the default document when there is
// none or it cannot be read. Failures are logged, never returned.
func (s *Store) Load() BusinessConfig {
	raw, ok, err := s.storage.Get(storage.KeyBusinessConfig)
	if err != nil {
		s.logger.Error("Error loading config", zap.Error(err))
		return Default()
	}
	if !ok {
		return Default()
	}
	var cfg BusinessConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Warn("Stored config is not valid, using defaults", zap.Error(err))
		return Default()
	}
	return cfg
}

// Save replaces the stored override with cfg.
func (s *Store) Save(cfg BusinessConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := s.storage.Set(storage.KeyBusinessConfig, string(b)); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	s.logger.Debug("Config saved", zap.Int("bytes", len(b)))
	return nil
}

// Reset drops the override so Load returns the default document again.
func (s *Store) Reset() error {
	if err := s.storage.Remove(storage.KeyBusinessConfig); err != nil {
		return fmt.Errorf("resetting config: %w", err)
	}
	s.logger.Info("Config reset to defaults")
	return nil
}

func (s *Store) HasOverride() (bool, error) {
	_, ok, err := s.storage.Get(storage.KeyBusinessConfig)
	return ok, err
}
