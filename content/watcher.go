package content

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval matches how often site pages re-read their content.
const DefaultPollInterval = time.Second

// Watcher re-reads a Store on a fixed interval so that edits saved
// elsewhere show up without a restart.
type Watcher struct {
	store    *Store
	interval time.Duration
	logger   *zap.Logger
}

func NewWatcher(store *Store, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{store: store, interval: interval, logger: logger}
}

// Run calls onChange with the current document, then again each time a
// poll finds a different one. It blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(BusinessConfig)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last []byte
	poll := func() {
		cfg := w.store.Load()
		b, err := json.Marshal(cfg)
		if err != nil {
			w.logger.Warn("Cannot encode polled config", zap.Error(err))
			return
		}
		if last != nil && bytes.Equal(b, last) {
			return
		}
		last = b
		onChange(cfg)
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
