package content

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"bizsite/storage"
)

func TestWatcherDeliversChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStore(storage.NewMemory(), nil)
	w := NewWatcher(s, 5*time.Millisecond, nil)

	var mu sync.Mutex
	var seen []string
	got := make(chan struct{}, 16)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(cfg BusinessConfig) {
			mu.Lock()
			seen = append(seen, cfg.Company.Name)
			mu.Unlock()
			got <- struct{}{}
		})
	}()

	waitFor := func() {
		t.Helper()
		select {
		case <-got:
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not report")
		}
	}

	waitFor()

	doc := Default()
	doc.Company.Name = "Acme"
	require.NoError(t, s.Save(doc))
	waitFor()

	// Several idle polls must not report again.
	time.Sleep(30 * time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"YourBusiness", "Acme"}, seen)
}

func TestNewWatcherDefaults(t *testing.T) {
	w := NewWatcher(NewStore(storage.NewMemory(), nil), 0, nil)
	assert.Equal(t, DefaultPollInterval, w.interval)
	assert.NotNil(t, w.logger)
}
