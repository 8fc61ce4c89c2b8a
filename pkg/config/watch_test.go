package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, validYAML)

	w := NewWatcher(path, nil)
	w.loader = LoadConfig
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	updated := validYAML + "\nnormalize:\n  canonical_markets: true\n"
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if !cfg.Normalize.CanonicalMarkets {
			t.Error("expected reloaded config to carry the new value")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() returned error: %v", err)
	}
}

func TestWatcher_InvalidFileKeepsPrevious(t *testing.T) {
	path := writeConfig(t, validYAML)

	w := NewWatcher(path, nil)
	w.loader = LoadConfig

	called := false
	if err := os.WriteFile(path, []byte("proxy: [broken"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	w.reload(func(*Config) { called = true })

	if called {
		t.Error("expected callback not to run for an invalid file")
	}
}
