package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/foodgram/internal/config"
	"github.com/mwantia/foodgram/pkg/db/store"
)

func newTestConfig(t *testing.T) *config.BaseConfig {
	t.Helper()

	dir := t.TempDir()
	cfg := config.GetDefault()
	cfg.ShutdownTimeout = "1s"
	cfg.Log.NoTerminal = true
	cfg.Log.File = filepath.Join(dir, "foodgram.log")
	cfg.Database.SQLite.Path = filepath.Join(dir, "catalog.db")
	return &cfg
}

func TestRunProvidesConnectedStore(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	err := New(cfg).Run(context.Background(), func(ctx context.Context, s store.CatalogStore) error {
		if err := s.Health(ctx); err != nil {
			return err
		}
		if err := s.Migrate(ctx); err != nil {
			return err
		}
		_, err := s.ListTags(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunReturnsCallbackError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("seed failed")
	err := New(newTestConfig(t)).Run(context.Background(), func(context.Context, store.CatalogStore) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Run error = %v, want %v", err, sentinel)
	}
}

func TestRunRejectsInvalidDatabase(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	cfg.Database.Type = "oracle"

	called := false
	err := New(cfg).Run(context.Background(), func(context.Context, store.CatalogStore) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error for unknown database type")
	}
	if called {
		t.Fatal("callback must not run when the store cannot be opened")
	}
}

func TestRunClosesStoreOnExit(t *testing.T) {
	t.Parallel()

	var captured store.CatalogStore
	err := New(newTestConfig(t)).Run(context.Background(), func(ctx context.Context, s store.CatalogStore) error {
		captured = s
		return s.Health(ctx)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if captured == nil {
		t.Fatal("callback did not receive a store")
	}
	if err := captured.Health(context.Background()); err == nil {
		t.Fatal("store still reachable after Run returned")
	}
}

func TestStoreServiceResolvesFromContainer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(newTestConfig(t))
	t.Cleanup(func() { _ = c.log.Close() })

	if err := c.setupServices(ctx); err != nil {
		t.Fatalf("setupServices: %v", err)
	}

	svc, err := container.Resolve[*StoreService](ctx, c.sc)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if svc.Config != c.cfg {
		t.Fatal("StoreService did not receive the registered config")
	}
	if svc.Log == nil {
		t.Fatal("StoreService did not receive a logger")
	}
	if svc.Store() != c.store {
		t.Fatal("container returned a different store than the catalog holds")
	}

	if err := c.sc.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if svc.Store() != nil {
		t.Fatal("store kept after Cleanup")
	}
}
