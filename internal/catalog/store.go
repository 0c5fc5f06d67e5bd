package catalog

import (
	"context"
	"fmt"

	"github.com/mwantia/foodgram/internal/config"
	"github.com/mwantia/foodgram/pkg/db/store"
	"github.com/mwantia/foodgram/pkg/log"
)

// StoreService keeps the catalog store inside the service container.
// Init opens and connects the configured back end; Cleanup closes it.
type StoreService struct {
	Config *config.BaseConfig `fabric:"inject"`
	Log    log.LoggerService  `fabric:"logger:store"`

	store store.CatalogStore
}

func (s *StoreService) Init(ctx context.Context) error {
	s.Log.Debug("Opening '%s' catalog store...", s.Config.Database.Type)

	cs, err := store.Open(s.Config.Database, s.Log)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	if err := cs.Connect(ctx); err != nil {
		cs.Close()
		return fmt.Errorf("failed to connect catalog store: %w", err)
	}

	s.store = cs
	return nil
}

func (s *StoreService) Cleanup(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.Log.Debug("Closing catalog store...")
	err := s.store.Close()
	s.store = nil
	return err
}

// Store returns the connected store, or nil before Init and after Cleanup.
func (s *StoreService) Store() store.CatalogStore {
	return s.store
}
