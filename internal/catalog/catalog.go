package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/foodgram/internal/config"
	"github.com/mwantia/foodgram/pkg/db/store"
	"github.com/mwantia/foodgram/pkg/log"
)

// Catalog owns the logger and catalog store for the lifetime of a command.
type Catalog struct {
	mutex sync.Mutex

	cfg   *config.BaseConfig
	sc    *container.ServiceContainer
	log   *log.LoggerServiceImpl
	store store.CatalogStore
}

func New(cfg *config.BaseConfig) *Catalog {
	return &Catalog{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("foodgram", cfg.Log),
	}
}

// Logger returns the root logger service.
func (c *Catalog) Logger() log.LoggerService {
	return c.log
}

func (c *Catalog) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	c.sc.AddTagProcessor(log.NewLoggerTagProcessor())

	c.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](c.sc,
		container.With[log.LoggerService](),
		container.WithInstance(c.log)))

	c.log.Debug("Registering 'BaseConfig'...")
	errs.Add(container.Register[*config.BaseConfig](c.sc,
		container.WithInstance(c.cfg)))

	c.log.Debug("Registering 'StoreService'...")
	errs.Add(container.Register[*StoreService](c.sc,
		container.AsSingleton()))

	if err := errs.Errors(); err != nil {
		return err
	}

	svc, err := container.Resolve[*StoreService](ctx, c.sc)
	if err != nil {
		return err
	}

	c.store = svc.Store()
	return nil
}

// Run resolves the store from the container, hands it to fn and cleans up
// every container service afterwards.
// fn receives a context that is cancelled on interrupt.
func (c *Catalog) Run(ctx context.Context, fn func(ctx context.Context, s store.CatalogStore) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.setupServices(ctx); err != nil {
		return errors.Join(err, c.sc.Cleanup(ctx), c.log.Close())
	}

	runErr := fn(ctx, c.store)

	timeout, err := time.ParseDuration(c.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()

	var errs []error
	if runErr != nil {
		errs = append(errs, runErr)
	}
	if err := c.sc.Cleanup(shutdown); err != nil {
		errs = append(errs, fmt.Errorf("failed to complete service container cleanup: %w", err))
	}
	if err := c.log.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
	}

	return errors.Join(errs...)
}
