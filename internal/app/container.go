package app

import (
	"context"
	"errors"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/pkg/tracing"

	"go.uber.org/zap"
)

// Container owns the process-wide resources shared by the HTTP server and the
// migrate command.
type Container struct {
	Config  config.Config
	Log     *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics

	shutdownTracing func(context.Context) error
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:          cfg,
		Log:             log,
		DB:              db,
		Cache:           cache.NewRedis(cfg.Redis, log),
		Metrics:         metrics.New(),
		shutdownTracing: tracing.Init(ctx, log, cfg.App, cfg.Tracing),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, c.shutdownTracing(ctx))
		cancel()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
