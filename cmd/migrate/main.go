package main

import (
	"context"
	"flag"
	"log"
	"time"

	"career-compass/internal/app"
	"career-compass/internal/config"
	"career-compass/internal/database/migration"
	"career-compass/internal/database/seeder"
	"career-compass/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "load the starter skill and role catalog after migrating")
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.New(cfg.Log)
	defer func() { _ = lg.Sync() }()

	c, err := app.NewContainer(cfg, lg)
	if err != nil {
		lg.Fatal("failed to init container", zap.Error(err))
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	r := migration.Runner{Dir: cfg.App.MigrationsDir, Log: lg}

	if *dryRun {
		pending, err := r.Status(ctx, c.DB.SQLDB())
		if err != nil {
			lg.Fatal("list pending migrations", zap.Error(err))
		}
		for _, m := range pending {
			lg.Info("pending migration", zap.Int64("version", m.Version), zap.String("name", m.Name))
		}
		return
	}

	applied, err := r.Run(ctx, c.DB.SQLDB())
	if err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
	lg.Info("migrations applied", zap.Int("count", applied))

	if !*seed {
		return
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Log: lg}).Run(ctx, c.DB); err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}
	lg.Info("seed completed")
}
