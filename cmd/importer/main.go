// Importer loads listings from a JSON or YAML file into the configured store.
//
// Usage:
//
//	importer -file listings.json [-reset] [-batch 100]
//
// Store settings come from config/<ENV>.yaml, as for the API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stayfinder/internal/config"
	dombatch "github.com/kailas-cloud/stayfinder/internal/domain/batch"
	logpkg "github.com/kailas-cloud/stayfinder/internal/logger"
	"github.com/kailas-cloud/stayfinder/internal/repository/backend"
	ingestuc "github.com/kailas-cloud/stayfinder/internal/usecase/ingest"
	"github.com/kailas-cloud/stayfinder/internal/version"
)

type options struct {
	file    string
	reset   bool
	batch   int
	version bool
}

func main() {
	opts := parseFlags()
	if opts.version {
		fmt.Println(version.String())
		return
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(logpkg.ContextWithLogger(ctx, logger), &cfg, opts); err != nil {
		logger.Error("Import failed", zap.Error(err))
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.file, "file", "", "listings file (.json, .yaml or .yml)")
	flag.BoolVar(&o.reset, "reset", false, "delete all stored listings before importing")
	flag.IntVar(&o.batch, "batch", 0, "listings per write round trip (default: search.max_batch_size)")
	flag.BoolVar(&o.version, "version", false, "print version and exit")
	flag.Parse()
	return o
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	if opts.file == "" {
		return errors.New("-file is required")
	}
	ctx = logpkg.With(ctx, zap.String("file", opts.file))
	logger := logpkg.FromContext(ctx)
	start := time.Now()

	records, err := ingestuc.ReadFile(opts.file)
	if err != nil {
		return err
	}
	logger.Info("Read listings", zap.Int("records", len(records)))

	store, err := backend.Open(ctx, backend.Config{
		Driver:           cfg.Database.Driver,
		Addrs:            cfg.Database.Addrs,
		Password:         cfg.Database.Password,
		URI:              cfg.Database.URI,
		Database:         cfg.Database.Database,
		KeyPrefix:        cfg.Storage.KeyPrefix,
		ReadinessTimeout: time.Duration(cfg.Database.ReadinessTimeout) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	batch := opts.batch
	if batch <= 0 {
		batch = cfg.Search.MaxBatchSize
	}
	svc := ingestuc.New(store.Listings).
		WithMaxBatchSize(batch).
		WithResetter(store.Listings)

	if opts.reset {
		if err := svc.Reset(ctx); err != nil {
			return err
		}
		logger.Info("Store reset")
	}

	results := svc.Import(ctx, records)
	for _, r := range results {
		if r.Status() != dombatch.StatusOK {
			logger.Warn("Listing rejected",
				zap.Int("index", r.Index()),
				zap.String("id", r.ID()),
				zap.Error(r.Err()),
			)
		}
	}

	total, err := store.Listings.Count(ctx)
	if err != nil {
		logger.Warn("Count failed", zap.Error(err))
	}

	sum := dombatch.Summarize(results)
	logger.Info("Import finished",
		zap.String("driver", store.Driver),
		zap.Int("ok", sum.OK),
		zap.Int("failed", sum.Failed),
		zap.Int("stored", total),
		zap.Duration("elapsed", time.Since(start)),
	)
	if sum.Failed > 0 && sum.OK == 0 {
		return fmt.Errorf("all %d listings failed", sum.Failed)
	}
	return nil
}
