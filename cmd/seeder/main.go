package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/config"
	dbRedis "github.com/kailas-cloud/peoplefinder/internal/db/redis"
	logpkg "github.com/kailas-cloud/peoplefinder/internal/logger"
	"github.com/kailas-cloud/peoplefinder/internal/repository/cache"
	employeerepo "github.com/kailas-cloud/peoplefinder/internal/repository/employee"
	"github.com/kailas-cloud/peoplefinder/internal/repository/locations"
	seeduc "github.com/kailas-cloud/peoplefinder/internal/usecase/seed"
	"github.com/kailas-cloud/peoplefinder/internal/version"
)

// clientName identifies the seeder's Redis connections.
const clientName = "peoplefinder-seeder"

type options struct {
	file      string
	reset     bool
	batchSize int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:     "seeder",
		Short:   "Load an employee JSON dataset into the peoplefinder store",
		Version: version.String(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "data/employees.json", "path to the employee dataset")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "drop the index, its documents and the location set first")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", seeduc.DefaultBatchSize, "employees written per round trip")
	return cmd
}

func run(ctx context.Context, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	emps, err := seeduc.Decode(f)
	if err != nil {
		return err
	}
	logger.Info("Loaded dataset", zap.String("file", opts.file), zap.Int("employees", len(emps)))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		ClientName: clientName,
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	repo := employeerepo.New(store, cfg.Database.KeyPrefix)
	start := time.Now()
	n, err := seeduc.New(repo).WithBatchSize(opts.batchSize).Seed(ctx, emps, opts.reset)
	if err != nil {
		logger.Error("Seeding failed", zap.Error(err))
		return err
	}

	logger.Info("Seeding complete",
		zap.Int("written", len(emps)),
		zap.Int("indexed", n),
		zap.Duration("duration", time.Since(start)),
	)

	invalidateLocations(ctx, cfg.Cache, repo, logger)
	return nil
}

// invalidateLocations drops the cached location universe so the API sees
// new locations before the cache TTL expires. An unreachable cache is
// logged and skipped.
func invalidateLocations(ctx context.Context, cfg config.CacheConfig, repo *employeerepo.Repo, logger *zap.Logger) {
	if !cfg.Enabled() {
		return
	}
	cs, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Addrs, Password: cfg.Password, ClientName: clientName})
	if err != nil {
		logger.Warn("Cache unavailable, cached locations not invalidated", zap.Error(err))
		return
	}
	defer cs.Close()
	if err := cs.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Cache not ready, cached locations not invalidated", zap.Error(err))
		return
	}

	bestEffort := cache.New(cs, cfg.KeyPrefix, nil, logger)
	locations.New(repo, bestEffort, 0, logger).Invalidate(ctx)
	logger.Info("Invalidated cached locations")
}
