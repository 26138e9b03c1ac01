package peoplefinder

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/peoplefinder/internal/db/redis"
	"github.com/kailas-cloud/peoplefinder/internal/domain"
	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/request"
	"github.com/kailas-cloud/peoplefinder/internal/repository/cache"
	employeerepo "github.com/kailas-cloud/peoplefinder/internal/repository/employee"
	"github.com/kailas-cloud/peoplefinder/internal/repository/locations"
	"github.com/kailas-cloud/peoplefinder/internal/repository/modelcache"
	openaiModel "github.com/kailas-cloud/peoplefinder/internal/transport/openai"
	healthuc "github.com/kailas-cloud/peoplefinder/internal/usecase/health"
	"github.com/kailas-cloud/peoplefinder/internal/usecase/interpret"
	searchuc "github.com/kailas-cloud/peoplefinder/internal/usecase/search"
	seeduc "github.com/kailas-cloud/peoplefinder/internal/usecase/seed"
)

const (
	defaultReadinessTimeout = 30 * time.Second
	clientName              = "peoplefinder-sdk"
)

// Client is the peoplefinder SDK entry point.
type Client struct {
	store     *dbRedis.Store
	cache     *dbRedis.Store
	searchSvc searchUseCase
	seedSvc   seedUseCase
	healthSvc healthUseCase
	universe  invalidator
	pageDef   int
	pageMax   int
	obs       *observer
}

// New creates a peoplefinder Client, connects to Redis and ensures the
// employee index exists. The provided context is used for the initial
// readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	cfg.withDefaults()

	if len(cfg.addrs) == 0 {
		return nil, errors.New("peoplefinder: database address required (use WithRedis)")
	}
	if cfg.model == nil && cfg.apiKey == "" {
		return nil, errors.New("peoplefinder: filter model required (use WithModel or WithOpenAI)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password, ClientName: clientName})
	if err != nil {
		return nil, fmt.Errorf("peoplefinder: create redis store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("peoplefinder: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, connectCache(ctx, cfg), cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

// connectCache returns a ready cache store, or nil when the cache is not
// configured or not reachable.
func connectCache(ctx context.Context, cfg *clientConfig) *dbRedis.Store {
	if len(cfg.cacheAddrs) == 0 {
		return nil
	}
	s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.cacheAddrs, Password: cfg.cachePassword, ClientName: clientName})
	if err != nil {
		return nil
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil
	}
	return s
}

func wireClient(
	ctx context.Context, store, cacheStore *dbRedis.Store, cfg *clientConfig, obs *observer,
) (*Client, error) {
	paths, cacheResults, locSteps := obs.pipeline()

	// A nil *dbRedis.Store in an interface is not nil.
	var (
		bestEffort  *cache.BestEffort
		cachePinger healthuc.Pinger
	)
	if cacheStore != nil {
		bestEffort = cache.New(cacheStore, cfg.cachePrefix, cacheResults, nil)
		cachePinger = cacheStore
	} else {
		bestEffort = cache.New(nil, cfg.cachePrefix, cacheResults, nil)
	}

	employees := employeerepo.New(store, cfg.keyPrefix)
	if err := employees.EnsureIndex(ctx); err != nil {
		if cacheStore != nil {
			cacheStore.Close()
		}
		return nil, fmt.Errorf("peoplefinder: ensure index: %w", err)
	}
	universe := locations.New(employees, bestEffort, 0, nil)

	base, checker := buildModel(cfg)
	model := modelcache.New(base, bestEffort, cfg.cacheTTL, interpret.HasJSONBlock, nil)

	builder := interpret.NewBuilder(interpret.NewLocationResolver(cfg.locationFloor, locSteps))
	seedSvc := seeduc.New(employees)
	if cfg.seedBatchSize > 0 {
		seedSvc = seedSvc.WithBatchSize(cfg.seedBatchSize)
	}

	return &Client{
		store:     store,
		cache:     cacheStore,
		searchSvc: searchuc.New(employees, universe, model, builder, paths),
		seedSvc:   seedSvc,
		healthSvc: healthuc.New(store, cachePinger, checker),
		universe:  universe,
		pageDef:   cfg.defaultPageSize,
		pageMax:   cfg.maxPageSize,
		obs:       obs,
	}, nil
}

// buildModel returns the filter model and, when it supports one, its
// health checker.
func buildModel(cfg *clientConfig) (domain.FilterModel, healthuc.ModelChecker) {
	if cfg.model != nil {
		if hc, ok := cfg.model.(domain.HealthChecker); ok {
			return cfg.model, hc
		}
		return cfg.model, nil
	}
	m := openaiModel.NewFilterModel(&openaiModel.Config{
		APIKey:      cfg.apiKey,
		BaseURL:     cfg.baseURL,
		Model:       cfg.modelName,
		Temperature: cfg.temperature,
		Timeout:     cfg.timeout,
	})
	return m, m
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search interprets a free-text query and returns one page of employees.
// Non-positive page and pageSize select the defaults. An empty query
// returns ErrInvalidQuery; a failing model provider returns
// ErrModelProviderError or ErrRateLimited.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (_ *Page, err error) {
	start := time.Now()
	var path string
	defer func() { c.obs.observe("search", start, err, "path", path) }()

	req, err := request.New(query, page, pageSize, c.pageDef, c.pageMax)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	res, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	path = string(res.Path())
	return pageFromDomain(&res), nil
}

// Seed validates and writes employees, returning the indexed count.
// With reset, existing employee data is dropped first.
func (c *Client) Seed(ctx context.Context, employees []Employee, reset bool) (_ int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("seed", start, err, "count", len(employees)) }()

	emps := make([]domemp.Employee, 0, len(employees))
	seen := make(map[int64]struct{}, len(employees))
	for i, e := range employees {
		if _, dup := seen[e.ID]; dup {
			return 0, fmt.Errorf("seed: employee %d: duplicate id %d", i, e.ID)
		}
		seen[e.ID] = struct{}{}
		d, err := employeeToDomain(e)
		if err != nil {
			return 0, fmt.Errorf("seed: employee %d: %w", i, err)
		}
		emps = append(emps, d)
	}

	n, err := c.seedSvc.Seed(ctx, emps, reset)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if c.universe != nil {
		c.universe.Invalidate(ctx)
	}
	return n, nil
}
