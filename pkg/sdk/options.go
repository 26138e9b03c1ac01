package peoplefinder

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs     []string
	password  string
	keyPrefix string

	cacheAddrs    []string
	cachePassword string
	cachePrefix   string
	cacheTTL      time.Duration

	model       Model
	apiKey      string
	baseURL     string
	modelName   string
	temperature float32
	timeout     time.Duration

	defaultPageSize int
	maxPageSize     int
	locationFloor   float64
	seedBatchSize   int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the employee store connection.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces the index and employee keys.
// Default: "peoplefinder:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCache enables the best-effort cache for model responses and the
// location universe. An unreachable cache disables caching silently.
func WithCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithCacheTTL sets how long model responses stay cached. Default: 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithModel sets a custom filter model. It takes precedence over WithOpenAI.
func WithModel(m Model) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = m
	})
}

// WithOpenAI configures an OpenAI-compatible chat completion provider.
// Empty baseURL and model select the Groq defaults.
func WithOpenAI(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
		c.modelName = model
	})
}

// WithModelTimeout bounds each model call. Default: 10s.
func WithModelTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithPageSizes sets the default and maximum page sizes. Defaults: 20 and 100.
func WithPageSizes(def, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = def
		c.maxPageSize = maxSize
	})
}

// WithLocationFloor sets the minimum Jaro-Winkler score for a fuzzy
// location match. Default: 0.85.
func WithLocationFloor(floor float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.locationFloor = floor
	})
}

// WithSeedBatchSize sets how many employees are written per pipeline.
// Default: 500.
func WithSeedBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.seedBatchSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

func (c *clientConfig) withDefaults() {
	if c.keyPrefix == "" {
		c.keyPrefix = "peoplefinder:"
	}
	if c.cachePrefix == "" {
		c.cachePrefix = c.keyPrefix + "cache:"
	}
	if c.defaultPageSize <= 0 {
		c.defaultPageSize = 20
	}
	if c.maxPageSize <= 0 {
		c.maxPageSize = 100
	}
}
