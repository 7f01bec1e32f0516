package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasexample/annotator"
	"github.com/erraggy/oasexample/sampler"
)

// Environment variables read by loadConfig.
const (
	envCacheEnabled       = "OASEXAMPLE_CACHE_ENABLED"
	envCacheMaxSize       = "OASEXAMPLE_CACHE_MAX_SIZE"
	envCacheFileTTL       = "OASEXAMPLE_CACHE_FILE_TTL"
	envCacheURLTTL        = "OASEXAMPLE_CACHE_URL_TTL"
	envCacheContentTTL    = "OASEXAMPLE_CACHE_CONTENT_TTL"
	envCacheSweepInterval = "OASEXAMPLE_CACHE_SWEEP_INTERVAL"
	envMaxInlineSize      = "OASEXAMPLE_MAX_INLINE_SIZE"
	envAllowPrivateIPs    = "OASEXAMPLE_ALLOW_PRIVATE_IPS"
	envFetchTimeout       = "OASEXAMPLE_FETCH_TIMEOUT"
	envMaxDepth           = "OASEXAMPLE_MAX_DEPTH"
	envMaxConcurrency     = "OASEXAMPLE_MAX_CONCURRENCY"
	envCorrectRequiredKey = "OASEXAMPLE_CORRECT_REQUIRED_KEY"
)

var configEnvKeys = []string{
	envCacheEnabled, envCacheMaxSize, envCacheFileTTL, envCacheURLTTL,
	envCacheContentTTL, envCacheSweepInterval, envMaxInlineSize, envAllowPrivateIPs,
	envFetchTimeout, envMaxDepth, envMaxConcurrency, envCorrectRequiredKey,
}

// serverConfig holds the server defaults. Tool inputs override the
// annotation settings per call.
type serverConfig struct {
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	MaxInlineSize   int64
	AllowPrivateIPs bool
	FetchTimeout    time.Duration

	MaxDepth           int
	MaxConcurrency     int
	CorrectRequiredKey bool
}

var cfg = loadConfig()

// loadConfig reads the environment. Unset variables keep their default;
// unparsable or non-positive values log a warning and keep it too.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       fromEnv(envCacheEnabled, true, strconv.ParseBool),
		CacheMaxSize:       fromEnv(envCacheMaxSize, 10, positive(strconv.Atoi)),
		CacheFileTTL:       fromEnv(envCacheFileTTL, 15*time.Minute, positive(time.ParseDuration)),
		CacheURLTTL:        fromEnv(envCacheURLTTL, 5*time.Minute, positive(time.ParseDuration)),
		CacheContentTTL:    fromEnv(envCacheContentTTL, 15*time.Minute, positive(time.ParseDuration)),
		CacheSweepInterval: fromEnv(envCacheSweepInterval, time.Minute, positive(time.ParseDuration)),
		MaxInlineSize:      fromEnv(envMaxInlineSize, int64(10<<20), positive(parseInt64)),
		AllowPrivateIPs:    fromEnv(envAllowPrivateIPs, false, strconv.ParseBool),
		FetchTimeout:       fromEnv(envFetchTimeout, 30*time.Second, positive(time.ParseDuration)),
		MaxDepth:           fromEnv(envMaxDepth, sampler.DefaultMaxDepth, positive(strconv.Atoi)),
		MaxConcurrency:     fromEnv(envMaxConcurrency, annotator.DefaultMaxConcurrency, positive(strconv.Atoi)),
		CorrectRequiredKey: fromEnv(envCorrectRequiredKey, false, strconv.ParseBool),
	}
}

func fromEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid environment value, using default", "key", key, "value", raw, "default", fallback, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}

type number interface {
	~int | ~int64
}

// positive rejects zero and negative results of parse.
func positive[T number](parse func(string) (T, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			return v, err
		}
		if v <= 0 {
			return v, strconv.ErrRange
		}
		return v, nil
	}
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
