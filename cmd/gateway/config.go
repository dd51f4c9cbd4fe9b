package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"articles-gateway/articles/application"
	"articles-gateway/articles/infra"
	"articles-gateway/middleware/ratelimit"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

type config struct {
	listenAddr string

	githubOwner  string
	githubRepo   string
	githubBranch string
	githubToken  string
	githubAPIURL string
	articlesDir  string
	fetchMax     int

	rateEnabled bool
	rateBackend string
	rateRPS     float64
	rateBurst   int
	rateLimit   int
	ratePeriod  time.Duration
	keyHeader   string
	trustXFF    bool
	retryAfter  time.Duration
	addHeaders  bool

	redisAddr     string
	redisPassword string
	redisDB       int

	rateStatsEnabled   bool
	rateStatsBackend   string
	rateStatsPrefix    string
	rateStatsTTL       time.Duration
	rateStatsBucket    string
	rateStatsTrackKeys bool

	logLevel  string
	logFormat string
}

func (c config) needsRedis() bool {
	if !c.rateEnabled {
		return false
	}
	return c.rateBackend == backendRedis || (c.rateStatsEnabled && c.rateStatsBackend == backendRedis)
}

// loadDotenv carrega .env se existir. Variáveis já definidas no ambiente vencem.
func loadDotenv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")

	cfg.githubOwner = getenvDefault("GITHUB_OWNER", "xyt6151")
	cfg.githubRepo = getenvDefault("GITHUB_REPO", "whio-digital-site")
	cfg.githubBranch = getenvDefault("GITHUB_BRANCH", "main")
	cfg.githubToken = strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	cfg.githubAPIURL = getenvDefault("GITHUB_API_URL", infra.DefaultAPIURL)
	cfg.articlesDir = getenvDefault("ARTICLES_DIR", application.DefaultDir)
	cfg.fetchMax = getenvIntDefault("FETCH_CONCURRENCY", 0)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", true)
	cfg.rateBackend = strings.ToLower(getenvDefault("RATE_BACKEND", backendMemory))
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 10)
	cfg.rateBurst = getenvIntDefault("RATE_BURST", 20)
	cfg.rateLimit = getenvIntDefault("RATE_LIMIT", 100)
	cfg.ratePeriod = getenvDurationDefault("RATE_PERIOD", time.Minute)
	cfg.keyHeader = getenvDefault("RATE_KEY_HEADER", ratelimit.DefaultKeyHeader)
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.redisAddr = getenvDefault("REDIS_ADDR", "")
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)

	cfg.rateStatsEnabled = getenvBoolDefault("RATE_STATS_ENABLED", false)
	cfg.rateStatsBackend = strings.ToLower(getenvDefault("RATE_STATS_BACKEND", backendMemory))
	cfg.rateStatsPrefix = getenvDefault("RATE_STATS_PREFIX", "ratelimit:stats")
	cfg.rateStatsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.rateStatsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.rateStatsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	cfg.logLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.logFormat = getenvDefault("LOG_FORMAT", "json")

	if cfg.githubOwner == "" || cfg.githubRepo == "" {
		return config{}, errors.New("GITHUB_OWNER and GITHUB_REPO are required")
	}
	if cfg.fetchMax < 0 {
		return config{}, errors.New("FETCH_CONCURRENCY must be >= 0")
	}
	switch cfg.rateBackend {
	case backendMemory:
		if cfg.rateRPS <= 0 {
			return config{}, errors.New("RATE_RPS must be > 0")
		}
		if cfg.rateBurst <= 0 {
			return config{}, errors.New("RATE_BURST must be > 0")
		}
	case backendRedis:
		if cfg.rateLimit <= 0 {
			return config{}, errors.New("RATE_LIMIT must be > 0")
		}
		if cfg.ratePeriod <= 0 {
			return config{}, errors.New("RATE_PERIOD must be > 0")
		}
	default:
		return config{}, errors.New("RATE_BACKEND must be memory or redis")
	}
	if cfg.rateStatsBackend != backendMemory && cfg.rateStatsBackend != backendRedis {
		return config{}, errors.New("RATE_STATS_BACKEND must be memory or redis")
	}
	if cfg.needsRedis() && strings.TrimSpace(cfg.redisAddr) == "" {
		return config{}, errors.New("REDIS_ADDR is required for RATE_BACKEND=redis or RATE_STATS_BACKEND=redis")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
