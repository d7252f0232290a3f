package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":9000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout enforced by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile string // optional YAML file of books created at startup

	RateLimitBurst  int      // per-IP burst on /books, 0 disables rate limiting
	RateLimitPerMin int      // per-IP refill rate
	TrustProxy      bool     // true => trust X-Forwarded-For headers
	AllowedCIDRS    []string // optional, restrict /readyz to these IPs/CIDRs

	// Change feed (disabled when RedisAddr is empty)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisStream         string        // stream key receiving change events
	RedisStreamMaxLen   int           // approximate stream trim length
	RedisDT             time.Duration // Redis dial timeout
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries (grows exponentially)
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPublishTimeout time.Duration // timeout for a single event publish
}

// FeedEnabled reports whether a change feed is configured.
func (c *Config) FeedEnabled() bool {
	return c.RedisAddr != ""
}

// Load reads the configuration from the environment. Variables found in
// the optional env file (BOOKSHELF_ENV_FILE, default ".env") fill in what
// the environment does not already define.
func Load() *Config {
	loadEnvFile(getenv("BOOKSHELF_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKSHELF_LISTEN_PORT", ":9000"),
		ShutdownTimeout: mustDuration("BOOKSHELF_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BOOKSHELF_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("BOOKSHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKSHELF_PRETTY_LOG", true),

		SeedFile: getenv("BOOKSHELF_SEED_FILE", ""),

		// Access restrictions
		RateLimitBurst:  nonNegative(getenvInt("BOOKSHELF_RATE_LIMIT_BURST", 0)),
		RateLimitPerMin: getenvInt("BOOKSHELF_RATE_LIMIT_PER_MIN", 60),
		TrustProxy:      mustBool("BOOKSHELF_TRUST_PROXY", false),
		AllowedCIDRS:    splitAndTrim(getenv("BOOKSHELF_ALLOWED_CIDRS", "")),

		// Redis settings
		RedisAddr:           getenv("BOOKSHELF_REDIS_ADDR", ""),
		RedisUser:           getenv("BOOKSHELF_REDIS_USERNAME", ""),
		RedisPassword:       getenv("BOOKSHELF_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BOOKSHELF_REDIS_DB", 0),
		RedisStream:         getenv("BOOKSHELF_REDIS_STREAM", "bookshelf:events"),
		RedisStreamMaxLen:   getenvInt("BOOKSHELF_REDIS_STREAM_MAXLEN", 10000),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPublishTimeout: mustDuration("REDIS_PUBLISH_TIMEOUT", 2*time.Second),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// loadEnvFile applies path when it exists; a missing file is not an error.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load env file %s: %v\n", path, err)
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
