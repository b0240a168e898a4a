// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the data source, comparison bounds, rate
// limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "comparador")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Data source kinds accepted by DATA_SOURCE.
const (
	SourceSQLite    = "sqlite"
	SourcePostgres  = "postgres"
	SourcePostgREST = "postgrest"
)

// DataSourceConfig selects and configures where rows are read from.
type DataSourceConfig struct {
	Kind        string // DATA_SOURCE: sqlite|postgres|postgrest
	DBPath      string // DB_PATH (sqlite)
	DatabaseURL string // DATABASE_URL (postgres)
	SeedPath    string // SEED_PATH, optional YAML fixture for sqlite/postgres

	PostgRESTURL        string        // POSTGREST_URL, e.g. https://xyz.supabase.co/rest/v1
	PostgRESTAPIKey     string        // POSTGREST_API_KEY
	PostgRESTTimeout    time.Duration // POSTGREST_TIMEOUT per request
	PostgRESTMaxRetries int           // POSTGREST_MAX_RETRIES on 429/5xx
	PostgRESTRPS        float64       // POSTGREST_RPS client-side budget (0 = unlimited)
}

// CompareConfig bounds comparison and search requests.
type CompareConfig struct {
	MinIDs             int // COMPARE_MIN_IDS
	MaxIDs             int // COMPARE_MAX_IDS
	SearchDefaultLimit int // SEARCH_DEFAULT_LIMIT
	SearchMaxLimit     int // SEARCH_MAX_LIMIT
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	ShutdownTimeout   time.Duration // graceful drain, e.g. 10s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	Source  DataSourceConfig
	Compare CompareConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result. Unparsable numbers and
// durations fall back to their defaults; out-of-range values are errors.
func Load() (Config, error) {
	cfg := Config{
		Port:              env("PORT", "8080"),
		ReadTimeout:       envDuration("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: envDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      envDuration("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       envDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxHeaderBytes:    envInt("MAX_HEADER_BYTES", 1<<20),
		GinMode:           ginMode(env("GIN_MODE", "release")),

		LogLevel:       logLevel(env("LOG_LEVEL", "info")),
		LogPretty:      envBool("LOG_PRETTY", false),
		SwaggerEnabled: envBool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(env("API_BASE_PATH", "/api/v1")),

		Source:  loadSource(),
		Compare: loadCompare(),

		RateRPS:   envFloat("RATE_RPS", 5.0),
		RateBurst: envInt("RATE_BURST", 10),

		CORS: CORSConfig{AllowedOrigins: splitCSV(env("CORS_ALLOWED_ORIGINS", ""))},
		Security: SecurityConfig{
			EnableHSTS: envBool("ENABLE_HSTS", false),
			HSTSMaxAge: envDuration("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		OTEL: OTELConfig{
			Enabled:     envBool("OTEL_ENABLED", false),
			Endpoint:    env("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: env("OTEL_SERVICE_NAME", "comparador"),
			SampleRatio: envFloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}
	return cfg, cfg.validate()
}

func loadSource() DataSourceConfig {
	return DataSourceConfig{
		Kind:                strings.ToLower(strings.TrimSpace(env("DATA_SOURCE", SourceSQLite))),
		DBPath:              env("DB_PATH", "comparador.db"),
		DatabaseURL:         env("DATABASE_URL", ""),
		SeedPath:            env("SEED_PATH", ""),
		PostgRESTURL:        strings.TrimRight(env("POSTGREST_URL", ""), "/"),
		PostgRESTAPIKey:     env("POSTGREST_API_KEY", ""),
		PostgRESTTimeout:    envDuration("POSTGREST_TIMEOUT", 10*time.Second),
		PostgRESTMaxRetries: envInt("POSTGREST_MAX_RETRIES", 2),
		PostgRESTRPS:        envFloat("POSTGREST_RPS", 10),
	}
}

func loadCompare() CompareConfig {
	return CompareConfig{
		MinIDs:             envInt("COMPARE_MIN_IDS", 2),
		MaxIDs:             envInt("COMPARE_MAX_IDS", 4),
		SearchDefaultLimit: envInt("SEARCH_DEFAULT_LIMIT", 10),
		SearchMaxLimit:     envInt("SEARCH_MAX_LIMIT", 50),
	}
}

// logLevel lowercases and maps the "warning" alias.
func logLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return "warn"
	}
	return s
}

// ginMode accepts debug, release and test; anything else means release.
func ginMode(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "debug", "release", "test":
		return s
	}
	return "release"
}

// validate reports the first invalid setting.
func (c Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	switch {
	case strings.TrimSpace(c.Port) == "":
		return errors.New("PORT must not be empty")
	case c.ReadTimeout <= 0, c.ReadHeaderTimeout <= 0, c.WriteTimeout <= 0, c.IdleTimeout <= 0, c.ShutdownTimeout <= 0:
		return errors.New("timeouts must be positive durations")
	case c.MaxHeaderBytes <= 0:
		return errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if err := c.Source.validate(); err != nil {
		return err
	}
	if err := c.Compare.validate(); err != nil {
		return err
	}
	switch {
	case c.RateRPS < 0:
		return errors.New("RATE_RPS must be >= 0")
	case c.RateBurst < 1:
		return errors.New("RATE_BURST must be >= 1")
	case c.Security.HSTSMaxAge < 0:
		return errors.New("HSTS_MAX_AGE must be >= 0")
	case c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1:
		return errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

func (s DataSourceConfig) validate() error {
	switch s.Kind {
	case SourceSQLite:
		if strings.TrimSpace(s.DBPath) == "" {
			return errors.New("DB_PATH must not be empty")
		}
	case SourcePostgres:
		if strings.TrimSpace(s.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	case SourcePostgREST:
		if s.PostgRESTURL == "" {
			return errors.New("POSTGREST_URL is required when DATA_SOURCE=postgrest")
		}
		if s.SeedPath != "" {
			return errors.New("SEED_PATH is not supported when DATA_SOURCE=postgrest")
		}
	default:
		return errors.New("DATA_SOURCE must be one of: sqlite, postgres, postgrest")
	}
	switch {
	case s.PostgRESTTimeout <= 0:
		return errors.New("POSTGREST_TIMEOUT must be > 0")
	case s.PostgRESTMaxRetries < 0:
		return errors.New("POSTGREST_MAX_RETRIES must be >= 0")
	case s.PostgRESTRPS < 0:
		return errors.New("POSTGREST_RPS must be >= 0")
	}
	return nil
}

// A comparison always covers 2 to 4 entities; operators may only narrow it.
const (
	minCompareIDs = 2
	maxCompareIDs = 4
)

func (c CompareConfig) validate() error {
	if c.MinIDs < minCompareIDs || c.MaxIDs < c.MinIDs || c.MaxIDs > maxCompareIDs {
		return fmt.Errorf("COMPARE_MIN_IDS/COMPARE_MAX_IDS must satisfy %d <= min <= max <= %d", minCompareIDs, maxCompareIDs)
	}
	if c.SearchDefaultLimit < 1 || c.SearchMaxLimit < c.SearchDefaultLimit {
		return errors.New("SEARCH_DEFAULT_LIMIT/SEARCH_MAX_LIMIT must satisfy 1 <= default <= max")
	}
	return nil
}

// env returns the value of k, or def when unset or empty.
func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envParse parses k with parse, falling back to def on absence or error.
func envParse[T any](k string, def T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		return def
	}
	return out
}

func envInt(k string, def int) int { return envParse(k, def, strconv.Atoi) }

func envFloat(k string, def float64) float64 {
	return envParse(k, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

func envDuration(k string, def time.Duration) time.Duration {
	return envParse(k, def, time.ParseDuration)
}

func envBool(k string, def bool) bool {
	return envParse(k, def, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "1", "true", "yes", "y", "on":
			return true, nil
		case "0", "false", "no", "n", "off":
			return false, nil
		}
		return false, errors.New("not a boolean")
	})
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing ones; empty
// means root.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
