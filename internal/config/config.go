// Package config provides application configuration loaded from environment
// variables with defaults and validation. The same Config is shared by all
// five services; each binary reads the subset it needs (every service uses
// the server and logging settings, the stores add a database path, the
// cache mirror adds Redis settings, and the gateway adds downstream URLs).
package config

import (
	"errors"
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
	ServiceName string  // OTEL_SERVICE_NAME; defaults to the binary's service name
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// RedisConfig defines the connection settings for the cache mirror backend.
type RedisConfig struct {
	Addr     string // REDIS_ADDR, host:port
	Password string // REDIS_PASSWORD
	DB       int    // REDIS_DB
}

// GatewayConfig holds the downstream base URLs and orchestration knobs used
// only by the gateway binary.
type GatewayConfig struct {
	UserServiceURL    string        // USER_SERVICE_URL
	CallServiceURL    string        // CALL_SERVICE_URL
	LoggingServiceURL string        // LOGGING_SERVICE_URL
	CacheServiceURL   string        // CALLCACHE_SERVICE_URL (unused by the gateway; kept for parity with deployment env)
	UpstreamTimeout   time.Duration // UPSTREAM_TIMEOUT; 0 means no timeout on outbound calls
	CallLogDuration   int           // GATEWAY_CALL_LOG_DURATION, seconds logged per call
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Stores
	DBPath             string // SQLite path for the service's own table(s)
	CallUniqueUsername bool   // CALL_UNIQUE_USERNAME: enforce one call row per username

	// Cache mirror
	Redis RedisConfig

	// Gateway
	Gateway GatewayConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
// defaultService is used when OTEL_SERVICE_NAME is unset.
func MustLoad(defaultService string) Config {
	cfg, err := Load(defaultService)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load(defaultService string) (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Stores
		DBPath:             getenv("DB_PATH", "app.db"),
		CallUniqueUsername: getbool("CALL_UNIQUE_USERNAME", false),

		// Cache mirror
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
		},

		// Gateway
		Gateway: GatewayConfig{
			UserServiceURL:    getenv("USER_SERVICE_URL", ""),
			CallServiceURL:    getenv("CALL_SERVICE_URL", ""),
			LoggingServiceURL: getenv("LOGGING_SERVICE_URL", ""),
			CacheServiceURL:   getenv("CALLCACHE_SERVICE_URL", ""),
			UpstreamTimeout:   getdur("UPSTREAM_TIMEOUT", 0),
			CallLogDuration:   getint("GATEWAY_CALL_LOG_DURATION", 0),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", defaultService),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.Gateway.UpstreamTimeout < 0 {
		return cfg, errors.New("UPSTREAM_TIMEOUT must be >= 0")
	}
	if cfg.Gateway.CallLogDuration < 0 {
		return cfg, errors.New("GATEWAY_CALL_LOG_DURATION must be >= 0")
	}
	if cfg.Redis.DB < 0 {
		return cfg, errors.New("REDIS_DB must be >= 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ValidateGateway checks the fields only the gateway binary depends on.
// The store URLs have no usable defaults, so the gateway refuses to start
// without them instead of failing on the first proxied request.
func (c Config) ValidateGateway() error {
	if strings.TrimSpace(c.Gateway.UserServiceURL) == "" {
		return errors.New("USER_SERVICE_URL must not be empty")
	}
	if strings.TrimSpace(c.Gateway.CallServiceURL) == "" {
		return errors.New("CALL_SERVICE_URL must not be empty")
	}
	if strings.TrimSpace(c.Gateway.LoggingServiceURL) == "" {
		return errors.New("LOGGING_SERVICE_URL must not be empty")
	}
	return nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
