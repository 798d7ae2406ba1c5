package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	BackendURL     string
	BackendTimeout time.Duration

	TaxRate decimal.Decimal

	// CartStore selects the persister: memory, file, sqlite or redis.
	CartStore  string
	CartDir    string
	SQLitePath string
	CartTTL    time.Duration
	CartIdle   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OrderLineConcurrency int

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	OTelEnabled     bool
	OTelEndpoint    string
	OTelInsecure    bool
	OTelSampleRatio float64
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 8081),

		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),

		TaxRate: getEnvDecimal("TAX_RATE", decimal.RequireFromString("0.21")),

		CartStore:  strings.ToLower(getEnv("CART_STORE", "file")),
		CartDir:    getEnv("CART_DIR", "./data/carts"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/storefront.db"),
		CartTTL:    getEnvDuration("CART_TTL", 30*24*time.Hour),
		CartIdle:   getEnvDuration("CART_IDLE", 30*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OrderLineConcurrency: getEnvInt("ORDER_LINE_CONCURRENCY", 4),

		BreakerMaxFailures: getEnvUint32("BREAKER_MAX_FAILURES", 5),
		BreakerOpenTimeout: getEnvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),

		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelInsecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OTelSampleRatio: getEnvFloat("OTEL_SAMPLER_RATIO", 0.1),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

// getEnvUint32 accepts positive counts only; zero, negative or out of range
// values fall back to def.
func getEnvUint32(key string, def uint32) uint32 {
	n, err := strconv.ParseUint(strings.TrimSpace(os.Getenv(key)), 10, 32)
	if err != nil || n == 0 {
		return def
	}
	return uint32(n)
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return b
}

func getEnvFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return def
	}
	return f
}

// getEnvDecimal accepts a rate such as 0.21. Negative values fall back to def.
func getEnvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d.IsNegative() {
		return def
	}
	return d
}
