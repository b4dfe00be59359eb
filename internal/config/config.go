package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by storage.Module.
const (
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	StoreBackend    string
	DatabaseURI     string
	StoreURL        string
	StoreKey        string
	StoreTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	CORSOrigins     []string
	MaxBodyBytes    int64
}

const (
	defaultRunAddress      = ":8000"
	defaultStoreBackend    = BackendPostgres
	defaultStoreTimeout    = 10 * time.Second
	defaultRequestTimeout  = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultCORSOrigins     = "*"
	defaultMaxBodyBytes    = 1 << 20
	defaultEnvFile         = ".env"
)

// Load reads an optional dotenv file, then parses configuration from
// environment variables and flags. Real environment wins over the file.
func Load() (*Config, error) {
	envFile := getString(os.LookupEnv, "ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		StoreBackend:    getString(lookup, "STORE_BACKEND", defaultStoreBackend),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		StoreURL:        getString(lookup, "STORE_URL", ""),
		StoreKey:        getString(lookup, "STORE_KEY", ""),
		StoreTimeout:    getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		RequestTimeout:  getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		MaxBodyBytes:    getInt64(lookup, "MAX_BODY_BYTES", defaultMaxBodyBytes),
	}

	fs := flag.NewFlagSet("gymrat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		storeTimeoutStr    = cfg.StoreTimeout.String()
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOrigins        = getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Store backend: postgres or rest")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StoreURL, "store-url", cfg.StoreURL, "Hosted REST store endpoint")
	fs.StringVar(&cfg.StoreKey, "store-key", cfg.StoreKey, "Hosted REST store access key")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "REST store client timeout")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Per request deadline")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated allowed CORS origins")
	fs.Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "Maximum request body size in bytes")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if keyFile, ok := lookup("STORE_KEY_FILE"); ok && keyFile != "" {
		content, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read store key file: %w", err)
		}
		cfg.StoreKey = strings.TrimSpace(string(content))
	}

	cfg.CORSOrigins = splitList(corsOrigins)
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	switch cfg.StoreBackend {
	case BackendPostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided")
		}
	case BackendREST:
		if cfg.StoreURL == "" {
			return nil, fmt.Errorf("store URL must be provided")
		}
		if cfg.StoreKey == "" {
			return nil, fmt.Errorf("store key must be provided")
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
