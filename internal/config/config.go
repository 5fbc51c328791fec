// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Import  ImportConfig
	Export  ExportConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 5m,
	// imports run synchronously inside the request)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// StoreConfig selects and configures the document store driver.
type StoreConfig struct {
	// Driver is the document store backend: memory, postgres, or surreal
	// (default: memory)
	Driver string `env:"STORE_DRIVER" default:"memory"`

	// PostgresURL is the connection string, required when Driver is postgres.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	PostgresURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// SurrealURL is the SurrealDB RPC endpoint, required when Driver is
	// surreal (ws://host:8000/rpc)
	SurrealURL string `env:"SURREAL_URL"`

	// SurrealNamespace is the SurrealDB namespace (default: balagh)
	SurrealNamespace string `env:"SURREAL_NAMESPACE" default:"balagh"`

	// SurrealDatabase is the SurrealDB database (default: admin)
	SurrealDatabase string `env:"SURREAL_DATABASE" default:"admin"`

	// SurrealUser is the SurrealDB user (default: root)
	SurrealUser string `env:"SURREAL_USER" default:"root"`

	// SurrealPass is the SurrealDB password
	SurrealPass string `env:"SURREAL_PASS"`
}

// ImportConfig holds workbook import settings.
type ImportConfig struct {
	// MaxWorkbookBytes is the maximum accepted workbook upload size
	// (default: 50MB)
	MaxWorkbookBytes int64 `env:"IMPORT_MAX_WORKBOOK_BYTES" default:"52428800"`

	// ErrorPreview is how many per-row errors appear in summary strings
	// before the "and K more" suffix (default: 5)
	ErrorPreview int `env:"IMPORT_ERROR_PREVIEW" default:"5"`
}

// ExportConfig holds export flattening settings.
type ExportConfig struct {
	// CellCeiling is the maximum exported cell length (default: 32000)
	CellCeiling int `env:"EXPORT_CELL_CEILING" default:"32000"`

	// MaxColumnWidth caps derived column display widths (default: 80)
	MaxColumnWidth int `env:"EXPORT_MAX_COLUMN_WIDTH" default:"80"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
