// Package config holds the decompressor's settings contract: the tunables
// listed in the source's "Settings contract" plus the two profile
// constructors that populate them with sane defaults.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/adilg123/gzdecomp/internal/checksum"
	"github.com/adilg123/gzdecomp/internal/deflate"
)

// Options is the settings contract every decode session is configured
// with: buffer sizing, checksum verification, and the checksum
// implementation itself. MaxOutputBufferSize must be strictly greater
// than MinOutputBufferSize — the output window retains MinOutputBufferSize
// bytes of history on every slide, and if that equals its total capacity
// there's never any room left to produce into.
type Options struct {
	MaxOutputBufferSize int
	MinOutputBufferSize int
	InputBufferSize     int
	VerifyChecksum      bool
	Checksum            checksum.Trait
}

// DeflateConfig adapts Options to internal/deflate.Config.
func (o Options) DeflateConfig() deflate.Config {
	return deflate.Config{
		MaxOutputBufferSize: o.MaxOutputBufferSize,
		MinOutputBufferSize: o.MinOutputBufferSize,
		InputBufferSize:     o.InputBufferSize,
		Checksum:            o.Checksum,
	}
}

// Minimal returns the smallest workable profile: the RFC 1951 floor for
// back-reference addressability (32 KiB) with no checksum folding, for
// callers that only care about throughput.
func Minimal() Options {
	return Options{
		MaxOutputBufferSize: 40 * 1024,
		MinOutputBufferSize: 32 * 1024,
		InputBufferSize:     4096,
		VerifyChecksum:      false,
		Checksum:            checksum.Noop{},
	}
}

// Default returns the profile used by the CLI and HTTP server unless
// overridden: a generously sized output window plus CRC-32 verification.
func Default() Options {
	return Options{
		MaxOutputBufferSize: 256 * 1024,
		MinOutputBufferSize: 32 * 1024,
		InputBufferSize:     32 * 1024,
		VerifyChecksum:      true,
		Checksum:            checksum.NewCRC32(),
	}
}

// ServerConfig holds the HTTP server's own configuration, following the
// teacher's config.Load pattern: environment variables with defaults,
// optionally sourced from a .env file first.
type ServerConfig struct {
	Port        string
	Environment string
	MaxFileSize int64 // in bytes
}

// LoadServerConfig loads the HTTP server configuration from the process
// environment, first attempting to load a .env file (ignored if absent —
// godotenv.Load's error is only interesting in development).
func LoadServerConfig() *ServerConfig {
	_ = godotenv.Load()

	return &ServerConfig{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("GO_ENV", "development"),
		MaxFileSize: getEnvInt64("MAX_FILE_SIZE", 50*1024*1024),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
