// Package config provides runtime configuration values for the product clients.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the products collection served by a local json-server.
const DefaultAPIURL = "http://localhost:3000/products"

// Config holds configuration knobs for the front-ends and the sandbox server.
type Config struct {
	APIURL          string
	APITimeout      time.Duration
	WebAddr         string
	SandboxAddr     string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func levelenv(key string, def slog.Level) slog.Level {
	v := strings.TrimSpace(getenv(key, ""))
	if v == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return def
	}
	return lvl
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		APIURL:          strings.TrimRight(getenv("PRODUCTS_API_URL", DefaultAPIURL), "/"),
		APITimeout:      durenvms("API_TIMEOUT_MS", 0),
		WebAddr:         getenv("WEB_ADDR", ":8080"),
		SandboxAddr:     getenv("SANDBOX_ADDR", ":3000"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		LogLevel:        levelenv("LOG_LEVEL", slog.LevelInfo),
	}
}
