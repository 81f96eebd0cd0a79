// Package cliconfig resolves CLI defaults from LISTD_* environment
// variables so flags, env, and built-in defaults layer predictably.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvServerURL = "LISTD_SERVER_URL"
	EnvHost      = "LISTD_HOST"
	EnvPort      = "LISTD_PORT"
	EnvAPIKey    = "LISTD_API_KEY"
	EnvConfig    = "LISTD_CONFIG"
	EnvLogLevel  = "LISTD_LOG_LEVEL"
	EnvLogFormat = "LISTD_LOG_FORMAT"
)

// Built-in defaults.
const (
	DefaultHost = "localhost"
	DefaultPort = 4280
)

// GetServerURL returns the daemon base URL: LISTD_SERVER_URL if set,
// otherwise built from the host and port defaults.
func GetServerURL() string {
	if v := os.Getenv(EnvServerURL); v != "" {
		return v
	}
	return fmt.Sprintf("http://%s:%d", GetHost(), GetPort())
}

// GetHost returns LISTD_HOST or the default host.
func GetHost() string {
	if v := os.Getenv(EnvHost); v != "" {
		return v
	}
	return DefaultHost
}

// GetPort returns LISTD_PORT or the default port. Unparsable values fall
// back to the default rather than failing.
func GetPort() int {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}
	return DefaultPort
}

// GetAPIKey returns LISTD_API_KEY or empty (no auth).
func GetAPIKey() string {
	return os.Getenv(EnvAPIKey)
}

// GetConfigFile returns LISTD_CONFIG or empty.
func GetConfigFile() string {
	return os.Getenv(EnvConfig)
}

// GetLogLevel returns LISTD_LOG_LEVEL or empty (defaults to info later).
func GetLogLevel() string {
	return os.Getenv(EnvLogLevel)
}

// GetLogFormat returns LISTD_LOG_FORMAT or empty (defaults to text later).
func GetLogFormat() string {
	return os.Getenv(EnvLogFormat)
}
