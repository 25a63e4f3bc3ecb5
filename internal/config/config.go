// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// Default values applied to the derived config views when a field was not
// provided by any source.
const (
	// DefaultAppVersion is used when no version was injected through the
	// build or the configuration sources.
	DefaultAppVersion = "dev"

	// DefaultRemoteAddress is the remote task server used when none is
	// configured. Matches the reference server's default listen address.
	DefaultRemoteAddress = "localhost:8080"

	// DefaultServerAddress is the reference server's listen address.
	DefaultServerAddress = "localhost:8080"

	// DefaultDatabasePath is the SQLite file holding the local task cache
	// and the durable operation queue.
	DefaultDatabasePath = "tasksync.db"

	// DefaultRequestTimeout bounds a single outbound remote call.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultStartupSyncTimeout bounds the initial fetch-and-merge at
	// startup; when it elapses the client proceeds with local data only.
	DefaultStartupSyncTimeout = 10 * time.Second

	// DefaultNetResampleInterval is how often the network monitor
	// re-samples the platform link state to catch missed transitions.
	DefaultNetResampleInterval = 3 * time.Second

	// DefaultSubscribeRetryInterval is the pause between reconnect
	// attempts of the remote snapshot subscription.
	DefaultSubscribeRetryInterval = 5 * time.Second

	// DefaultShutdownTimeout bounds the reference server's graceful stop.
	DefaultShutdownTimeout = 5 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// tasksync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the client persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the address and timeouts used to reach the remote
	// task server.
	Remote Remote `envPrefix:"REMOTE_"`

	// Server holds network address and timeout settings for the
	// reference server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the client persistence backend.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds settings for the local SQLite database.
type DB struct {
	// Path is the SQLite database file holding the task cache and the
	// durable operation queue. An in-memory database is rejected by
	// validation: queued operations must survive restarts.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Remote holds the client-side settings for reaching the remote server.
type Remote struct {
	// HTTPAddress is the base address of the remote task server, either
	// "host:port" or a full URL.
	// Env: REMOTE_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound
	// request (e.g. "10s", "1m").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SubscribeRetryInterval is the pause between reconnect attempts of
	// the snapshot subscription (e.g. "5s").
	// Env: REMOTE_SUBSCRIBE_RETRY_INTERVAL
	SubscribeRetryInterval time.Duration `env:"SUBSCRIBE_RETRY_INTERVAL"`
}

// Server holds network and timeout settings for the reference server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single
	// inbound request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds the graceful shutdown on SIGINT/SIGTERM.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for the client's background workers.
type Workers struct {
	// StartupSyncTimeout bounds the initial fetch-and-merge against the
	// remote; on expiry the client continues with local data only.
	// Env: WORKERS_STARTUP_SYNC_TIMEOUT
	StartupSyncTimeout time.Duration `env:"STARTUP_SYNC_TIMEOUT"`

	// NetResampleInterval is the network monitor's re-sample period.
	// Env: WORKERS_NET_RESAMPLE_INTERVAL
	NetResampleInterval time.Duration `env:"NET_RESAMPLE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following order
// (the first source to provide a value for a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
