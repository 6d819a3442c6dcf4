// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Default values applied to every field that no source has set.
const (
	DefaultRootPath       = "secret/"
	DefaultDriver         = DriverResty
	DefaultRequestTimeout = 30 * time.Second
	DefaultDSN            = "vault-browser.db"
	DefaultLogLevel       = "debug"
)

// Supported transport drivers.
const (
	// DriverResty talks to the API with go-resty.
	DriverResty = "resty"
	// DriverVaultAPI talks to the API with the official hashicorp/vault/api client.
	DriverVaultAPI = "vaultapi"
)

// StructuredConfig is the top-level configuration container for the
// vault-browser client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log level.
	App App `envPrefix:"APP_"`

	// Vault holds the endpoint, credentials and transport settings used to
	// reach the secret store.
	Vault Vault `envPrefix:"VAULT_"`

	// Storage holds configuration for the local persistence of client state.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Vault holds settings of the secret store endpoint.
type Vault struct {
	// Address is the base URL of the API (e.g. "http://127.0.0.1:8200").
	// May be left empty and entered on the login screen instead.
	// Env: VAULT_ADDRESS
	Address string `env:"ADDRESS"`

	// Token is the bearer token sent in X-Vault-Token. When set it takes
	// precedence over the token remembered from the previous session.
	// Env: VAULT_TOKEN
	Token string `env:"TOKEN"`

	// RootPath is the directory the tree walk starts from. Must end with "/".
	// Env: VAULT_ROOT_PATH
	RootPath string `env:"ROOT_PATH"`

	// RequestTimeout bounds every single outbound request (e.g. "10s").
	// Env: VAULT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Driver selects the transport implementation: "resty" or "vaultapi".
	// Env: VAULT_DRIVER
	Driver string `env:"DRIVER"`
}

// Storage groups the configuration for client-side persistence.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path the session state is persisted to.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left unset by every source receive the package defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: DefaultLogLevel},
		Vault: Vault{
			RootPath:       DefaultRootPath,
			RequestTimeout: DefaultRequestTimeout,
			Driver:         DefaultDriver,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
	}
}
