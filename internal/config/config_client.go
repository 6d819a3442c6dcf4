package config

import (
	"fmt"
	"time"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	// LogLevel is the zerolog level name used by the client logger.
	LogLevel string
}

// ClientAdapter holds the settings used by the transport layer.
type ClientAdapter struct {
	// Address is the base URL of the secret store API.
	Address string
	// Token is the bearer token supplied through configuration, if any.
	Token string
	// RequestTimeout is the timeout applied to every outbound request.
	RequestTimeout time.Duration
	// Driver selects the transport implementation.
	Driver string
}

// ClientSync holds tree synchronization settings.
type ClientSync struct {
	// RootPath is the directory every reload walks from.
	RootPath string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains process-level client settings.
	App ClientApp
	// Adapter contains the transport endpoint, credentials and timeouts.
	Adapter ClientAdapter
	// Sync contains tree walk settings.
	Sync ClientSync
	// Storage contains client storage settings.
	Storage ClientStorage
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{LogLevel: cfg.App.LogLevel},
		Adapter: ClientAdapter{
			Address:        cfg.Vault.Address,
			Token:          cfg.Vault.Token,
			RequestTimeout: cfg.Vault.RequestTimeout,
			Driver:         cfg.Vault.Driver,
		},
		Sync: ClientSync{RootPath: cfg.Vault.RootPath},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
	}
}
