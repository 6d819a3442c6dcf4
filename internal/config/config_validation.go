// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Vault.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Adapter.Driver {
	case DriverResty, DriverVaultAPI:
	default:
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.RootPath == "" || !strings.HasSuffix(cfg.Sync.RootPath, "/") {
		return ErrInvalidSyncConfigs
	}

	return nil
}
