package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a vault address (e.g. http://127.0.0.1:8200)
//	-t vault token
//	-root directory the tree walk starts from (e.g. secret/)
//	-request-timeout per-request timeout (e.g. "10s")
//	-driver transport driver: resty or vaultapi
//	-d local SQLite file for the remembered session
//	-log-level zerolog level name
//	-c/-config json file path with configs
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		address        string
		token          string
		rootPath       string
		requestTimeout time.Duration
		driver         string
		databaseDSN    string
		logLevel       string
		jsonConfigPath string
	)

	fs := flag.NewFlagSet("vault-browser", flag.ContinueOnError)
	fs.StringVar(&address, "a", "", "Vault address, e.g. http://127.0.0.1:8200")
	fs.StringVar(&token, "t", "", "Vault token")
	fs.StringVar(&rootPath, "root", "", "Root directory path, e.g. secret/")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s, 1m)")
	fs.StringVar(&driver, "driver", "", "Transport driver: resty or vaultapi")
	fs.StringVar(&databaseDSN, "d", "", "Local session database file")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{LogLevel: logLevel},
		Vault: Vault{
			Address:        address,
			Token:          token,
			RootPath:       rootPath,
			RequestTimeout: requestTimeout,
			Driver:         driver,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
