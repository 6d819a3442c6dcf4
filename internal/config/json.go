package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Vault struct {
		Address        string   `json:"address"`
		Token          string   `json:"token"`
		RootPath       string   `json:"root_path"`
		RequestTimeout Duration `json:"request_timeout"`
		Driver         string   `json:"driver"`
	} `json:"vault,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{LogLevel: jsonCfg.App.LogLevel},
		Vault: Vault{
			Address:        jsonCfg.Vault.Address,
			Token:          jsonCfg.Vault.Token,
			RootPath:       jsonCfg.Vault.RootPath,
			RequestTimeout: time.Duration(jsonCfg.Vault.RequestTimeout),
			Driver:         jsonCfg.Vault.Driver,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
