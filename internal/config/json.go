package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// human-readable durations.
type StructuredJSONConfig struct {
	App struct {
		RecentLoginWindow Duration `json:"recent_login_window"`
		Argon2            struct {
			Memory     uint32 `json:"memory"`
			Time       uint32 `json:"time"`
			Threads    uint8  `json:"threads"`
			SaltLength uint32 `json:"salt_length"`
			KeyLength  uint32 `json:"key_length"`
		} `json:"argon2"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver       string   `json:"driver"`
			DSN          string   `json:"dsn"`
			MaxOpenConns int      `json:"max_open_conns"`
			QueryTimeout Duration `json:"query_timeout"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Logger struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"logger,omitempty"`
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
		App: App{
			RecentLoginWindow: time.Duration(jsonCfg.App.RecentLoginWindow),
			Argon2: Argon2{
				Memory:     jsonCfg.App.Argon2.Memory,
				Time:       jsonCfg.App.Argon2.Time,
				Threads:    jsonCfg.App.Argon2.Threads,
				SaltLength: jsonCfg.App.Argon2.SaltLength,
				KeyLength:  jsonCfg.App.Argon2.KeyLength,
			},
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
				QueryTimeout: time.Duration(jsonCfg.Storage.DB.QueryTimeout),
			},
		},
		Logger: Logger{
			File:  jsonCfg.Logger.File,
			Level: jsonCfg.Logger.Level,
		},
		JSONFilePath: "",
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
