// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Keys are built from the
// envPrefix/env tags on [StructuredConfig], for example:
//
//	CONFIG                      path of the JSON overlay file
//	APP_RECENT_LOGIN_WINDOW     recent-login window for statistics
//	APP_ARGON2_MEMORY           argon2id memory cost in KiB
//	STORAGE_DB_DRIVER           sqlite3 or pgx
//	STORAGE_DB_DATABASE_URI     SQLite file path or Postgres URL
//	LOGGER_FILE                 log file path
//	LOGGER_LEVEL                zerolog level
//
// Unset keys leave their fields zero so the builder can merge the layer
// over the defaults.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom is parseEnv over an explicit key/value set.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse environment config: %w", err)
	}

	return nil
}
