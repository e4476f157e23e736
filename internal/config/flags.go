package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"time"
)

// parseFlags parses all configuration flags from args (without the program
// name). Unset flags leave their fields zero so that merging keeps values
// from earlier sources.
//
// Flags:
//
//	-driver database driver: sqlite3 or pgx
//	-d database DSN (file path for sqlite3, URL for pgx)
//	-max-open-conns PostgreSQL pool size
//	-query-timeout per-call storage timeout (e.g., "5s")
//	-recent-login-window statistics window (e.g., "168h")
//	-argon2-memory argon2id memory cost in KiB
//	-argon2-time argon2id passes
//	-argon2-threads argon2id parallelism
//	-log-file log file path
//	-log-level log level
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	var driver, databaseDSN string
	var maxOpenConns int
	var queryTimeout, recentLoginWindow time.Duration
	var argonMemory, argonTime, argonThreads uint
	var logFile, logLevel string
	var jsonConfigPath string

	fs := flag.NewFlagSet("accounts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&driver, "driver", "", "Database driver (sqlite3 or pgx)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.IntVar(&maxOpenConns, "max-open-conns", 0, "PostgreSQL pool size")
	fs.DurationVar(&queryTimeout, "query-timeout", 0, "Storage call timeout (e.g., 5s)")
	fs.DurationVar(&recentLoginWindow, "recent-login-window", 0, "Recent login window (e.g., 168h)")
	fs.UintVar(&argonMemory, "argon2-memory", 0, "argon2id memory cost in KiB")
	fs.UintVar(&argonTime, "argon2-time", 0, "argon2id passes")
	fs.UintVar(&argonThreads, "argon2-threads", 0, "argon2id parallelism")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if argonMemory > math.MaxUint32 || argonTime > math.MaxUint32 {
		return nil, fmt.Errorf("error parsing flags: argon2 cost out of range")
	}
	if argonThreads > math.MaxUint8 {
		return nil, fmt.Errorf("error parsing flags: argon2 threads out of range")
	}

	return &StructuredConfig{
		App: App{
			RecentLoginWindow: recentLoginWindow,
			Argon2: Argon2{
				Memory:  uint32(argonMemory),
				Time:    uint32(argonTime),
				Threads: uint8(argonThreads),
			},
		},
		Storage: Storage{
			DB: DB{
				Driver:       driver,
				DSN:          databaseDSN,
				MaxOpenConns: maxOpenConns,
				QueryTimeout: queryTimeout,
			},
		},
		Logger: Logger{
			File:  logFile,
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
