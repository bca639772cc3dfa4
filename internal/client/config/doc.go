// Package config loads runtime configuration for the buildpad CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-f string   local cache database file
//	-b string   remote backend: memory, postgres or dynamo
//	-p string   postgres DSN
//	-t string   session token
//	-i int      remote call timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "backend": "postgres",
//	  "postgres_dsn": "postgres://localhost:5432/buildpad",
//	  "session_token": "eyJ...",
//	  "call_timeout": "10s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
