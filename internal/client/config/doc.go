// Package config loads runtime configuration for the foodlog terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: FOODLOG_SERVER_URL, FOODLOG_CLIENT_TIMEOUT.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the foodlog API
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "30s"
//	}
package config
