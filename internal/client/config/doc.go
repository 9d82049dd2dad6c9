// Package config loads runtime configuration for the dbdbedit client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog site
//	-s string   page snapshot file (YAML or JSON)
//	-t int      per-request timeout (seconds)
//	-k string   CSRF token to use when the catalog has not issued a cookie
//	-l string   log level (debug, info, warn, error)
//	-m int      minimum autocomplete query length
//	-r          single-valued tag sets: replace the selected tag instead of ignoring the pick
//
// # JSON schema
//
//	{
//	  "catalog_url": "https://dbdb.io",
//	  "snapshot_file": "sqlite.yaml",
//	  "request_timeout": "30s",
//	  "csrf_token": "",
//	  "log_level": "info",
//	  "autocomplete_min_length": 3,
//	  "replace_single": false
//	}
//
// request_timeout accepts a duration string or integer nanoseconds.
package config
