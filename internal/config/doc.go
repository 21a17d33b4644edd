// Package config loads rastreo's configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order, later steps winning:
//
//  1. Built-in defaults
//  2. The TOML file at the given path, or ~/.config/rastreo/config.toml
//  3. Environment variables RASTREO_API_URL and RASTREO_LOG_LEVEL
//
// A missing file is not an error. Empty or whitespace-only values in the file
// keep the defaults. The cmd layer applies --api-url on top and calls
// Validate again.
//
// # TOML Format
//
//	api_url = "http://localhost:5000/api"
//	theme = "Nightfox"
//	log_file = "~/.local/state/rastreo/rastreo.log"
//	log_level = "info"
//	request_timeout = "10s"
//
// All fields are optional. Tilde expansion is performed for log_file.
// request_timeout uses Go duration syntax; zero or absent means requests are
// bounded only by application shutdown.
//
// # Validation
//
// The resolved Config is checked with go-playground/validator: api_url must be
// an http(s) URL, log_level one of trace/debug/info/warn/error, and
// request_timeout non-negative.
package config
