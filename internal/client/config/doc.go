// Package config loads runtime configuration for the admin panel client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, everything else as JSON.
//  3. The ADMINPANEL_TOKEN environment variable (bearer credential).
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the upstream API
//	-s int      users page size
//	-i int      countdown tick interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "1s" or
// integer nanoseconds:
//
//	server_url: http://127.0.0.1:5000/api
//	page_size: 20
//	tick_interval: 1s
//	request_timeout: 15s
//	log_level: debug
//	log_format: json
package config
