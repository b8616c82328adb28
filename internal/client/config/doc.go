// Package config loads runtime configuration for the coursekeeper CLI.
//
// # Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml/.yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # File schema
//
// Intervals use timex.Duration, so they can be strings like "5s" or bare
// numbers of seconds, the same unit as the -t flag:
//
//	data_path: /var/lib/coursekeeper/store.db
//	storage_driver: sqlite
//	busy_timeout: 5s
//	catalog_path: courses.yaml
//	completion_scope: global
//	hash_passwords: false
//	log_level: warn
//	log_backend: slog
//
// Environment variables are not read.
package config
