// Package config provides configuration management for Langusta.
//
// Values come from the environment, optionally seeded from a .env file, with defaults taken
// from the `default` struct tags of each section. Nested keys map to upper-case environment
// variables joined by underscores (langusta.default_language -> LANGUSTA_DEFAULT_LANGUAGE).
// List values such as LANGUSTA_LANGUAGES are comma separated.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key for write endpoints, limits
//   - Storage: S3/MinIO credentials and the bucket holding published documents
//   - Log: logging level and format
//   - Database: SQL version store connection (mysql or sqlite)
//   - Redis: Redis version store connection
//   - Langusta: platform, languages, value policy, baseline, remote source and store selection
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Langusta.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
