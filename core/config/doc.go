// Package config provides configuration management for the font helper.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field in `default` struct
// tags and are registered reflectively, so every key can be overridden through
// the environment (server.port -> SERVER_PORT).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: listen address, worker pool size, timeouts, fault isolation
//   - Fonts: font directories to index, library directory, watching
//   - Log: logging level and format
//   - Database: font index cache (sqlite or MySQL)
//   - Storage: S3/MinIO bucket holding the shared font library
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Address())
//
// The returned *Config is never mutated after loading; it is passed by pointer
// to every request handler.
package config
