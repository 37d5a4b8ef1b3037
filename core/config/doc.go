// Package config provides configuration management for the Koin Ledger.
//
// It utilizes Viper for loading configuration from environment variables
// and a local .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details (sqlite for tests)
//   - Feed: donation platform endpoint, key, page size and koin rate
//   - Storage: S3/MinIO credentials and bucket settings for ledger exports
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
