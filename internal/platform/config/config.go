package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	SQLitePath        string
	Port              string
	IsProduction      bool
	ReportingCurrency string
	MigrationsPath    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("SQLITE_PATH", "portfolio.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("REPORTING_CURRENCY", "CHF")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.AutomaticEnv()

	cfg := &Config{
		SQLitePath:        viper.GetString("SQLITE_PATH"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		ReportingCurrency: viper.GetString("REPORTING_CURRENCY"),
		MigrationsPath:    viper.GetString("MIGRATIONS_PATH"),
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "portfolio.db"
		log.Printf("Warning: SQLITE_PATH environment variable not set. Defaulting to %s\n", cfg.SQLitePath)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.ReportingCurrency == "" {
		cfg.ReportingCurrency = "CHF"
		log.Printf("Warning: REPORTING_CURRENCY not set. Defaulting to %s.\n", cfg.ReportingCurrency)
	}

	return cfg, nil
}
