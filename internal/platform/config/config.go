package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultWriteRateLimit is the per-IP rate applied to mutation endpoints
// when WRITE_RATE_LIMIT is unset or unparsable (ulule/limiter format).
const DefaultWriteRateLimit = "120-M"

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	Port             string
	IsProduction     bool
	StaticDir        string
	CORSAllowOrigins []string
	WriteRateLimit   string
	Timezone         string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STATIC_DIR", "static")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("WRITE_RATE_LIMIT", DefaultWriteRateLimit)
	// IANA zone name deciding when the business day rolls over, e.g.
	// "America/Fortaleza". "Local" follows the server clock.
	viper.SetDefault("TIMEZONE", "Local")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.StaticDir = viper.GetString("STATIC_DIR")
	cfg.WriteRateLimit = viper.GetString("WRITE_RATE_LIMIT")
	cfg.Timezone = viper.GetString("TIMEZONE")

	origins := viper.GetString("CORS_ALLOW_ORIGINS")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, trimmed)
		}
	}
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = []string{"*"}
	}

	return cfg, nil
}
