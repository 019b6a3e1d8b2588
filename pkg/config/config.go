package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// AuthRateLimit uses the limiter format, e.g. "5-M" for five per minute.
	AuthRateLimit string

	// Redis backs the distributed lock for background jobs. Empty means the
	// jobs run without a lock (single-instance deployments).
	RedisURL string

	// Background job toggles
	EnableJobs  bool
	JobInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "exchange-backend")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ENABLE_JOBS", true)
	viper.SetDefault("JOB_INTERVAL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.EnableJobs = viper.GetBool("ENABLE_JOBS")

	jobIntervalStr := viper.GetString("JOB_INTERVAL")
	jobInterval, err := time.ParseDuration(jobIntervalStr)
	if err != nil {
		jobInterval = time.Hour
		log.Printf("Warning: Invalid value for JOB_INTERVAL ('%s'). Defaulting to %s.\n", jobIntervalStr, jobInterval.String())
	}
	cfg.JobInterval = jobInterval

	return cfg, nil
}
