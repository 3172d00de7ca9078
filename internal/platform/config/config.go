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
	// Listing cache
	RedisAddr string // Empty disables the cache
	CacheTTL  time.Duration
	// Rate limiting, in ulule/limiter format (e.g. "100-M")
	RateLimit string
	// Single-office login gate
	AdminUser         string
	AdminPasswordHash string // bcrypt hash
}

// LoadConfig loads configuration from environment variables and .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "garage-invoice-app")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CACHE_TTL", "60s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ADMIN_USER", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

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
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Listing cache disabled.")
	}

	cacheTTLStr := viper.GetString("CACHE_TTL")
	cacheTTL, err := time.ParseDuration(cacheTTLStr)
	if err != nil {
		cacheTTL = 60 * time.Second
		log.Printf("Warning: Invalid value for CACHE_TTL ('%s'). Defaulting to %s.\n", cacheTTLStr, cacheTTL)
	}
	cfg.CacheTTL = cacheTTL

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.AdminUser = viper.GetString("ADMIN_USER")
	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Login will be rejected until configured.")
	}

	return cfg, nil
}
