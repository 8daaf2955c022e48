package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Auth        AuthConfig
	Payments    PaymentsConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret          string
	TokenExpiryMinutes int
}

type PaymentsConfig struct {
	StripeAPIKey string
	SuccessURL   string
	CancelURL    string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", "1440")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "panobu"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnvOrViper("JWT_SECRET", ""),
			TokenExpiryMinutes: viper.GetInt("TOKEN_EXPIRY_MINUTES"),
		},
		Payments: PaymentsConfig{
			StripeAPIKey: getEnvOrViper("STRIPE_API_KEY", ""),
			SuccessURL:   getEnvOrViper("PAYMENT_SUCCESS_URL", "https://panobu.com/odeme/basarili"),
			CancelURL:    getEnvOrViper("PAYMENT_CANCEL_URL", "https://panobu.com/odeme/iptal"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields. The Stripe key is checked where the payment
	// provider is constructed, so tools that never touch payments can run
	// without one.
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
