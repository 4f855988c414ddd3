package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Document store backend: "firebase", "mongo" or "memory".
	StoreBackend string `mapstructure:"STORE_BACKEND"`

	// Firebase Realtime Database configuration.
	FirebaseDatabaseURL    string `mapstructure:"FIREBASE_DATABASE_URL"`
	FirebaseCredentialFile string `mapstructure:"FIREBASE_CREDENTIAL_FILE"`
	// Poll interval (seconds) for live subscriptions on the Firebase backend.
	FirebasePollSeconds int `mapstructure:"FIREBASE_POLL_SECONDS"`

	// MongoDB configuration (self-hosted store backend).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Admin console credentials. The password value is a bcrypt hash.
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Stripe configuration for plan upgrades.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Defaults substituted by the business view mapper.
	DefaultCity     string `mapstructure:"DEFAULT_CITY"`
	DefaultProvince string `mapstructure:"DEFAULT_PROVINCE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_BACKEND", "firebase")
	viper.SetDefault("FIREBASE_DATABASE_URL", "")
	viper.SetDefault("FIREBASE_CREDENTIAL_FILE", "config/serviceAccountKey.json")
	viper.SetDefault("FIREBASE_POLL_SECONDS", 5)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "barberhub")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("ADMIN_EMAIL", "admin@barberhub.app")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("DEFAULT_CITY", "Toronto")
	viper.SetDefault("DEFAULT_PROVINCE", "Ontario")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
