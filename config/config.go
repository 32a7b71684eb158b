package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the process needs, loaded once at startup.
type Config struct {
	HTTP     HTTPConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	SendGrid SendGridConfig
	LogLevel string
}

// HTTPConfig is the listener configuration.
type HTTPConfig struct {
	Addr string
}

// MongoConfig is the MongoDB connection configuration.
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig carries the token signing secret.
type JWTConfig struct {
	Secret string
}

// SendGridConfig configures the order confirmation mailer.
// An empty APIKey disables outgoing mail.
type SendGridConfig struct {
	APIKey string
	Sender string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	// Ignore the error: running without a .env file is the normal
	// production case.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_ADDR", ":8000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "shop")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: v.GetString("HTTP_ADDR"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		SendGrid: SendGridConfig{
			APIKey: v.GetString("SENDGRID_API_KEY"),
			Sender: v.GetString("EMAIL_SENDER"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: JWT_SECRET is not set")
	}

	return cfg, nil
}
