package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort    string `envconfig:"HTTP_PORT" default:"3001"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	MongoURI    string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDBName string `envconfig:"MONGODB_DB_NAME" default:"techshop"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	CryptoBotToken  string `envconfig:"CRYPTOBOT_TOKEN"`
	CryptoBotAPIURL string `envconfig:"CRYPTOBOT_API_URL" default:"https://pay.crypt.bot/api"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
