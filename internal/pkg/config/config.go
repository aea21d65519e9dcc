package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Notifier NotifierConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=skill_exchange"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type NotifierConfig struct {
	// APIKey is the transactional-email provider key. When empty, outbound
	// notifications are logged instead of sent.
	APIKey      string `env:"NOTIFIER_API_KEY"`
	SenderEmail string `env:"NOTIFIER_SENDER_EMAIL, default=no-reply@skillbridge.local"`
	SenderName  string `env:"NOTIFIER_SENDER_NAME,  default=SkillBridge"`
	Workers     int    `env:"NOTIFIER_WORKERS,      default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
