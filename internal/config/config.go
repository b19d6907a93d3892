package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          int           `mapstructure:"PORT"`
	MongoURI      string        `mapstructure:"MONGO_URI"`
	MongoDB       string        `mapstructure:"MONGO_DB"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	NatsURL       string        `mapstructure:"NATS_URL"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTExpiresIn  time.Duration `mapstructure:"JWT_EXPIRES_IN"`
	EncryptionKey string        `mapstructure:"ENCRYPTION_KEY"`
	AuthorName    string        `mapstructure:"AUTHOR_NAME"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Unmarshal only sees environment keys that were bound.
	for _, key := range []string{
		"PORT", "MONGO_URI", "MONGO_DB", "REDIS_ADDR", "NATS_URL",
		"JWT_SECRET", "JWT_EXPIRES_IN", "ENCRYPTION_KEY", "AUTHOR_NAME",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	// Set default values
	viper.SetDefault("MONGO_DB", "swiftride")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Required settings: the process must not come up without them.
	required := map[string]string{
		"MONGO_URI":      cfg.MongoURI,
		"JWT_SECRET":     cfg.JWTSecret,
		"ENCRYPTION_KEY": cfg.EncryptionKey,
		"AUTHOR_NAME":    cfg.AuthorName,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("missing required configuration: %s", name)
		}
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("missing required configuration: PORT")
	}
	if cfg.JWTExpiresIn <= 0 {
		return nil, fmt.Errorf("missing required configuration: JWT_EXPIRES_IN")
	}
	if len(cfg.EncryptionKey) < 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be at least 32 characters")
	}

	return &cfg, nil
}
