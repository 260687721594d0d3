package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT"   envDefault:"8082"`
	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"mealdelivery"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	LogLevel        string `env:"LOG_LEVEL"         envDefault:"info"`
	OrderStatusCron string `env:"ORDER_STATUS_CRON" envDefault:"0 */5 * * * *"`
	DefaultCarrier  string `env:"DEFAULT_CARRIER"`

	// An empty RedisAddr disables the price cache.
	RedisAddr     string        `env:"REDIS_ADDR"`
	PriceCacheTTL time.Duration `env:"PRICE_CACHE_TTL" envDefault:"10m"`

	// Empty KafkaBrokers disables publishing of order status events.
	KafkaBrokers           string `env:"KAFKA_BROKERS"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"order.status.changed"`
}

// LoadConfig reads the optional .env file at path and then the environment.
// Variables already set in the environment win over the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN is the libpq connection string shared by GORM and the migrator.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
