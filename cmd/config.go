package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort           string   `envconfig:"HTTP_PORT" default:"8080"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"marketplace"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	ListenerMinReconnect time.Duration `envconfig:"LISTENER_MIN_RECONNECT" default:"100ms"`
	ListenerMaxReconnect time.Duration `envconfig:"LISTENER_MAX_RECONNECT" default:"30s"`
	FeedBufferSize       int           `envconfig:"FEED_BUFFER_SIZE" default:"256"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	KafkaHost              string `envconfig:"KAFKA_HOST" default:"localhost:9092"`
	KafkaOrderChangedTopic string `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.changed"`
	OutboxBatchSize        int    `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`

	HandoffTTL        time.Duration `envconfig:"HANDOFF_TTL" default:"15m"`
	DeliveryETA       time.Duration `envconfig:"DELIVERY_ETA" default:"45m"`
	AutoDispatchDelay time.Duration `envconfig:"AUTO_DISPATCH_DELAY" default:"0s"`
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	if c.HandoffTTL <= 0 {
		problems = append(problems, errors.New("HANDOFF_TTL must be positive"))
	}
	if c.DeliveryETA <= 0 {
		problems = append(problems, errors.New("DELIVERY_ETA must be positive"))
	}
	if c.AutoDispatchDelay < 0 {
		problems = append(problems, errors.New("AUTO_DISPATCH_DELAY must not be negative"))
	}
	if c.OutboxBatchSize <= 0 {
		problems = append(problems, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}
	return errors.Join(problems...)
}

// DSN is the Postgres connection URL shared by GORM, the LISTEN connection and migrations.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
