package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the service configuration.
// Tags used:
// - mapstructure: environment variable read by viper
// - default: value used when the variable is unset
// - required: if "true", loading fails when the value is empty
type Config struct {
	Environment string  `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string  `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort    int     `mapstructure:"HTTP_PORT" default:"8080"`
	RateLimit   float64 `mapstructure:"HTTP_RATE_LIMIT" default:"0"`

	Database DatabaseConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Kafka    KafkaConfig    `mapstructure:",squash"`
	Backlog  BacklogConfig  `mapstructure:",squash"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST" default:"localhost"`
	Port     int    `mapstructure:"DB_PORT" default:"5432"`
	User     string `mapstructure:"DB_USER" required:"true"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME" required:"true"`
	SslMode  string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// DSN returns a lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type RedisConfig struct {
	URL      string        `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	LockTTL  time.Duration `mapstructure:"ORDER_LOCK_TTL" default:"10s"`
	LockWait time.Duration `mapstructure:"ORDER_LOCK_WAIT" default:"2s"`
}

// KafkaConfig configures order event publishing. Publishing is disabled when no
// brokers are set.
type KafkaConfig struct {
	Brokers           []string `mapstructure:"KAFKA_BROKERS"`
	OrderChangedTopic string   `mapstructure:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.status.changed"`
}

type BacklogConfig struct {
	Schedule  string        `mapstructure:"APPROVAL_BACKLOG_SCHEDULE" default:"0 */5 * * * *"`
	Threshold time.Duration `mapstructure:"APPROVAL_BACKLOG_THRESHOLD" default:"4h"`
}

// LoadConfig reads an optional .env file from envFile and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading env file: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	var config Config
	if err := processTags(v, &config); err != nil {
		return Config{}, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// processTags binds every tagged field to its env var and sets defaults.
func processTags(v *viper.Viper, config any) error {
	val := reflect.ValueOf(config).Elem()
	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
		if def := field.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
	return nil
}

func validateRequired(config any) error {
	val := reflect.ValueOf(config).Elem()
	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
