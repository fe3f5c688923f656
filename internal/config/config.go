package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	QueueDriverMemory = "memory"
	QueueDriverKafka  = "kafka"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	PostgresURL    string `mapstructure:"POSTGRES_URL"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	PaymentRateLimit int    `mapstructure:"PAYMENT_RATE_LIMIT"`

	QueueDriver   string `mapstructure:"QUEUE_DRIVER"`
	KafkaBrokers  string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic    string `mapstructure:"KAFKA_TOPIC"`
	KafkaGroupID  string `mapstructure:"KAFKA_GROUP_ID"`
	NotifyWorkers int    `mapstructure:"NOTIFY_WORKERS"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	SMTPFromName string `mapstructure:"SMTP_FROM_NAME"`
	AppName      string `mapstructure:"APP_NAME"`
	AppBaseURL   string `mapstructure:"APP_BASE_URL"`

	StripeSecretKey    string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeCurrency     string `mapstructure:"STRIPE_CURRENCY"`
	CheckoutSuccessURL string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string `mapstructure:"CHECKOUT_CANCEL_URL"`
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"LOG_LEVEL":            "info",
	"ALLOWED_ORIGINS":      "*",
	"JWT_TTL":              "60m",
	"PAYMENT_RATE_LIMIT":   10,
	"QUEUE_DRIVER":         QueueDriverMemory,
	"KAFKA_TOPIC":          "course.lessons.changed",
	"KAFKA_GROUP_ID":       "coursehub-notifier",
	"NOTIFY_WORKERS":       2,
	"SMTP_HOST":            "smtp.gmail.com",
	"SMTP_PORT":            587,
	"SMTP_FROM_NAME":       "CourseHub",
	"APP_NAME":             "CourseHub",
	"APP_BASE_URL":         "http://localhost:8080",
	"STRIPE_CURRENCY":      "usd",
	"CHECKOUT_SUCCESS_URL": "http://localhost:8080/payments/success",
	"CHECKOUT_CANCEL_URL":  "http://localhost:8080/payments/cancel",
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for _, key := range []string{
		"POSTGRES_URL", "JWT_SECRET", "REDIS_ADDR", "KAFKA_BROKERS",
		"SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM", "STRIPE_SECRET_KEY",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresURL == "" {
		return fmt.Errorf("POSTGRES_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.QueueDriver {
	case QueueDriverMemory:
	case QueueDriverKafka:
		if len(c.Brokers()) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when QUEUE_DRIVER=kafka")
		}
	default:
		return fmt.Errorf("unsupported QUEUE_DRIVER %q", c.QueueDriver)
	}

	return nil
}

func (c *Config) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
