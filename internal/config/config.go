package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Cache Cache

	Gateway Gateway `validate:"required"`

	Orders Orders

	Outbox Outbox

	Notify Notify

	RateLimit RateLimit
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,numeric"`

	ReadTimeout  time.Duration `validate:"gte=0"`
	WriteTimeout time.Duration `validate:"gte=0"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`
	Topic   string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

// Gateway holds Razorpay credentials. KeySecret also signs payment confirmations.
type Gateway struct {
	KeyID     string        `validate:"required"`
	KeySecret string        `validate:"required"`
	BaseURL   string        `validate:"required,url"`
	Currency  string        `validate:"required,len=3"`
	Timeout   time.Duration `validate:"gt=0"`
}

type Orders struct {
	DeliveryLeadTime    time.Duration `validate:"gte=0"`
	RejectTotalMismatch bool
	TotalTolerance      int64 `validate:"gte=0"`
}

type Outbox struct {
	RelayInterval time.Duration `validate:"gt=0"`
	BatchSize     int           `validate:"gte=1"`
}

type Notify struct {
	WebhookURL string        `validate:"omitempty,url"`
	Timeout    time.Duration `validate:"gt=0"`
}

type RateLimit struct {
	RPS   float64 `validate:"gt=0"`
	Burst int     `validate:"gte=1"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),

			ReadTimeout:  envDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: envDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID: env("KAFKA_GROUP_ID", "order-notifications"),
			Topic:   env("KAFKA_TOPIC", "order-events"),
			Brokers: strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "storefront"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Gateway: Gateway{
			KeyID:     env("RAZORPAY_KEY_ID", ""),
			KeySecret: env("RAZORPAY_KEY_SECRET", ""),
			BaseURL:   env("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
			Currency:  env("GATEWAY_CURRENCY", "INR"),
			Timeout:   envDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},

		Orders: Orders{
			DeliveryLeadTime:    envDuration("ORDER_DELIVERY_LEAD_TIME", 7*24*time.Hour),
			RejectTotalMismatch: envBool("ORDER_REJECT_TOTAL_MISMATCH", false),
			TotalTolerance:      int64(envInt("ORDER_TOTAL_TOLERANCE", 0)),
		},

		Outbox: Outbox{
			RelayInterval: envDuration("OUTBOX_RELAY_INTERVAL", time.Second),
			BatchSize:     envInt("OUTBOX_RELAY_BATCH", 50),
		},

		Notify: Notify{
			WebhookURL: env("NOTIFY_WEBHOOK_URL", ""),
			Timeout:    envDuration("NOTIFY_TIMEOUT", 5*time.Second),
		},

		RateLimit: RateLimit{
			RPS:   envFloat("RATE_LIMIT_RPS", 2),
			Burst: envInt("RATE_LIMIT_BURST", 5),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
