package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

type ExchangeConfig struct {
	// Entity is the domain entity whose events are published to this exchange.
	Entity     string
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type RateLimitConfig struct {
	LoginLimit    int
	CheckoutLimit int
	Window        time.Duration
}

type AdminConfig struct {
	Username string
	// PasswordHash is a bcrypt hash. When empty, Password is hashed at startup.
	PasswordHash string
	Password     string
	SessionTTL   time.Duration
}

type PaymentConfig struct {
	Provider  string // sandbox, stripe
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

type StoreConfig struct {
	Currency string
	VATRate  decimal.Decimal
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration
	PollInterval   time.Duration
	PollTimeout    time.Duration
}

type Config struct {
	Mongo     MongoConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Outbox    OutboxConfig
	HTTP      HTTPConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
	Admin     AdminConfig
	Payment   PaymentConfig
	Store     StoreConfig
	Checkout  CheckoutConfig
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
	Level        string
}

func exchange(envPrefix, entity, defaultName string) ExchangeConfig {
	return ExchangeConfig{
		Entity:     entity,
		Name:       getStringEnv(envPrefix+"_NAME", defaultName),
		Type:       getStringEnv(envPrefix+"_TYPE", "direct"),
		Durable:    getBoolEnv(envPrefix+"_DURABLE", true),
		AutoDelete: getBoolEnv(envPrefix+"_AUTO_DELETE", false),
	}
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "storefront"),
			Timeout:                time.Duration(getIntEnv("MONGO_TIMEOUT", 10)) * time.Second,
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         time.Duration(getIntEnv("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			ServerSelectionTimeout: time.Duration(getIntEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5)) * time.Second,
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  time.Duration(getIntEnv("OUTBOX_INTERVAL", 500)) * time.Millisecond,
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8080"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		RateLimit: RateLimitConfig{
			LoginLimit:    getIntEnv("RATE_LIMIT_LOGIN", 10),
			CheckoutLimit: getIntEnv("RATE_LIMIT_CHECKOUT", 15),
			Window:        time.Duration(getIntEnv("RATE_LIMIT_WINDOW", 60)) * time.Second,
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getIntEnv("RABBITMQ_RETRY_DELAY", 1)) * time.Second,
			ExchangeConfigs: []ExchangeConfig{
				exchange("RABBITMQ_PRODUCT_EXCHANGE", "product", "exchange.product"),
				exchange("RABBITMQ_CHECKOUT_EXCHANGE", "checkout", "exchange.checkout"),
			},
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "storefront"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
			Level:        getStringEnv("LOG_LEVEL", "info"),
		},
		Admin: AdminConfig{
			Username:     getStringEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getStringEnv("ADMIN_PASSWORD_HASH", ""),
			Password:     getStringEnv("ADMIN_PASSWORD", ""),
			SessionTTL:   time.Duration(getIntEnv("ADMIN_SESSION_TTL", 60)) * time.Minute,
		},
		Payment: PaymentConfig{
			Provider:  getStringEnv("PAYMENT_PROVIDER", "sandbox"),
			BaseURL:   getStringEnv("PAYMENT_BASE_URL", "https://api.stripe.com"),
			SecretKey: getStringEnv("PAYMENT_SECRET_KEY", ""),
			Timeout:   time.Duration(getIntEnv("PAYMENT_TIMEOUT", 10)) * time.Second,
		},
		Store: StoreConfig{
			Currency: getStringEnv("STORE_CURRENCY", "eur"),
			VATRate:  getDecimalEnv("STORE_VAT_RATE", decimal.RequireFromString("0.21")),
		},
		Checkout: CheckoutConfig{
			IdempotencyTTL: time.Duration(getIntEnv("CHECKOUT_IDEMPOTENCY_TTL", 15)) * time.Minute,
			PollInterval:   time.Duration(getIntEnv("CHECKOUT_IDEMPOTENCY_POLL_INTERVAL", 1000)) * time.Millisecond,
			PollTimeout:    time.Duration(getIntEnv("CHECKOUT_IDEMPOTENCY_POLL_TIMEOUT", 10)) * time.Second,
		},
	}
}
