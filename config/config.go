package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Routing     RoutingConfig     `mapstructure:"routing"`
	Breaker     BreakerConfig     `mapstructure:"breaker"`
	Retry       RetryConfig       `mapstructure:"retry"`
	Risk        RiskConfig        `mapstructure:"risk"`
	Velocity    VelocityConfig    `mapstructure:"velocity"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Webhook     WebhookConfig     `mapstructure:"webhook"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"` // debug, release, test
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig configures the durable event log. When disabled, the process
// runs on the in-memory event bus instead.
type KafkaConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Brokers       []string `mapstructure:"brokers"`
	PaymentTopic  string   `mapstructure:"payment_topic"`
	AlertTopic    string   `mapstructure:"alert_topic"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	Workers       int      `mapstructure:"workers"`
}

type RoutingConfig struct {
	Strategy     string         `mapstructure:"strategy"`
	TestOverride bool           `mapstructure:"test_override"`
	Failover     FailoverConfig `mapstructure:"failover"`
}

type FailoverConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxAttempts int  `mapstructure:"max_attempts"`
}

type BreakerConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	MinCalls             uint32        `mapstructure:"min_calls"`
	FailureRateThreshold float64       `mapstructure:"failure_rate_threshold"`
	Interval             time.Duration `mapstructure:"interval"`
	OpenDuration         time.Duration `mapstructure:"open_duration"`
	HalfOpenMaxCalls     uint32        `mapstructure:"half_open_max_calls"`
}

type RetryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	WaitDuration time.Duration `mapstructure:"wait_duration"`
}

type RiskConfig struct {
	Engine      RiskEngineConfig     `mapstructure:"engine"`
	ML          RiskMLConfig         `mapstructure:"ml"`
	Thresholds  RiskThresholdsConfig `mapstructure:"thresholds"`
	AlertBuffer int                  `mapstructure:"alert_buffer"`
}

type RiskEngineConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RiskMLConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ServiceURL string `mapstructure:"service_url"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
}

type RiskThresholdsConfig struct {
	HighFailureRate float64 `mapstructure:"high_failure_rate"`
	Velocity1Min    int     `mapstructure:"velocity_1min"`
	AlertScore      float64 `mapstructure:"alert_score"`
}

type VelocityConfig struct {
	MaxPerEmailPer60s int64 `mapstructure:"max_per_email_per_60s"`
	MaxPerIPPer60s    int64 `mapstructure:"max_per_ip_per_60s"`
}

type IdempotencyConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type WebhookConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PORC_ (Payment ORChestrator).
// Nested keys use underscore: PORC_DATABASE_HOST, PORC_ROUTING_STRATEGY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", 1048576)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_orchestrator")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.payment_topic", "payment-events")
	v.SetDefault("kafka.alert_topic", "risk-alerts")
	v.SetDefault("kafka.consumer_group", "risk-pipeline")
	v.SetDefault("kafka.workers", 4)
	v.SetDefault("routing.strategy", "weighted_round_robin")
	v.SetDefault("routing.test_override", false)
	v.SetDefault("routing.failover.enabled", true)
	v.SetDefault("routing.failover.max_attempts", 3)
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.min_calls", 10)
	v.SetDefault("breaker.failure_rate_threshold", 0.5)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.open_duration", "30s")
	v.SetDefault("breaker.half_open_max_calls", 2)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.wait_duration", "100ms")
	v.SetDefault("risk.engine.enabled", true)
	v.SetDefault("risk.ml.enabled", false)
	v.SetDefault("risk.ml.service_url", "")
	v.SetDefault("risk.ml.timeout_ms", 2000)
	v.SetDefault("risk.thresholds.high_failure_rate", 0.5)
	v.SetDefault("risk.thresholds.velocity_1min", 10)
	v.SetDefault("risk.thresholds.alert_score", 0.3)
	v.SetDefault("risk.alert_buffer", 1000)
	v.SetDefault("velocity.max_per_email_per_60s", 30)
	v.SetDefault("velocity.max_per_ip_per_60s", 60)
	v.SetDefault("idempotency.ttl", "24h")
	v.SetDefault("webhook.timeout", "5s")
	v.SetDefault("webhook.max_attempts", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PORC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PORC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
