// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Pair      string          `mapstructure:"pair"`
	Binance   BinanceConfig   `mapstructure:"binance"`
	Bitstamp  BitstampConfig  `mapstructure:"bitstamp"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Publish   PublishConfig   `mapstructure:"publish"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Health    HealthConfig    `mapstructure:"health"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// BinanceConfig holds Binance venue endpoint configuration.
type BinanceConfig struct {
	MetadataURL  string `mapstructure:"metadata_url"`
	StreamURL    string `mapstructure:"stream_url"`
	DepthSpeedMs int    `mapstructure:"depth_speed_ms"`
}

// BitstampConfig holds Bitstamp venue endpoint configuration.
type BitstampConfig struct {
	MetadataURL string `mapstructure:"metadata_url"`
	StreamURL   string `mapstructure:"stream_url"`
}

// EngineConfig holds merge-engine tuning.
type EngineConfig struct {
	Depth                   int  `mapstructure:"depth"`
	SubscriberQueueCapacity int  `mapstructure:"subscriber_queue_capacity"`
	SyntheticVenue          bool `mapstructure:"synthetic_venue"`
}

// PublishConfig holds the gRPC publish interface's bind address.
type PublishConfig struct {
	ListenAddress string `mapstructure:"listen_address"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// HealthConfig holds the liveness/readiness HTTP server's port.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// Load loads configuration from file and environment variables. pairArg, if
// non-empty, is the CLI positional pair argument, which takes precedence
// over config file and env values (CLI > env > file > default).
func Load(configPath, pairArg string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("OBA")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if pairArg != "" {
		cfg.Pair = pairArg
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.name", "OBA_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "OBA_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "OBA_LOG_LEVEL", "LOG_LEVEL")

	v.BindEnv("pair", "OBA_PAIR")

	v.BindEnv("binance.metadata_url", "OBA_BINANCE_METADATA_URL")
	v.BindEnv("binance.stream_url", "OBA_BINANCE_STREAM_URL")
	v.BindEnv("bitstamp.metadata_url", "OBA_BITSTAMP_METADATA_URL")
	v.BindEnv("bitstamp.stream_url", "OBA_BITSTAMP_STREAM_URL")

	v.BindEnv("engine.depth", "OBA_ENGINE_DEPTH")
	v.BindEnv("engine.subscriber_queue_capacity", "OBA_ENGINE_QUEUE_CAPACITY")

	v.BindEnv("publish.listen_address", "OBA_PUBLISH_LISTEN_ADDRESS")

	v.BindEnv("telemetry.enabled", "OBA_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "OBA_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "OBA_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "orderbook-aggregator")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("binance.metadata_url", "https://api.binance.com/api/v3/exchangeInfo")
	v.SetDefault("binance.stream_url", "wss://stream.binance.com:9443/ws")
	v.SetDefault("binance.depth_speed_ms", 100)

	v.SetDefault("bitstamp.metadata_url", "https://www.bitstamp.net/api/v2/trading-pairs-info")
	v.SetDefault("bitstamp.stream_url", "wss://ws.bitstamp.net")

	v.SetDefault("engine.depth", 10)
	v.SetDefault("engine.subscriber_queue_capacity", 100)
	v.SetDefault("engine.synthetic_venue", false)

	v.SetDefault("publish.listen_address", "[::1]:1079")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "orderbook-aggregator")
	v.SetDefault("telemetry.prometheus_port", 9090)

	v.SetDefault("health.port", 8080)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Pair == "" {
		return fmt.Errorf("pair is required")
	}
	if c.Engine.Depth <= 0 {
		return fmt.Errorf("engine.depth must be > 0")
	}
	if _, _, err := net.SplitHostPort(c.Publish.ListenAddress); err != nil {
		return fmt.Errorf("invalid publish.listen_address %q: %w", c.Publish.ListenAddress, err)
	}
	return nil
}
