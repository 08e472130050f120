// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Host string `envconfig:"PARTS_HOST" yaml:"host"`
	Port int    `envconfig:"PARTS_PORT" yaml:"port"`

	// Elasticsearch configuration
	Elastic ElasticConfig `yaml:"elastic"`

	// Data file configuration
	Data DataConfig `yaml:"data"`

	// Cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Event bus configuration
	Bus BusConfig `yaml:"bus"`

	// Search configuration
	Search SearchConfig `yaml:"search"`

	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Security configuration
	Security SecurityConfig `yaml:"security"`
}

// ElasticConfig holds Elasticsearch connection settings.
type ElasticConfig struct {
	URL         string `envconfig:"PARTS_ES_URL" yaml:"url"`
	Index       string `envconfig:"PARTS_ES_INDEX" yaml:"index"`
	MappingPath string `envconfig:"PARTS_ES_MAPPING_PATH" yaml:"mapping_path"`
}

// DataConfig holds data file locations and their fallback download URLs.
type DataConfig struct {
	ManufacturerPath string `envconfig:"PARTS_MANUFACTURER_PATH" yaml:"manufacturer_path"`
	ManufacturerURL  string `envconfig:"PARTS_MANUFACTURER_URL" yaml:"manufacturer_url"`
	OffersPath       string `envconfig:"PARTS_OFFERS_PATH" yaml:"offers_path"`
	OffersURL        string `envconfig:"PARTS_OFFERS_URL" yaml:"offers_url"`
	LoadOnStartup    bool   `envconfig:"PARTS_LOAD_ON_STARTUP" yaml:"load_on_startup"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Type     string `envconfig:"PARTS_CACHE_TYPE" yaml:"type"`
	TTL      int    `envconfig:"PARTS_CACHE_TTL" yaml:"ttl"` // seconds, 0 = no expiry
	RedisURL string `envconfig:"PARTS_REDIS_URL" yaml:"redis_url"`
}

// BusConfig holds event bus settings.
type BusConfig struct {
	Type         string `envconfig:"PARTS_BUS_TYPE" yaml:"type"`
	KafkaBrokers string `envconfig:"PARTS_KAFKA_BROKERS" yaml:"kafka_brokers"`
	ClientID     string `envconfig:"PARTS_BUS_CLIENT_ID" yaml:"client_id"`
}

// SearchConfig holds search settings.
type SearchConfig struct {
	ResultSize int `envconfig:"PARTS_RESULT_SIZE" yaml:"result_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"PARTS_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"PARTS_LOG_FORMAT" yaml:"format"`
}

// SecurityConfig holds security settings.
type SecurityConfig struct {
	RateLimit int `envconfig:"PARTS_RATE_LIMIT" yaml:"rate_limit"` // 0 = disabled
}

// Load loads configuration from environment variables and optional config file.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Defaults first
	setDefaults(cfg)

	// YAML file overrides defaults
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Environment variables have highest priority
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Host = "0.0.0.0"
	cfg.Port = 8080

	cfg.Elastic = ElasticConfig{
		URL:         "http://localhost:9200",
		Index:       "products",
		MappingPath: "product-mapping.json",
	}

	cfg.Data = DataConfig{
		ManufacturerPath: "manufacturer.txt",
		OffersPath:       "offers.json",
		LoadOnStartup:    true,
	}

	cfg.Cache = CacheConfig{
		Type:     "memory",
		TTL:      300,
		RedisURL: "redis://localhost:6379",
	}

	cfg.Bus = BusConfig{
		Type:     "memory",
		ClientID: "parts-search",
	}

	cfg.Search = SearchConfig{
		ResultSize: 50,
	}

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}

	cfg.Security = SecurityConfig{
		RateLimit: 0,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, "port must be between 1 and 65535")
	}

	if c.Elastic.URL == "" {
		errs = append(errs, "elastic url must not be empty")
	}

	if c.Elastic.Index == "" {
		errs = append(errs, "elastic index must not be empty")
	}

	validCacheTypes := map[string]bool{"memory": true, "redis": true}
	if !validCacheTypes[c.Cache.Type] {
		errs = append(errs, fmt.Sprintf("invalid cache type: %s (must be memory or redis)", c.Cache.Type))
	}

	if c.Cache.TTL < 0 {
		errs = append(errs, "cache ttl must not be negative")
	}

	validBusTypes := map[string]bool{"memory": true, "kafka": true}
	if !validBusTypes[c.Bus.Type] {
		errs = append(errs, fmt.Sprintf("invalid bus type: %s (must be memory or kafka)", c.Bus.Type))
	}

	if c.Bus.Type == "kafka" && c.Bus.KafkaBrokers == "" {
		errs = append(errs, "kafka brokers must be set when bus type is kafka")
	}

	if c.Search.ResultSize < 1 {
		errs = append(errs, "result_size must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Address returns the server address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KafkaBrokerList returns the configured Kafka brokers as a slice.
func (b BusConfig) KafkaBrokerList() []string {
	if b.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(b.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
