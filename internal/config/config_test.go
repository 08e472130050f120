package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("PARTS_PORT", "9090")
	os.Setenv("PARTS_ES_INDEX", "products_test")
	os.Setenv("PARTS_LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("PARTS_PORT")
		os.Unsetenv("PARTS_ES_INDEX")
		os.Unsetenv("PARTS_LOG_LEVEL")
	}()

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}

	if cfg.Elastic.Index != "products_test" {
		t.Errorf("Elastic.Index = %s, want products_test", cfg.Elastic.Index)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
host: "127.0.0.1"
port: 8888
log:
  level: warn
  format: json
elastic:
  url: "http://custom:9200"
  index: parts
cache:
  type: redis
  ttl: 120
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Host != "127.0.0.1" {
		t.Errorf("Host = %s, want 127.0.0.1", cfg.Host)
	}

	if cfg.Port != 8888 {
		t.Errorf("Port = %d, want 8888", cfg.Port)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}

	if cfg.Elastic.URL != "http://custom:9200" {
		t.Errorf("Elastic.URL = %s, want http://custom:9200", cfg.Elastic.URL)
	}

	if cfg.Cache.Type != "redis" {
		t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
	}

	if cfg.Cache.TTL != 120 {
		t.Errorf("Cache.TTL = %d, want 120", cfg.Cache.TTL)
	}

	// Untouched values keep their defaults.
	if cfg.Search.ResultSize != 50 {
		t.Errorf("Search.ResultSize = %d, want default 50", cfg.Search.ResultSize)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port",
		},
		{
			name:    "empty elastic url",
			mutate:  func(c *Config) { c.Elastic.URL = "" },
			wantErr: "elastic url",
		},
		{
			name:    "invalid cache type",
			mutate:  func(c *Config) { c.Cache.Type = "disk" },
			wantErr: "cache type",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *Config) { c.Bus.Type = "kafka" },
			wantErr: "kafka brokers",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log level",
		},
		{
			name:    "zero result size",
			mutate:  func(c *Config) { c.Search.ResultSize = 0 },
			wantErr: "result_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestKafkaBrokerList(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if got := cfg.Bus.KafkaBrokerList(); got != nil {
		t.Errorf("KafkaBrokerList() = %v, want nil for empty setting", got)
	}

	cfg.Bus.KafkaBrokers = "broker1:9092, broker2:9092"
	got := cfg.Bus.KafkaBrokerList()
	if len(got) != 2 || got[0] != "broker1:9092" || got[1] != "broker2:9092" {
		t.Errorf("KafkaBrokerList() = %v, want two trimmed brokers", got)
	}
}

func TestAddress(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if got := cfg.Address(); got != "0.0.0.0:8080" {
		t.Errorf("Address() = %s, want 0.0.0.0:8080", got)
	}
}
