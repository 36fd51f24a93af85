package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:chatsift.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Classifier ClassifierConfig `yaml:"classifier" json:"classifier" jsonschema:"description=Remote classifier configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for decision text cleanup"`

	Dispatch DispatchConfig `yaml:"dispatch" json:"dispatch" jsonschema:"description=Message processing configuration"`

	Notify NotifyConfig `yaml:"notify" json:"notify" jsonschema:"description=Direct alert delivery configuration"`
}

// ClassifierConfig holds remote classifier settings. An empty endpoint means
// the remote classifier is unconfigured and every message goes through the
// rule-based fallback.
type ClassifierConfig struct {
	Endpoint   string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=Classifier service endpoint (empty disables the remote path)"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout per attempt"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=3,minimum=1,description=Maximum classification attempts"`
	BaseDelay  time.Duration `yaml:"base_delay" json:"base_delay" jsonschema:"default=1s,description=Base delay between attempts (multiplied by attempt number)"`
}

// LLMConfig holds the OpenAI-compatible endpoint used by the yes/no decision
// extractor. Optional: with no endpoint configured, ambiguous classifier
// decisions resolve to no-notify without a cleanup round-trip.
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (empty disables decision cleanup)"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=5,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
}

// DispatchConfig holds pipeline worker settings
type DispatchConfig struct {
	MaxWorkers int `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent pipeline runs"`
	QueueSize  int `yaml:"queue_size" json:"queue_size" jsonschema:"default=100,description=Inbound message queue capacity"`
}

// NotifyConfig holds direct alert delivery settings
type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" json:"webhook_url" jsonschema:"description=Webhook URL for direct alerts (empty makes DM delivery a no-op)"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Webhook request timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:chatsift.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for classifier
	if cfg.Classifier.Timeout == 0 {
		cfg.Classifier.Timeout = 10 * time.Second
	}
	if cfg.Classifier.MaxRetries == 0 {
		cfg.Classifier.MaxRetries = 3
	}
	if cfg.Classifier.BaseDelay == 0 {
		cfg.Classifier.BaseDelay = time.Second
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 5
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 15 * time.Second
	}

	// set defaults for dispatch
	if cfg.Dispatch.MaxWorkers == 0 {
		cfg.Dispatch.MaxWorkers = 5
	}
	if cfg.Dispatch.QueueSize == 0 {
		cfg.Dispatch.QueueSize = 100
	}

	// set defaults for notify
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = 10 * time.Second
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate classifier config
	if cfg.Classifier.MaxRetries < 1 {
		return fmt.Errorf("classifier.max_retries must be at least 1")
	}
	if cfg.Classifier.BaseDelay < 10*time.Millisecond {
		return fmt.Errorf("classifier.base_delay must be at least 10ms")
	}
	if cfg.Classifier.Endpoint != "" && cfg.Classifier.Timeout < time.Second {
		return fmt.Errorf("classifier.timeout must be at least 1 second")
	}

	// validate LLM config, only when the cleanup path is enabled
	if cfg.LLM.Endpoint != "" {
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm.endpoint is set")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}

	// validate dispatch config
	if cfg.Dispatch.MaxWorkers < 1 {
		return fmt.Errorf("dispatch.max_workers must be at least 1")
	}
	if cfg.Dispatch.QueueSize < 1 {
		return fmt.Errorf("dispatch.queue_size must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetClassifierConfig returns remote classifier configuration
func (c *Config) GetClassifierConfig() ClassifierConfig {
	return c.Classifier
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetDispatchConfig returns pipeline worker configuration
func (c *Config) GetDispatchConfig() DispatchConfig {
	return c.Dispatch
}

// GetNotifyConfig returns direct alert delivery configuration
func (c *Config) GetNotifyConfig() NotifyConfig {
	return c.Notify
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
