package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"token-scanner/src/helpers"
	"token-scanner/src/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRiskBaseURL   = "https://api.rugcheck.xyz"
	DefaultMarketBaseURL = "https://api.dexscreener.com"
	DefaultChain         = "solana"
	DefaultModel         = "gpt-4o-mini"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns a configuration that runs against the public providers.
func Default() *Config {
	cfg := &models.MConfig{}
	applyDefaults(cfg)
	return &Config{MConfig: cfg}
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, helpers.NewConfigurationError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, helpers.NewConfigurationError("failed to parse config from YAML", err)
	}

	// 3. Fill gaps, then let the environment (.env included) win
	applyDefaults(&modelConfig)
	_ = godotenv.Load()
	applyEnv(&modelConfig)

	config := &Config{MConfig: &modelConfig}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// LoadOrDefault reads configPath when it exists and otherwise starts from
// Default(). Environment overrides and validation apply either way.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return NewConfig(configPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, helpers.NewConfigurationError(fmt.Sprintf("failed to stat config file '%s'", configPath), err)
		}
	}

	config := Default()
	_ = godotenv.Load()
	applyEnv(config.MConfig)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// -----------------------------------------------------------------------------

func applyDefaults(c *models.MConfig) {
	if c.Name == "" {
		c.Name = "token-scanner"
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 10
	}
	if c.Providers.Risk.BaseURL == "" {
		c.Providers.Risk.BaseURL = DefaultRiskBaseURL
	}
	if c.Providers.Market.BaseURL == "" {
		c.Providers.Market.BaseURL = DefaultMarketBaseURL
	}
	if c.Providers.Market.Chain == "" {
		c.Providers.Market.Chain = DefaultChain
	}
	if c.Narrative.Model == "" {
		c.Narrative.Model = DefaultModel
	}
	if c.Narrative.MaxTokens == 0 {
		c.Narrative.MaxTokens = 600
	}
}

// -----------------------------------------------------------------------------

func applyEnv(c *models.MConfig) {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		c.Narrative.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
		c.Narrative.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("SCANNER_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(os.Getenv("SCANNER_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
}

// -----------------------------------------------------------------------------

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.MConfig == nil {
		return helpers.NewConfigurationError("config is empty", nil)
	}

	if err := validate.Struct(c.MConfig); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return helpers.NewConfigurationError(
				fmt.Sprintf("config validation failed: %s violates '%s'", fe.Namespace(), fe.Tag()), err)
		}
		return helpers.NewConfigurationError("config validation failed", err)
	}

	if c.GrpcPort != 0 && c.GrpcPort == c.Port && c.GrpcHost == c.Host {
		return helpers.NewConfigurationError(fmt.Sprintf("grpc port %d collides with http port", c.GrpcPort), nil)
	}

	if c.Narrative.Enabled && c.Narrative.APIKey == "" {
		return helpers.NewConfigurationError("narrative is enabled but OPENAI_API_KEY is not set", nil)
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return helpers.NewConfigurationError("failed to marshal config to YAML", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return helpers.NewConfigurationError(fmt.Sprintf("failed to write config to file '%s'", configPath), err)
	}

	return nil
}
