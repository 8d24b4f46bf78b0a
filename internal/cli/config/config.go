package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conduit-lang/reflector/internal/orm/parsing"
	"github.com/conduit-lang/reflector/internal/orm/reflection"
)

// EnvPrefix is prepended to environment variables that override config keys
const EnvPrefix = "REFLECTOR"

// Config represents the reflector configuration
type Config struct {
	Reflection ReflectionConfig `mapstructure:"reflection"`
	Parsing    ParsingConfig    `mapstructure:"parsing"`
	Log        LogConfig        `mapstructure:"log"`
}

// ReflectionConfig represents property metadata configuration
type ReflectionConfig struct {
	CacheEnabled bool   `mapstructure:"cache_enabled"`
	AccessPolicy string `mapstructure:"access_policy"`
}

// ParsingConfig represents placeholder substitution configuration
type ParsingConfig struct {
	OpenToken             string `mapstructure:"open_token"`
	CloseToken            string `mapstructure:"close_token"`
	EnableDefaultValue    bool   `mapstructure:"enable_default_value"`
	DefaultValueSeparator string `mapstructure:"default_value_separator"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from path, or from reflector.yml or
// reflector.yaml in the working directory when path is empty
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("reflection.cache_enabled", true)
	v.SetDefault("reflection.access_policy", reflection.AccessForce.String())
	v.SetDefault("parsing.open_token", parsing.DefaultOpenToken)
	v.SetDefault("parsing.close_token", parsing.DefaultCloseToken)
	v.SetDefault("parsing.enable_default_value", false)
	v.SetDefault("parsing.default_value_separator", parsing.DefaultValueSeparator)
	v.SetDefault("log.level", "warn")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("reflector")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// REFLECTOR_PARSING_OPEN_TOKEN overrides parsing.open_token
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Policy returns the parsed access policy
func (c *Config) Policy() reflection.AccessPolicy {
	policy, _ := reflection.ParseAccessPolicy(c.Reflection.AccessPolicy)
	return policy
}

// CacheConfig builds the metadata cache configuration
func (c *Config) CacheConfig(logger *zap.Logger) reflection.CacheConfig {
	return reflection.CacheConfig{
		Enabled:      c.Reflection.CacheEnabled,
		AccessPolicy: c.Policy(),
		Logger:       logger,
	}
}

// ResolverConfig builds the placeholder resolver configuration
func (c *Config) ResolverConfig(logger *zap.Logger) parsing.ResolverConfig {
	return parsing.ResolverConfig{
		EnableDefaultValue:    c.Parsing.EnableDefaultValue,
		DefaultValueSeparator: c.Parsing.DefaultValueSeparator,
		OpenToken:             c.Parsing.OpenToken,
		CloseToken:            c.Parsing.CloseToken,
		Logger:                logger,
	}
}

// NewLogger builds a console logger at the configured level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if _, ok := reflection.ParseAccessPolicy(cfg.Reflection.AccessPolicy); !ok {
		return fmt.Errorf("reflection.access_policy must be one of force, exported, strict, got: %s", cfg.Reflection.AccessPolicy)
	}

	if cfg.Parsing.OpenToken == "" {
		return fmt.Errorf("parsing.open_token must not be empty")
	}
	if cfg.Parsing.CloseToken == "" {
		return fmt.Errorf("parsing.close_token must not be empty")
	}
	if cfg.Parsing.DefaultValueSeparator == "" {
		return fmt.Errorf("parsing.default_value_separator must not be empty")
	}

	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level must be a valid level, got: %s", cfg.Log.Level)
	}
	return nil
}
