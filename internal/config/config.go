// Package config provides configuration structures and validation for the application.
// It handles environment-based configuration for logging and for the demo run that
// exercises wallets, entities and transactions.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Output formats supported by the demo run
const (
	OutputFormatJSON    = "json"
	OutputFormatExtJSON = "extjson"
)

// Config holds the complete application configuration.
// It is validated once during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Demo        DemoConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// DemoConfig drives the sample entity and transaction built by the demo run.
// Coin amounts are kept as int64 so out-of-range values can be reported; valid values fit uint32.
type DemoConfig struct {
	EntityName           string
	InitialBalance       int64
	CoinsToAdd           int64
	CoinsToRemove        int64
	AllowNegativeBalance bool
	OutputFormat         string // json or extjson
}

// validate checks every value and reports all problems at once
func (c *Config) validate() error {
	var validationErrors []string

	if c.Application.Name == "" {
		validationErrors = append(validationErrors, "APP_NAME is required")
	}

	// Validate Demo config
	if c.Demo.EntityName == "" {
		validationErrors = append(validationErrors, "DEMO_ENTITY_NAME is required")
	}
	if c.Demo.CoinsToAdd < 0 || c.Demo.CoinsToAdd > math.MaxUint32 {
		validationErrors = append(validationErrors, fmt.Sprintf("DEMO_COINS_TO_ADD must be between 0 and %d", uint32(math.MaxUint32)))
	}
	if c.Demo.CoinsToRemove < 0 || c.Demo.CoinsToRemove > math.MaxUint32 {
		validationErrors = append(validationErrors, fmt.Sprintf("DEMO_COINS_TO_REMOVE must be between 0 and %d", uint32(math.MaxUint32)))
	}
	switch c.Demo.OutputFormat {
	case OutputFormatJSON, OutputFormatExtJSON:
	default:
		validationErrors = append(validationErrors, "DEMO_OUTPUT_FORMAT must be one of: json, extjson")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
