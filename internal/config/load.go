package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file using the provided base name
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// loadConfig layers configuration sources:
// 1. Load defaults
// 2. Override with config file values (if found)
// 3. Override with environment variables
// 4. Validate the final configuration
func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	// Add config paths in order of priority
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintf(os.Stderr, "INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config := fromViper(v)

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Demo: DemoConfig{
			EntityName:           v.GetString("DEMO_ENTITY_NAME"),
			InitialBalance:       v.GetInt64("DEMO_INITIAL_BALANCE"),
			CoinsToAdd:           v.GetInt64("DEMO_COINS_TO_ADD"),
			CoinsToRemove:        v.GetInt64("DEMO_COINS_TO_REMOVE"),
			AllowNegativeBalance: v.GetBool("DEMO_ALLOW_NEGATIVE_BALANCE"),
			OutputFormat:         v.GetString("DEMO_OUTPUT_FORMAT"),
		},
	}
}

// setDefaults initializes configuration with default values.
// These values are used when no configuration file or environment variables are present.
func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "banana-coin")

	// Demo defaults reproduce a deposit followed by a partial withdrawal
	v.SetDefault("DEMO_ENTITY_NAME", "john")
	v.SetDefault("DEMO_INITIAL_BALANCE", 0)
	v.SetDefault("DEMO_COINS_TO_ADD", 100)
	v.SetDefault("DEMO_COINS_TO_REMOVE", 50)
	v.SetDefault("DEMO_ALLOW_NEGATIVE_BALANCE", false)
	v.SetDefault("DEMO_OUTPUT_FORMAT", OutputFormatJSON)
}
