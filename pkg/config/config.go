// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"homescout/client-app/pkg/model"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
)

// Environment variable overriding the configured backend base URL.
const backendURLEnv = "HOMESCOUT_BACKEND_URL"

// ConfigLoad loads the configuration from the JSON file.
// If the file doesn't exist, it creates a default configuration. A .env file
// in the working directory is honored, and HOMESCOUT_BACKEND_URL overrides
// the configured backend base URL.
func ConfigLoad() error {
	// A missing .env file is not an error; environment variables still apply.
	_ = godotenv.Load()

	// Ensure the data directory exists
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := &model.Config{
			DatabaseDir:    "./data",
			DatabaseFile:   "homescout.db",
			DatabaseType:   "sqlite",
			LogFolder:      "./logs",
			CommandLog:     "commands.log",
			ErrorLog:       "errors.log",
			InfoLog:        "info.log",
			BackendURL:     "http://localhost:5000",
			BackendTimeout: 15,
		}
		if err := ConfigSave(defaultConfig); err != nil {
			return fmt.Errorf("failed to create default config: %v", err)
		}
		currentConfig = defaultConfig
		applyEnvOverrides(currentConfig)
		return nil
	}

	// Read and parse the existing config file
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	// Unmarshal the config from JSON
	currentConfig = &model.Config{}
	if err := json.Unmarshal(file, currentConfig); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	// Set default database type if not specified
	if currentConfig.DatabaseType == "" {
		currentConfig.DatabaseType = "sqlite"
		if err := ConfigSave(currentConfig); err != nil {
			return fmt.Errorf("failed to save updated config: %v", err)
		}
	}
	if currentConfig.BackendTimeout <= 0 {
		currentConfig.BackendTimeout = 15
	}

	applyEnvOverrides(currentConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *model.Config) {
	if url := os.Getenv(backendURLEnv); url != "" {
		cfg.BackendURL = url
	}
}

// ConfigSave saves the provided configuration to the JSON file.
func ConfigSave(cfg *model.Config) error {
	// Marshal the config to JSON
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %v", err)
	}

	// Write the JSON data to the config file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}
