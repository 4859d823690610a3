package service

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/loganlanou/ciber-client/internal/api"
)

const (
	DevelopmentBaseURL = "http://localhost:8080"
	defaultAPITimeout  = 30 * time.Second
)

type Config struct {
	Environment string
	BaseURL     string
	DBPath      string
	APITimeout  time.Duration
	LogLevel    string
}

// fileConfig is the optional YAML overlay named by CIBER_CONFIG. Environment
// variables win over anything set here.
type fileConfig struct {
	Environment string `yaml:"environment"`
	APIURL      string `yaml:"api_url"`
	DBPath      string `yaml:"db_path"`
	APITimeout  string `yaml:"api_timeout"`
	LogLevel    string `yaml:"log_level"`
}

func LoadConfig() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CIBER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", orDefault(file.Environment, "production")),
		DBPath:      getEnv("CIBER_DB_PATH", orDefault(file.DBPath, "./data/ciber.db")),
		LogLevel:    getEnv("LOG_LEVEL", orDefault(file.LogLevel, "info")),
	}

	// Backend
	fallback := api.DefaultBaseURL
	if config.Environment == "development" {
		fallback = DevelopmentBaseURL
	}
	config.BaseURL = getEnv("PUBLIC_API_URL", orDefault(file.APIURL, fallback))

	timeout := getEnv("CIBER_API_TIMEOUT", file.APITimeout)
	if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
		config.APITimeout = d
	} else {
		config.APITimeout = defaultAPITimeout
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
