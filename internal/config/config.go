// Package config resolves runtime settings from an optional YAML file layered
// under environment variables. Environment always wins; the file exists so
// local development does not need a wall of exports.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration for both binaries.
type Config struct {
	Env      string `yaml:"env"`
	Store    Store  `yaml:"store"`
	API      API    `yaml:"api"`
	Web      Web    `yaml:"web"`
	Admin    Admin  `yaml:"admin"`
	LogLevel string `yaml:"log_level"`
}

// Store describes the storefront brand.
type Store struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// API locates the backend REST service.
type API struct {
	BaseURL string `yaml:"base_url"`
}

// Web configures the storefront server.
type Web struct {
	Addr       string `yaml:"addr"`
	SigningKey string `yaml:"session_signing_key"`
}

// Admin configures the admin console server.
type Admin struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
	HashKey  string `yaml:"session_hash_key"`
	BlockKey string `yaml:"session_block_key"`
}

// Prod reports whether the deployment environment is production.
func (c Config) Prod() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "prod")
}

// Load reads the optional YAML file named by ESHOP_CONFIG, then applies
// environment overrides and defaults.
func Load() (Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv("ESHOP_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfEnv(&c.Env, "ESHOP_ENV")
	setIfEnv(&c.LogLevel, "LOG_LEVEL")
	setIfEnv(&c.Store.Name, "ESHOP_STORE_NAME")
	setIfEnv(&c.Store.Currency, "ESHOP_STORE_CURRENCY")
	setIfEnv(&c.API.BaseURL, "ESHOP_API_URL")
	setIfEnv(&c.Web.Addr, "ESHOP_WEB_ADDR")
	setIfEnv(&c.Web.SigningKey, "ESHOP_WEB_SESSION_SIGNING_KEY")
	setIfEnv(&c.Admin.Addr, "ESHOP_ADMIN_ADDR")
	setIfEnv(&c.Admin.BasePath, "ESHOP_ADMIN_BASE_PATH")
	setIfEnv(&c.Admin.HashKey, "ESHOP_ADMIN_SESSION_HASH_KEY")
	setIfEnv(&c.Admin.BlockKey, "ESHOP_ADMIN_SESSION_BLOCK_KEY")

	// Cloud Run style port resolution for the storefront.
	if c.Web.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			c.Web.Addr = ":" + port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Store.Name == "" {
		c.Store.Name = "E-Shop"
	}
	if c.Store.Currency == "" {
		c.Store.Currency = "USD"
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":8080"
	}
	if c.Admin.Addr == "" {
		c.Admin.Addr = ":8081"
	}
	if c.Admin.BasePath == "" {
		c.Admin.BasePath = "/admin"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func setIfEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
