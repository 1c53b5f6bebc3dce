package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the config file, applies defaults and environment
// overrides, and returns a merged Config. A missing file produces
// defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields left out of the config file.
func applyDefaults(cfg *Config) {
	def := Defaults()

	if len(cfg.Reception.RequiredFields) == 0 {
		cfg.Reception.RequiredFields = def.Reception.RequiredFields
	}
	if cfg.Reception.NameMinLength == 0 {
		cfg.Reception.NameMinLength = def.Reception.NameMinLength
	}
	if cfg.Reception.PhoneMinLength == 0 {
		cfg.Reception.PhoneMinLength = def.Reception.PhoneMinLength
	}
	if cfg.Reception.MaxRetries == 0 {
		cfg.Reception.MaxRetries = def.Reception.MaxRetries
	}
	if cfg.Reception.ConfirmationRetries == 0 {
		cfg.Reception.ConfirmationRetries = def.Reception.ConfirmationRetries
	}
	if len(cfg.Complaints.UrgentKeywords) == 0 {
		cfg.Complaints.UrgentKeywords = def.Complaints.UrgentKeywords
	}
	if cfg.Routing.ConfidenceFloor == 0 {
		cfg.Routing.ConfidenceFloor = def.Routing.ConfidenceFloor
	}
	if cfg.Routing.FallbackConfidence == 0 {
		cfg.Routing.FallbackConfidence = def.Routing.FallbackConfidence
	}
	if cfg.General.DefaultLanguage == "" {
		cfg.General.DefaultLanguage = def.General.DefaultLanguage
	}
	if cfg.General.FallbackLanguage == "" {
		cfg.General.FallbackLanguage = def.General.FallbackLanguage
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = def.Keywords
	}
	if len(cfg.Sentiment.Positive) == 0 && len(cfg.Sentiment.Negative) == 0 {
		cfg.Sentiment = def.Sentiment
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = def.Store.Backend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = def.Store.Path
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// applyEnvOverrides reads CALLCENTER_* environment variables and
// overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CALLCENTER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CALLCENTER_DEFAULT_LANGUAGE"); v != "" {
		cfg.General.DefaultLanguage = strings.ToLower(v)
	}
	if v := os.Getenv("CALLCENTER_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("CALLCENTER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Reception.MaxRetries = n
		}
	}
}
