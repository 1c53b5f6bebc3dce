package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// knownFields are the collectible intake fields.
var knownFields = []string{"name", "phone", "email", "service_type"}

// scoringIntents are the intents the classifier scores by keyword match.
// Each must carry a non-empty keyword list in every supported language.
var scoringIntents = []string{
	"complaint", "training_inquiry", "service_inquiry", "sales_interest",
	"billing_issue", "technical_support", "consultation", "appointment",
}

// supportedLanguages are the conversation languages the engine handles.
var supportedLanguages = []string{"ar", "en"}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	for _, f := range cfg.Reception.RequiredFields {
		if !slices.Contains(knownFields, f) {
			issues = append(issues, ValidationIssue{
				Path:    "reception.requiredFields",
				Message: fmt.Sprintf("unknown field %q, must be one of %v", f, knownFields),
			})
		}
	}
	if cfg.Reception.NameMinLength < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "reception.nameMinLength",
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.Reception.NameMinLength),
		})
	}
	if cfg.Reception.PhoneMinLength < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "reception.phoneMinLength",
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.Reception.PhoneMinLength),
		})
	}
	if cfg.Reception.MaxRetries < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "reception.maxRetries",
			Message: fmt.Sprintf("must be >= 1, got %d", cfg.Reception.MaxRetries),
		})
	}
	if cfg.Reception.RequireConfirmation && cfg.Reception.ConfirmationRetries < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "reception.confirmationRetries",
			Message: "must be >= 1 when confirmation is required",
		})
	}

	if cfg.Routing.ConfidenceFloor < 0 || cfg.Routing.ConfidenceFloor > 1 {
		issues = append(issues, ValidationIssue{
			Path:    "routing.confidenceFloor",
			Message: fmt.Sprintf("must be in [0,1], got %g", cfg.Routing.ConfidenceFloor),
		})
	}
	if cfg.Routing.FallbackConfidence < 0 || cfg.Routing.FallbackConfidence > 1 {
		issues = append(issues, ValidationIssue{
			Path:    "routing.fallbackConfidence",
			Message: fmt.Sprintf("must be in [0,1], got %g", cfg.Routing.FallbackConfidence),
		})
	}

	if !slices.Contains(supportedLanguages, cfg.General.DefaultLanguage) {
		issues = append(issues, ValidationIssue{
			Path:    "general.defaultLanguage",
			Message: fmt.Sprintf("must be one of %v, got %q", supportedLanguages, cfg.General.DefaultLanguage),
		})
	}
	if !slices.Contains(supportedLanguages, cfg.General.FallbackLanguage) {
		issues = append(issues, ValidationIssue{
			Path:    "general.fallbackLanguage",
			Message: fmt.Sprintf("must be one of %v, got %q", supportedLanguages, cfg.General.FallbackLanguage),
		})
	}

	// Every scoring intent needs keywords in every supported language.
	for _, intent := range scoringIntents {
		langs, ok := cfg.Keywords[intent]
		if !ok {
			issues = append(issues, ValidationIssue{
				Path:    "keywords." + intent,
				Message: "missing keyword table for intent",
			})
			continue
		}
		for _, lang := range supportedLanguages {
			if len(langs[lang]) == 0 {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("keywords.%s.%s", intent, lang),
					Message: "keyword list must be non-empty",
				})
			}
		}
	}
	for intent := range cfg.Keywords {
		if !slices.Contains(scoringIntents, intent) {
			issues = append(issues, ValidationIssue{
				Path:    "keywords." + intent,
				Message: "not a scoring intent",
			})
		}
	}

	validBackends := []string{BackendSQLite, BackendMemory}
	if cfg.Store.Backend != "" && !slices.Contains(validBackends, cfg.Store.Backend) {
		issues = append(issues, ValidationIssue{
			Path:    "store.backend",
			Message: fmt.Sprintf("must be one of %v, got %q", validBackends, cfg.Store.Backend),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	return issues
}
