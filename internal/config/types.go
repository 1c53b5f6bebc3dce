package config

// Config is the root configuration for the call-center routing engine.
type Config struct {
	Reception  ReceptionConfig  `yaml:"reception,omitempty"`
	Complaints ComplaintsConfig `yaml:"complaints,omitempty"`
	Routing    RoutingConfig    `yaml:"routing,omitempty"`
	General    GeneralConfig    `yaml:"general,omitempty"`
	Keywords   KeywordTable     `yaml:"keywords,omitempty"`
	Sentiment  SentimentConfig  `yaml:"sentiment,omitempty"`
	Store      StoreConfig      `yaml:"store,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
}

// ReceptionConfig controls the intake (IVR) data-collection flow.
type ReceptionConfig struct {
	// RequiredFields lists which of name/phone/email/service_type the
	// intake flow must collect. Stages for absent fields are skipped.
	RequiredFields []string `yaml:"requiredFields,omitempty"`

	NameMinLength  int `yaml:"nameMinLength,omitempty"`
	PhoneMinLength int `yaml:"phoneMinLength,omitempty"`

	// MaxRetries bounds invalid-input retries per field before the call
	// escalates to department handling.
	MaxRetries int `yaml:"maxRetries,omitempty"`

	RequireConfirmation bool `yaml:"requireConfirmation"`
	ConfirmationRetries int  `yaml:"confirmationRetries,omitempty"`
}

// ComplaintsConfig controls ticket creation for the complaints department.
type ComplaintsConfig struct {
	AutoCreateTicket bool `yaml:"autoCreateTicket"`

	// UrgentKeywords raise ticket priority to urgent when present in the
	// triggering utterance, keyed by language.
	UrgentKeywords map[string][]string `yaml:"urgentKeywords,omitempty"`
}

// RoutingConfig tunes the intent classifier.
type RoutingConfig struct {
	// ConfidenceFloor is the minimum winning score; below it the
	// classifier falls back to a generic inquiry.
	ConfidenceFloor float64 `yaml:"confidenceFloor,omitempty"`

	// FallbackConfidence is the confidence reported with the generic
	// inquiry fallback.
	FallbackConfidence float64 `yaml:"fallbackConfidence,omitempty"`
}

// GeneralConfig holds cross-cutting behavior.
type GeneralConfig struct {
	DefaultLanguage  string `yaml:"defaultLanguage,omitempty"`  // "ar" | "en"
	FallbackLanguage string `yaml:"fallbackLanguage,omitempty"` // used when an utterance carries no tag
}

// KeywordTable maps intent to language to keyword list for the classifier.
// Validated at load time so every scoring intent has non-empty keyword
// sets in every supported language.
type KeywordTable map[string]map[string][]string

// SentimentConfig holds the word lists the sentiment analyzer scans for,
// keyed by language.
type SentimentConfig struct {
	Positive   map[string][]string `yaml:"positive,omitempty"`
	Negative   map[string][]string `yaml:"negative,omitempty"`
	Frustrated map[string][]string `yaml:"frustrated,omitempty"`
}

// Supported persistence backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// StoreConfig selects the persistence backend for tickets and transcripts.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"` // "sqlite" | "memory"
	Path    string `yaml:"path,omitempty"`    // sqlite file path; ":memory:" for tests
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
