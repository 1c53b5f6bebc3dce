// Package intake drives the IVR data-collection flow: field validation,
// the ordered stage machine, confirmation, and bounded retries.
package intake

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
)

// ValidationResult is the outcome of validating one collected field.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Cleaned string `json:"cleaned,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Validator checks and normalizes collected field values against the
// reception rules. Pure: no side effects, deterministic.
type Validator struct {
	nameMinLength  int
	phoneMinLength int
}

// NewValidator creates a validator from reception rules.
func NewValidator(cfg config.ReceptionConfig) *Validator {
	return &Validator{
		nameMinLength:  cfg.NameMinLength,
		phoneMinLength: cfg.PhoneMinLength,
	}
}

// Validate checks a raw input value for the given field and returns the
// cleaned form when valid.
func (v *Validator) Validate(field domain.FieldName, raw string) ValidationResult {
	switch field {
	case domain.FieldFullName:
		return v.validateName(raw)
	case domain.FieldPhone:
		return v.validatePhone(raw)
	case domain.FieldEmail:
		return v.validateEmail(raw)
	case domain.FieldServiceType:
		return v.validateServiceType(raw)
	}
	return ValidationResult{Valid: true, Cleaned: strings.TrimSpace(raw)}
}

func (v *Validator) validateName(raw string) ValidationResult {
	cleaned := strings.TrimSpace(raw)
	if len([]rune(cleaned)) < v.nameMinLength {
		return ValidationResult{
			Error: fmt.Sprintf("name must be at least %d characters", v.nameMinLength),
		}
	}
	return ValidationResult{Valid: true, Cleaned: cleaned}
}

func (v *Validator) validatePhone(raw string) ValidationResult {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if len(cleaned) < v.phoneMinLength {
		return ValidationResult{
			Error: fmt.Sprintf("phone must be at least %d digits", v.phoneMinLength),
		}
	}
	return ValidationResult{Valid: true, Cleaned: cleaned}
}

// validateEmail is a format check only: exactly one "@" with at least
// one "." after it. Deliverability is not this layer's concern.
func (v *Validator) validateEmail(raw string) ValidationResult {
	cleaned := strings.TrimSpace(raw)
	at := strings.Index(cleaned, "@")
	if at <= 0 || at != strings.LastIndex(cleaned, "@") {
		return ValidationResult{Error: "invalid email format"}
	}
	if !strings.Contains(cleaned[at+1:], ".") {
		return ValidationResult{Error: "invalid email format"}
	}
	return ValidationResult{Valid: true, Cleaned: cleaned}
}

func (v *Validator) validateServiceType(raw string) ValidationResult {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ValidationResult{Error: "service type is required"}
	}
	return ValidationResult{Valid: true, Cleaned: cleaned}
}
