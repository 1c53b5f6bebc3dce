package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
)

func TestValidate(t *testing.T) {
	v := NewValidator(config.Defaults().Reception)

	tests := []struct {
		name    string
		field   domain.FieldName
		input   string
		valid   bool
		cleaned string
	}{
		{"name ok", domain.FieldFullName, "  Ahmad Saleh ", true, "Ahmad Saleh"},
		{"name arabic ok", domain.FieldFullName, "أحمد", true, "أحمد"},
		{"name too short", domain.FieldFullName, "A", false, ""},
		{"name whitespace only", domain.FieldFullName, "   ", false, ""},

		{"phone plain", domain.FieldPhone, "0912345678", true, "0912345678"},
		{"phone formatted keeps digits", domain.FieldPhone, "+963 (11) 123-4567", true, "963111234567"},
		{"phone too short", domain.FieldPhone, "12345", false, ""},
		{"phone letters only", domain.FieldPhone, "call me maybe", false, ""},

		{"email ok", domain.FieldEmail, "user@example.com", true, "user@example.com"},
		{"email subdomain", domain.FieldEmail, "a@mail.ornina.sy", true, "a@mail.ornina.sy"},
		{"email no at", domain.FieldEmail, "userexample.com", false, ""},
		{"email two ats", domain.FieldEmail, "a@@example.com", false, ""},
		{"email no dot after at", domain.FieldEmail, "user@example", false, ""},
		{"email leading at", domain.FieldEmail, "@example.com", false, ""},

		{"service ok", domain.FieldServiceType, "web development", true, "web development"},
		{"service blank", domain.FieldServiceType, "  ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.field, tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Equal(t, tt.cleaned, res.Cleaned)
				assert.Empty(t, res.Error)
			} else {
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestValidate_ConfiguredMinimums(t *testing.T) {
	cfg := config.Defaults().Reception
	cfg.NameMinLength = 5
	cfg.PhoneMinLength = 4
	v := NewValidator(cfg)

	assert.False(t, v.Validate(domain.FieldFullName, "Omar").Valid)
	assert.True(t, v.Validate(domain.FieldFullName, "Omar K").Valid)
	assert.True(t, v.Validate(domain.FieldPhone, "1234").Valid)
}
