package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/nanotable/internal/validation"
)

func TestChecks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"required ok", validation.Required("name", "John"), false},
		{"required blank", validation.Required("name", "  "), true},
		{"email ok", validation.Email("email", "john@sheetsway.com"), false},
		{"email empty", validation.Email("email", ""), true},
		{"email no at", validation.Email("email", "john.sheetsway.com"), true},
		{"email display name", validation.Email("email", "John <john@sheetsway.com>"), true},
		{"email no tld", validation.Email("email", "john@localhost"), true},
		{"one of ok", validation.OneOf("role", "admin", "super_admin", "admin"), false},
		{"one of bad", validation.OneOf("role", "root", "super_admin", "admin"), true},
		{"range ok", validation.Range("progress", 100, 0, 100), false},
		{"range low", validation.Range("progress", -1, 0, 100), true},
		{"non negative", validation.NonNegative("amount", 0), false},
		{"negative", validation.NonNegative("amount", -5), true},
		{"timestamp ok", validation.Timestamp("createdAt", "2024-01-15T10:30:00Z"), false},
		{"timestamp legacy", validation.Timestamp("lastLogin", "2024-01-15 14:30:00"), false},
		{"timestamp empty", validation.Timestamp("resolvedAt", ""), false},
		{"timestamp bad", validation.Timestamp("createdAt", "yesterday"), true},
		{"unique ok", validation.Unique("recipients", []string{"a@x.io", "b@x.io"}), false},
		{"unique dup", validation.Unique("recipients", []string{"a@x.io", "A@x.io"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}

func TestErrorsNameTheField(t *testing.T) {
	err := errors.Join(
		validation.Required("name", ""),
		validation.Email("email", "nope"),
	)
	for _, field := range []string{"name", "email"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("joined error %q does not mention %s", err, field)
		}
	}
}
