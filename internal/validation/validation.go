// Package validation holds the field checks records use to enforce their
// own invariants. Each check names the offending field in its error so the
// caller can join several failures into one report.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/arthur-debert/nanotable/nanotable/query"
)

// Required fails when value is empty or only whitespace
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Email fails unless value is a bare address such as admin@example.com
func Email(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@"):], ".") {
		return fmt.Errorf("%s: %q is not a valid email address", field, value)
	}
	return nil
}

// OneOf fails when value is not among allowed
func OneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: %q must be one of %s", field, value, strings.Join(allowed, ", "))
}

// Range fails when v lies outside [min, max]
func Range(field string, v, min, max float64) error {
	if v < min || v > max {
		return fmt.Errorf("%s: %v must be between %v and %v", field, v, min, max)
	}
	return nil
}

// NonNegative fails when v is below zero
func NonNegative(field string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s: %v cannot be negative", field, v)
	}
	return nil
}

// Timestamp fails when value is not a timestamp the filters can read.
// Empty values pass; combine with Required for mandatory fields.
func Timestamp(field, value string) error {
	if value == "" {
		return nil
	}
	if _, ok := query.ParseTimestamp(value); !ok {
		return fmt.Errorf("%s: %q is not a valid timestamp", field, value)
	}
	return nil
}

// Unique fails on the first value that appears twice, compared
// case-insensitively
func Unique(field string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		k := strings.ToLower(v)
		if seen[k] {
			return fmt.Errorf("%s: duplicate value %q", field, v)
		}
		seen[k] = true
	}
	return nil
}
