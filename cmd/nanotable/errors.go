package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanotable/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "release escrow", "add user")
	Cause       string   // The underlying cause (e.g., "record not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for a bad flag or argument value
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
		Underlying:  types.ErrValidation,
	}
}

// NewNotFoundError creates an error for missing records
func NewNotFoundError(operation, resource, id string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s with ID %q not found", resource, id),
		Suggestions: suggestions,
		Underlying:  types.ErrNotFound,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for a failed collection or storage call,
// describing the common sentinel errors in plain words
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		switch {
		case errors.Is(underlying, types.ErrNotFound):
			cause = "record not found"
			suggestions = append(suggestions, CommonSuggestions.CheckID)
		case errors.Is(underlying, types.ErrInvalidTransition):
			cause = "action not allowed in the record's current status"
			suggestions = append(suggestions, CommonSuggestions.CheckStatus)
		case errors.Is(underlying, types.ErrValidation):
			cause = "invalid data provided"
		case errors.Is(underlying, types.ErrImmutableField):
			cause = "id and status cannot be edited directly"
		default:
			errStr := strings.ToLower(underlying.Error())
			switch {
			case strings.Contains(errStr, "permission denied"):
				cause = "insufficient permissions to access the store"
				suggestions = append(suggestions, CommonSuggestions.CheckPerms)
			case strings.Contains(errStr, "locked"):
				cause = "store is currently locked by another process"
			case strings.Contains(errStr, "storage"):
				cause = "store is unavailable"
				suggestions = append(suggestions, CommonSuggestions.CheckConfig)
			}
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// CommonSuggestions are shared hints appended to errors
var CommonSuggestions = struct {
	CheckID     string
	CheckStatus string
	CheckConfig string
	CheckPerms  string
	RunHelp     string
}{
	CheckID:     "Verify the record ID exists (try the 'list' command first)",
	CheckStatus: "Check the record's status with 'list --status'",
	CheckConfig: "Check your configuration file or NANOTABLE_* environment variables",
	CheckPerms:  "Check file permissions and directory access",
	RunHelp:     "Run command with --help for usage information",
}
