package types

import (
	"fmt"
	"net/http"
	"strings"

	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// UserScoped is implemented by request bodies that carry their own user id.
type UserScoped interface {
	BodyUserID() string
}

// ------------------------------
// Validation helpers
// ------------------------------

// ValidateRequired fails with a validation error when value is empty or
// whitespace only.
func ValidateRequired(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return hserrors.NewValidation(fmt.Sprintf("%s is required", field), map[string]any{"field": field})
	}
	return nil
}

// ValidateNonNegative fails when n < 0.
func ValidateNonNegative(n int, field string) error {
	if n < 0 {
		return hserrors.NewValidation(fmt.Sprintf("%s must be >= 0", field), map[string]any{"field": field, "value": n})
	}
	return nil
}

// ValidateOneOf fails when neither a nor b is set; aName and bName are used
// in the message.
func ValidateOneOf(a, b, aName, bName string) error {
	if strings.TrimSpace(a) == "" && strings.TrimSpace(b) == "" {
		return hserrors.NewValidation(fmt.Sprintf("one of %s or %s is required", aName, bName), map[string]any{"fields": []string{aName, bName}})
	}
	return nil
}
