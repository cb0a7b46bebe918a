package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrCredentialMissing means no usable credential resolved, or the
	// service rejected the one that did.
	ErrCredentialMissing = errors.New("llm: credential missing or rejected")
	// ErrNoImage means the service answered without image data.
	ErrNoImage = errors.New("llm: no image data returned from model")
)

// IsCredentialError reports whether err is a credential failure.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrCredentialMissing)
}

// statusError converts a non-200 API answer into an error, folding
// authentication failures into ErrCredentialMissing.
func statusError(provider string, code int, status, message string) error {
	if code == http.StatusUnauthorized || code == http.StatusForbidden ||
		strings.Contains(message, "API_KEY_INVALID") || strings.Contains(message, "API key not valid") ||
		status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED" {
		return fmt.Errorf("%w: %s returned %d: %s", ErrCredentialMissing, provider, code, message)
	}
	return fmt.Errorf("%s API error (%d %s): %s", provider, code, status, message)
}
