package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures at the adapter boundary. Adapters map
// HTTP status codes (and, only inside the adapter, vendor body strings) into a
// kind; everything above this package switches on the kind.
type ErrorKind string

const (
	KindAuth                ErrorKind = "auth"
	KindModelNotFound       ErrorKind = "model_not_found"
	KindJSONModeUnsupported ErrorKind = "json_mode_unsupported"
	KindRateLimit           ErrorKind = "rate_limit"
	KindTransport           ErrorKind = "transport"
	KindBadResponse         ErrorKind = "bad_response"
	KindOther               ErrorKind = "other"
)

// ProviderError is the typed failure every adapter returns.
type ProviderError struct {
	Provider string
	Model    string
	Kind     ErrorKind
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s (%s) [%s]: %v", e.Provider, e.Model, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a classified provider failure.
func NewProviderError(provider, model string, kind ErrorKind, status int, err error) *ProviderError {
	return &ProviderError{Provider: provider, Model: model, Kind: kind, Status: status, Err: err}
}

// KindOf extracts the classification from any error chain. Unclassified errors
// (context cancellation, wrapped transport failures) report KindOther.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindOther
}

// IsKind reports whether the error chain carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
