package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds as they appear in SyncRun errors and logs.
const (
	ErrorKindAuthentication = "authentication"
	ErrorKindConnection     = "connection"
	ErrorKindSync           = "sync"
	ErrorKindTimeout        = "timeout"
	ErrorKindSignature      = "signature"
	ErrorKindPayload        = "payload"
	ErrorKindUnsupported    = "unsupported"
	ErrorKindInternal       = "internal"
)

// AuthenticationError reports missing, invalid or expired credentials.
type AuthenticationError struct {
	Provider ProviderType
	Reason   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s authentication failed: %s", e.Provider, e.Reason)
}

func (e *AuthenticationError) Transient() bool { return false }

// ConnectionError reports an unreachable provider or a failed connection test.
type ConnectionError struct {
	Provider ProviderType
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connection failed: %v", e.Provider, e.Err)
}

func (e *ConnectionError) Unwrap() error   { return e.Err }
func (e *ConnectionError) Transient() bool { return true }

// SyncError reports a failed entity step. Steps after Entity did not run.
type SyncError struct {
	Provider ProviderType
	Entity   string
	Err      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s sync of %s failed: %v", e.Provider, e.Entity, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Transient is false only when the step failed on bad credentials.
func (e *SyncError) Transient() bool {
	var authErr *AuthenticationError
	return !errors.As(e.Err, &authErr)
}

// SignatureVerificationError reports a webhook that failed authentication.
type SignatureVerificationError struct {
	Provider ProviderType
	Reason   string
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("%s webhook signature invalid: %s", e.Provider, e.Reason)
}

func (e *SignatureVerificationError) Transient() bool { return false }

// UnsupportedProviderError reports an unknown provider key.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q", e.Provider)
}

func (e *UnsupportedProviderError) Transient() bool { return false }

// UnsupportedEventTypeError marks an event type with no handler. The
// gateway records it as ignored rather than failing.
type UnsupportedEventTypeError struct {
	Provider  ProviderType
	EventType string
}

func (e *UnsupportedEventTypeError) Error() string {
	return fmt.Sprintf("%s event type %q is not handled", e.Provider, e.EventType)
}

func (e *UnsupportedEventTypeError) Transient() bool { return false }

// IdempotencyConflict marks a duplicate delivery of an already recorded event.
type IdempotencyConflict struct {
	Provider        ProviderType
	ProviderEventID string
}

func (e *IdempotencyConflict) Error() string {
	return fmt.Sprintf("%s event %s already recorded", e.Provider, e.ProviderEventID)
}

func (e *IdempotencyConflict) Transient() bool { return false }

// PayloadError reports a webhook body with the wrong shape.
type PayloadError struct {
	Provider ProviderType
	Reason   string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s payload invalid: %s", e.Provider, e.Reason)
}

func (e *PayloadError) Transient() bool { return false }

// IsTransient reports whether retrying err later may succeed. Errors of
// unknown kind count as transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Transient() bool }
	if errors.As(err, &t) {
		return t.Transient()
	}
	return true
}

// ErrorKind classifies err for SyncRun error details.
func ErrorKind(err error) string {
	var (
		authErr    *AuthenticationError
		connErr    *ConnectionError
		sigErr     *SignatureVerificationError
		payloadErr *PayloadError
		provErr    *UnsupportedProviderError
		syncErr    *SyncError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	case errors.As(err, &authErr):
		return ErrorKindAuthentication
	case errors.As(err, &connErr):
		return ErrorKindConnection
	case errors.As(err, &sigErr):
		return ErrorKindSignature
	case errors.As(err, &payloadErr):
		return ErrorKindPayload
	case errors.As(err, &provErr):
		return ErrorKindUnsupported
	case errors.As(err, &syncErr):
		return ErrorKindSync
	default:
		return ErrorKindInternal
	}
}
