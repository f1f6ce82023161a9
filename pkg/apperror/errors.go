package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Details    any    `json:"details,omitempty"`
	Err        error  `json:"-"` // wrapped internal error, never sent to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of e carrying client-visible details.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Retryable reports whether the caller (usually a provider redelivering a
// webhook) should try again later.
func (e *AppError) Retryable() bool {
	return e.HTTPStatus >= http.StatusInternalServerError
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Connectors & Sync (CON) ----

func ErrConnectorNotFound() *AppError {
	return New("CON_001", "Connector not found", http.StatusNotFound)
}

func ErrConnectorNotSyncable(reason string) *AppError {
	return New("CON_002", reason, http.StatusBadRequest)
}

func ErrSyncInProgress() *AppError {
	return New("CON_003", "A sync is already running for this connector", http.StatusConflict)
}

func ErrSyncFailed(message string) *AppError {
	return New("CON_004", message, http.StatusInternalServerError)
}

func ErrProviderConnection(err error) *AppError {
	return Wrap("CON_005", "Provider connection failed", http.StatusBadGateway, err)
}

func ErrCredentialsInvalid(message string) *AppError {
	return New("CON_006", message, http.StatusBadRequest)
}

func ErrUnsupportedProvider(provider string) *AppError {
	return New("CON_007", fmt.Sprintf("Provider %q is not supported", provider), http.StatusNotFound)
}

// ---- OAuth (OAUTH) ----

func ErrInvalidState() *AppError {
	return New("OAUTH_001", "Invalid or expired OAuth state", http.StatusBadRequest)
}

func ErrCodeExchange(err error) *AppError {
	return Wrap("OAUTH_002", "Authorization code exchange failed", http.StatusBadGateway, err)
}

// ---- Inbound webhooks (WHK) ----

func ErrInvalidSignature() *AppError {
	return New("WHK_001", "Missing or invalid webhook signature", http.StatusBadRequest)
}

func ErrUnresolvableWebhook() *AppError {
	return New("WHK_002", "Webhook could not be matched to a connector", http.StatusBadRequest)
}

func ErrWebhookProviderUnknown(provider string) *AppError {
	return New("WHK_003", fmt.Sprintf("Webhooks are not supported for %q", provider), http.StatusNotFound)
}

func ErrInvalidPayload(message string) *AppError {
	return New("WHK_004", message, http.StatusBadRequest)
}

func ErrEventInProgress() *AppError {
	return New("WHK_005", "Event is already being processed", http.StatusConflict)
}

func ErrWebhookProcessing(err error) *AppError {
	return Wrap("WHK_006", "Webhook processing failed", http.StatusInternalServerError, err)
}

// ---- Outbound endpoints (EP) ----

func ErrEndpointNotFound() *AppError {
	return New("EP_001", "Webhook endpoint not found", http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrMissingToken() *AppError {
	return New("AUTH_001", "Missing bearer token", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ErrPayloadTooLarge rejects a request body over limit bytes.
func ErrPayloadTooLarge(limit int64) *AppError {
	return New("VAL_002", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}
