package service

import (
	"context"
	"errors"

	"connector-hub/internal/core/domain"
	"connector-hub/pkg/apperror"
)

// toAppError maps domain errors onto stable API codes. Permanent kinds map
// to 4xx and transient ones to 5xx.
func toAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var (
		authErr    *domain.AuthenticationError
		connErr    *domain.ConnectionError
		sigErr     *domain.SignatureVerificationError
		payloadErr *domain.PayloadError
		provErr    *domain.UnsupportedProviderError
	)
	switch {
	case errors.As(err, &authErr):
		return apperror.ErrCredentialsInvalid(authErr.Error())
	case errors.As(err, &sigErr):
		return apperror.ErrInvalidSignature()
	case errors.As(err, &payloadErr):
		return apperror.ErrInvalidPayload(payloadErr.Reason)
	case errors.As(err, &provErr):
		return apperror.ErrUnsupportedProvider(provErr.Provider)
	case errors.As(err, &connErr), errors.Is(err, context.DeadlineExceeded):
		return apperror.ErrProviderConnection(err)
	default:
		return apperror.InternalError(err)
	}
}
