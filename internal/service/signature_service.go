package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"connector-hub/pkg/signature"
)

const endpointSecretPrefix = "whsec_"

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256
// over "<unix timestamp>.<payload>".
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign returns the signature header value "t=<ts>,v1=<hex>".
func (s *HMACSignatureService) Sign(secret string, timestamp int64, payload []byte) string {
	return signature.Header(secret, timestamp, payload)
}

// Verify checks a header produced by Sign against payload.
func (s *HMACSignatureService) Verify(secret, header string, payload []byte, now time.Time, tolerance time.Duration) bool {
	return signature.Verify(secret, header, payload, now, tolerance) == nil
}

// GenerateSecret returns a new endpoint signing secret.
func (s *HMACSignatureService) GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return endpointSecretPrefix + hex.EncodeToString(b), nil
}

