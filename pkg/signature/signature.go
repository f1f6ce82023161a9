// Package signature implements the timestamped HMAC-SHA256 header
// "t=<unix>,v1=<hex>" computed over "<unix>.<payload>". Stripe signs inbound
// webhooks this way and the hub signs its own outbound deliveries the same.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformed = errors.New("malformed signature header")
	ErrTimestamp = errors.New("timestamp outside tolerance")
	ErrMismatch  = errors.New("signature mismatch")
)

// Header returns "t=<timestamp>,v1=<hex digest>".
func Header(secret string, timestamp int64, payload []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(Digest(secret, timestamp, payload)))
}

// Digest is HMAC-SHA256(secret, "<timestamp>.<payload>").
func Digest(secret string, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// Parse splits a header into its timestamp and decoded v1 signatures.
// Unknown keys and v1 values that are not hex are skipped.
func Parse(header string) (int64, [][]byte, error) {
	var (
		ts   int64
		sigs [][]byte
	)
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, ErrMalformed
			}
			ts = parsed
		case "v1":
			if b, err := hex.DecodeString(v); err == nil {
				sigs = append(sigs, b)
			}
		}
	}
	if ts == 0 || len(sigs) == 0 {
		return 0, nil, ErrMalformed
	}
	return ts, sigs, nil
}

// Verify checks header against payload. The timestamp must lie within
// tolerance of now in either direction, and any v1 entry may match.
func Verify(secret, header string, payload []byte, now time.Time, tolerance time.Duration) error {
	ts, sigs, err := Parse(header)
	if err != nil {
		return err
	}
	if d := now.Sub(time.Unix(ts, 0)); d > tolerance || d < -tolerance {
		return ErrTimestamp
	}
	expected := Digest(secret, ts, payload)
	for _, sig := range sigs {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return ErrMismatch
}
