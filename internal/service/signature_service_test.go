package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_SignMatchesHMAC(t *testing.T) {
	svc := NewHMACSignatureService()
	payload := []byte(`{"type":"sync.completed"}`)

	mac := hmac.New(sha256.New, []byte("whsec_test"))
	mac.Write([]byte("1700000000." + string(payload)))
	want := fmt.Sprintf("t=1700000000,v1=%s", hex.EncodeToString(mac.Sum(nil)))

	assert.Equal(t, want, svc.Sign("whsec_test", 1700000000, payload))
}

func TestSignature_Verify(t *testing.T) {
	svc := NewHMACSignatureService()
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Unix(1700000000, 0)
	header := svc.Sign("secret", now.Unix(), payload)

	tests := []struct {
		name    string
		secret  string
		header  string
		payload []byte
		now     time.Time
		want    bool
	}{
		{"valid", "secret", header, payload, now, true},
		{"valid within tolerance", "secret", header, payload, now.Add(4 * time.Minute), true},
		{"wrong secret", "other", header, payload, now, false},
		{"tampered payload", "secret", header, []byte(`{"id":"evt_2"}`), now, false},
		{"too old", "secret", header, payload, now.Add(6 * time.Minute), false},
		{"from the future", "secret", header, payload, now.Add(-6 * time.Minute), false},
		{"missing timestamp", "secret", strings.Split(header, ",")[1], payload, now, false},
		{"garbage", "secret", "nonsense", payload, now, false},
		{"bad timestamp", "secret", "t=abc,v1=00", payload, now, false},
		{"any v1 may match", "secret", "t=1700000000,v1=deadbeef," + strings.Split(header, ",")[1], payload, now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Verify(tt.secret, tt.header, tt.payload, tt.now, 5*time.Minute)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignature_GenerateSecret(t *testing.T) {
	svc := NewHMACSignatureService()

	a, err := svc.GenerateSecret()
	require.NoError(t, err)
	b, err := svc.GenerateSecret()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "whsec_"))
	assert.Len(t, a, len("whsec_")+64)
	assert.NotEqual(t, a, b)
}
