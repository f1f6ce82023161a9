package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sanitizeFixture struct {
	Name    string
	Note    *string
	Missing *string
	Link    string `sanitize:"trim"`
	Labels  map[string]string
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsAndEscapes(t *testing.T) {
	note := "  customer <script>alert('x')</script> request  "
	req := sanitizeFixture{
		Name: "  My Shop  ",
		Note: &note,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "My Shop", req.Name)
	assert.Contains(t, *req.Note, "&lt;script&gt;")
	assert.NotContains(t, *req.Note, "<script>")
	assert.Nil(t, req.Missing)
}

func TestSanitizeStruct_TrimOnlyTag(t *testing.T) {
	req := CreateEndpointRequest{
		URL:              "  https://example.com/hook?a=1&b=2  ",
		SubscribedEvents: []string{"sync.completed"},
	}
	SanitizeStruct(&req)

	assert.Equal(t, "https://example.com/hook?a=1&b=2", req.URL)
}

func TestSanitizeStruct_MapValuesTrimmedNotEscaped(t *testing.T) {
	req := APIKeyRequest{Fields: map[string]string{
		"secret_key": "  sk_test_<abc>&def  ",
	}}
	SanitizeStruct(&req)

	assert.Equal(t, "sk_test_<abc>&def", req.Fields["secret_key"])
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
	SanitizeStruct(&s)
	assert.Equal(t, "hello", s)
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"secret_key",
		"shop-domain",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"key 001",     // space
		"key<001>",    // angle brackets
		"key;DROP",    // semicolon
		"",            // empty
		"hello world", // space
		"key\n001",    // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestCreateEndpointRequest_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateEndpointRequest
		valid bool
	}{
		{"valid", CreateEndpointRequest{URL: "https://example.com/hook", SubscribedEvents: []string{"sync.completed"}}, true},
		{"wildcard", CreateEndpointRequest{URL: "http://example.com", SubscribedEvents: []string{"*"}}, true},
		{"with retry policy", CreateEndpointRequest{URL: "https://example.com", SubscribedEvents: []string{"record.deleted"}, MaxRetries: 5, RetryDelaySeconds: 30}, true},
		{"missing url", CreateEndpointRequest{SubscribedEvents: []string{"sync.completed"}}, false},
		{"ftp url", CreateEndpointRequest{URL: "ftp://example.com", SubscribedEvents: []string{"sync.completed"}}, false},
		{"relative url", CreateEndpointRequest{URL: "/hook", SubscribedEvents: []string{"sync.completed"}}, false},
		{"no events", CreateEndpointRequest{URL: "https://example.com"}, false},
		{"unknown event", CreateEndpointRequest{URL: "https://example.com", SubscribedEvents: []string{"payment.created"}}, false},
		{"too many retries", CreateEndpointRequest{URL: "https://example.com", SubscribedEvents: []string{"*"}, MaxRetries: 11}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tc.req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAPIKeyRequest_Validation(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&APIKeyRequest{Fields: map[string]string{"secret_key": "sk_test_123"}}))
	assert.Error(t, binding.Validator.ValidateStruct(&APIKeyRequest{}))
	assert.Error(t, binding.Validator.ValidateStruct(&APIKeyRequest{Fields: map[string]string{"bad key": "x"}}))
	assert.Error(t, binding.Validator.ValidateStruct(&APIKeyRequest{Fields: map[string]string{"secret_key": ""}}))
}
