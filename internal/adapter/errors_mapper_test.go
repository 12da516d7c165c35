package adapter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantMessage string
	}{
		{name: "empty", body: ""},
		{name: "plain text", body: "upstream timeout", wantMessage: "upstream timeout"},
		{name: "msg wins", body: `{"msg":"first","message":"second","error":"third"}`, wantMessage: "first"},
		{
			name:        "oauth style",
			body:        `{"error":"invalid_grant","error_description":"Invalid login credentials"}`,
			wantCode:    "invalid_grant",
			wantMessage: "Invalid login credentials",
		},
		{name: "message field", body: `{"message":"No API key found in request"}`, wantMessage: "No API key found in request"},
		{name: "error only", body: `{"error":"boom"}`, wantMessage: "boom"},
		{name: "error_code", body: `{"code":429,"error_code":"over_email_send_rate_limit","msg":"slow down"}`, wantCode: "over_email_send_rate_limit", wantMessage: "slow down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := parseErrorBody([]byte(tt.body))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}

func TestProviderError(t *testing.T) {
	perr := &ProviderError{Status: 401, Message: "invalid JWT", kind: ErrInvalidToken}
	wrapped := fmt.Errorf("get user: %w", perr)

	assert.ErrorIs(t, wrapped, ErrInvalidToken)
	assert.Equal(t, "invalid JWT", ProviderMessage(wrapped))
	assert.Contains(t, perr.Error(), "401")

	assert.Empty(t, ProviderMessage(errors.New("plain")))

	transport := unavailable(errors.New("dial tcp: refused"))
	assert.ErrorIs(t, transport, ErrUnavailable)
	assert.NotContains(t, transport.Error(), "(0)")
}
