package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/postdesk/internal/adapter"
	"github.com/MKhiriev/postdesk/internal/service"
	"github.com/MKhiriev/postdesk/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrNoToken, http.StatusUnauthorized},
		{service.ErrTokenIsExpired, http.StatusUnauthorized},
		{fmt.Errorf("%w: upstream", service.ErrInvalidToken), http.StatusUnauthorized},
		{service.ErrInvalidCredentials, http.StatusBadRequest},
		{service.ErrEmailRequired, http.StatusBadRequest},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrPostNotFound, http.StatusNotFound},
		{service.ErrRateLimited, http.StatusTooManyRequests},
		{service.ErrProviderUnavailable, http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	providerErr := func(kind error, msg string) error {
		return adapter.NewProviderError(kind, 400, msg)
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		want       models.ErrorResponse
	}{
		{
			name:       "provider text replaces message",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidCredentials, providerErr(adapter.ErrInvalidCredentials, "Email not confirmed")),
			wantStatus: http.StatusBadRequest,
			want:       models.ErrorResponse{Error: "Email not confirmed"},
		},
		{
			name:       "provider text goes to details",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidResetToken, providerErr(adapter.ErrInvalidToken, "invalid JWT")),
			wantStatus: http.StatusBadRequest,
			want:       models.ErrorResponse{Error: "Invalid reset token", Details: "invalid JWT"},
		},
		{
			name:       "no provider text",
			err:        service.ErrInvalidResetToken,
			wantStatus: http.StatusBadRequest,
			want:       models.ErrorResponse{Error: "Invalid reset token"},
		},
		{
			name:       "provider text suppressed",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidToken, providerErr(adapter.ErrInvalidToken, "secret internals")),
			wantStatus: http.StatusUnauthorized,
			want:       models.ErrorResponse{Error: "Invalid token"},
		},
		{
			name:       "server errors use the fallback",
			err:        fmt.Errorf("%w: %w", service.ErrProviderUnavailable, providerErr(adapter.ErrUnavailable, "upstream 502")),
			wantStatus: http.StatusInternalServerError,
			want:       models.ErrorResponse{Error: "fallback"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/x", nil)

			writeServiceError(rr, req, tt.err, "fallback")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.want, decodeError(t, rr))
		})
	}
}
