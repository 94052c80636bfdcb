package errors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pribylovaa/go-videohub/internal/service"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", fmt.Errorf("op: %w", service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"invalid_cursor", fmt.Errorf("op: %w", service.ErrInvalidCursor), http.StatusBadRequest, "invalid_cursor"},
		{"not_found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"conflict", service.ErrConflict, http.StatusConflict, "already_exists"},
		{"unauth", service.ErrUnauthorized, http.StatusUnauthorized, "unauthenticated"},
		{"rate_limited", ErrRateLimited, http.StatusTooManyRequests, "resource_exhausted"},
		{"unavailable", fmt.Errorf("op: %w: %w", service.ErrUnavailable, fmt.Errorf("conn refused")), http.StatusServiceUnavailable, "unavailable"},
		{"deadline", fmt.Errorf("op: %w: %w", service.ErrUnavailable, context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", fmt.Errorf("op: %w: %w", service.ErrUnavailable, context.Canceled), StatusClientClosedRequest, "canceled"},
		{"internal", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_EnvelopeWithRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "not_found", env.Error.Code)
	require.Equal(t, "rid-1", env.Error.RequestID)
}
