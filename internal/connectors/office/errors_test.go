package office

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{name: "unauthorized", statusCode: http.StatusUnauthorized, wantErr: ErrUnauthorised},
		{name: "gone", statusCode: http.StatusGone, wantErr: ErrSyncStateGone},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, wantErr: ErrRateLimited},
		{name: "bad request", statusCode: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "internal server error", statusCode: http.StatusInternalServerError, wantErr: ErrServerError},
		{name: "bad gateway", statusCode: http.StatusBadGateway, wantErr: ErrServerError},
		{name: "ok", statusCode: http.StatusOK, wantErr: nil},
		{name: "not found", statusCode: http.StatusNotFound, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(tt.statusCode)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStatusClassifiers(t *testing.T) {
	assert.True(t, IsUnauthorised(http.StatusUnauthorized))
	assert.False(t, IsUnauthorised(http.StatusForbidden))

	assert.True(t, IsSyncStateGone(http.StatusGone))
	assert.False(t, IsSyncStateGone(http.StatusNotFound))

	assert.True(t, IsRateLimited(http.StatusTooManyRequests))
	assert.False(t, IsRateLimited(http.StatusServiceUnavailable))
}
