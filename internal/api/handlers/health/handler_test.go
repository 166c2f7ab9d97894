package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantBody   Response
	}{
		{
			name:       "all up",
			checks:     []Check{{Name: "postgres", Ping: ok}, {Name: "redis", Ping: ok}},
			wantStatus: http.StatusOK,
			wantBody:   Response{Status: "ok", Checks: map[string]string{"postgres": "up", "redis": "up"}},
		},
		{
			name:       "redis down",
			checks:     []Check{{Name: "postgres", Ping: ok}, {Name: "redis", Ping: down}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   Response{Status: "degraded", Checks: map[string]string{"postgres": "up", "redis": "down"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(logger.Nop(), tt.checks...)
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
