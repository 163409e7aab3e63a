package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, body: "hello", wantLevel: "info"},
		{name: "client error", status: http.StatusConflict, body: "conflict", wantLevel: "info"},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)

			h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/payroll?month=6&year=2025", nil)
			h.ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.All()
			require.Len(t, entries, 1)

			e := entries[0]
			assert.Equal(t, tt.wantLevel, e.Level.String())

			fields := e.ContextMap()
			assert.Equal(t, http.MethodGet, fields["method"])
			assert.Equal(t, "/api/payroll?month=6&year=2025", fields["uri"])
			assert.EqualValues(t, tt.status, fields["status"])
			assert.EqualValues(t, len(tt.body), fields["size"])
		})
	}
}

func TestLogger_ImplicitOK(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/employees", nil))

	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
}
