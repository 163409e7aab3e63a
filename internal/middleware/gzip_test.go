package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaveEcho struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
}

// leaveEchoHandler decodes a leave application and answers with the fields it read.
func leaveEchoHandler(w http.ResponseWriter, r *http.Request) {
	var in leaveEcho
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"employee_id": in.EmployeeID,
		"leave_type":  in.LeaveType,
		"status":      "PENDING",
	})
}

func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestGzipMiddleware(t *testing.T) {
	application := []byte(`{"employee_id":"E001","leave_type":"Unpaid"}`)

	tests := []struct {
		name           string
		compressBody   bool
		acceptEncoding string
		wantEncoding   string
	}{
		{name: "plain request, gzip response", acceptEncoding: "gzip, deflate", wantEncoding: "gzip"},
		{name: "plain request, plain response", acceptEncoding: "", wantEncoding: ""},
		{name: "gzip request, gzip response", compressBody: true, acceptEncoding: "gzip", wantEncoding: "gzip"},
		{name: "gzip request, plain response", compressBody: true, acceptEncoding: "identity", wantEncoding: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := application
			if tt.compressBody {
				body = gzipBytes(t, application)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/leaves", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.compressBody {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			rec := httptest.NewRecorder()
			GzipMiddleware(http.HandlerFunc(leaveEchoHandler)).ServeHTTP(rec, req)

			res := rec.Result()
			defer res.Body.Close()

			require.Equal(t, http.StatusCreated, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
			assert.Equal(t, tt.wantEncoding, res.Header.Get("Content-Encoding"))

			var reader io.Reader = res.Body
			if tt.wantEncoding == "gzip" {
				assert.Equal(t, "Accept-Encoding", res.Header.Get("Vary"))

				zr, err := gzip.NewReader(res.Body)
				require.NoError(t, err)
				defer zr.Close()
				reader = zr
			}

			var got map[string]string
			require.NoError(t, json.NewDecoder(reader).Decode(&got))
			assert.Equal(t, map[string]string{"employee_id": "E001", "leave_type": "Unpaid", "status": "PENDING"}, got)
		})
	}
}

func TestGzipMiddleware_DetectsContentType(t *testing.T) {
	h := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["Annual Leave","Unpaid"]`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leave-types", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestGzipMiddleware_NoContentIsNotCompressed(t *testing.T) {
	h := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leaves/pending", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestGzipMiddleware_InvalidCompressedBody(t *testing.T) {
	called := false
	h := GzipMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewReader([]byte(`{"employeeId":"E010"}`)))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}
