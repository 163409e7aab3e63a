package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmeshcher/payroll-system/internal/model"
)

func TestSubmitter(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantFound  bool
		want       model.Submitter
	}{
		{
			name:       "no headers",
			headers:    map[string]string{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "self-service submitter",
			headers:    map[string]string{SubmitterRoleHeader: "ESS", SubmitterIDHeader: " E001 "},
			wantStatus: http.StatusOK,
			wantFound:  true,
			want:       model.Submitter{Role: "ess", EmployeeID: "E001"},
		},
		{
			name:       "admin submitter",
			headers:    map[string]string{SubmitterRoleHeader: "admin"},
			wantStatus: http.StatusOK,
			wantFound:  true,
			want:       model.Submitter{Role: "admin"},
		},
		{
			name:       "unknown role",
			headers:    map[string]string{SubmitterRoleHeader: "root"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got   model.Submitter
				found bool
			)
			h := Submitter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, found = GetSubmitterFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/leaves", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}
