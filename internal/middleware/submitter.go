package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/model"
)

type contextKey string

const submitterKey contextKey = "submitter"

// Headers carrying the acting submitter.
const (
	SubmitterRoleHeader = "X-Submitter-Role"
	SubmitterIDHeader   = "X-Submitter-Id"
)

// Submitter reads the submitter headers and stores them in the request context.
// Requests without a role header pass through untouched; an unknown role is rejected.
func Submitter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := strings.TrimSpace(r.Header.Get(SubmitterRoleHeader))
		if role == "" {
			next.ServeHTTP(w, r)
			return
		}

		parsed, err := leave.ParseRole(role)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		sub := model.Submitter{
			Role:       string(parsed),
			EmployeeID: strings.TrimSpace(r.Header.Get(SubmitterIDHeader)),
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), submitterKey, sub)))
	})
}

// GetSubmitterFromContext returns the submitter stored by Submitter.
func GetSubmitterFromContext(ctx context.Context) (model.Submitter, bool) {
	sub, ok := ctx.Value(submitterKey).(model.Submitter)
	return sub, ok
}
