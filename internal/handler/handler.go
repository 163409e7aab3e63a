// Package handler contains the HTTP API of the payroll service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/model"
	"github.com/mmeshcher/payroll-system/internal/payroll"
	"github.com/mmeshcher/payroll-system/internal/repository"
	"github.com/mmeshcher/payroll-system/internal/service"
	"github.com/mmeshcher/payroll-system/internal/validation"
)

// Service defines the business logic used by the HTTP handlers.
type Service interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	CreateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error)
	ApplyLeave(ctx context.Context, in service.ApplyLeaveInput) (*leave.Request, error)
	DecideLeave(ctx context.Context, id string, action leave.Action, sub model.Submitter) (*leave.Request, error)
	ListLeaves(ctx context.Context, f leave.Filter) ([]*leave.Request, error)
	PendingLeaves(ctx context.Context) ([]*leave.Request, error)
	RunPayroll(ctx context.Context, month time.Month, year int, c payroll.Criteria) (*service.PayrollReport, error)
	CreatePayrollRun(ctx context.Context, month time.Month, year int) (*payroll.Run, error)
	GetPayrollRun(ctx context.Context, month time.Month, year int) (*payroll.Run, error)
}

// Handler implements the HTTP API.
type Handler struct {
	service     Service
	logger      *zap.Logger
	corsOrigins []string
}

// NewHandler creates the HTTP handlers. An empty origin list allows any origin.
func NewHandler(s Service, logger *zap.Logger, corsOrigins []string) *Handler {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	return &Handler{
		service:     s,
		logger:      logger,
		corsOrigins: corsOrigins,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, validation.ErrInvalidInput),
		errors.Is(err, leave.ErrInvalidRequest),
		errors.Is(err, leave.ErrUnknownRole),
		errors.Is(err, leave.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrLeaveNotFound),
		errors.Is(err, repository.ErrEmployeeNotFound),
		errors.Is(err, repository.ErrPayrollRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, leave.ErrInvalidStateTransition),
		errors.Is(err, repository.ErrStatusConflict),
		errors.Is(err, repository.ErrLeaveExists),
		errors.Is(err, repository.ErrEmployeeExists),
		errors.Is(err, repository.ErrPayrollRunExists):
		return http.StatusConflict
	case errors.Is(err, payroll.ErrNegativeInput),
		errors.Is(err, repository.ErrUnknownEmployee):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, fields ...zap.Field) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(msg, append(fields, zap.Error(err))...)
	} else {
		h.logger.Debug(msg, append(fields, zap.Error(err))...)
	}
	http.Error(w, http.StatusText(code), code)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}
