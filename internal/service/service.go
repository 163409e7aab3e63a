// Package service implements the payroll and leave business logic on top of storage.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/model"
	"github.com/mmeshcher/payroll-system/internal/payroll"
)

// ErrForbidden is returned when a submitter acts outside its role: a self-service
// submitter on another employee's records, or anyone but an admin deciding leave.
var ErrForbidden = errors.New("submitter is not allowed to perform this action")

// Repository describes the storage contract used by the service.
type Repository interface {
	Close() error
	UpsertEmployees(ctx context.Context, employees []model.Employee) error
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id string) (*model.Employee, error)
	CreateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error)
	CreateLeaveRequest(ctx context.Context, req *leave.Request) error
	GetLeaveRequest(ctx context.Context, id string) (*leave.Request, error)
	ListLeaveRequests(ctx context.Context, status leave.Status) ([]*leave.Request, error)
	ListApprovedUnpaidLeaves(ctx context.Context, from, to time.Time) ([]*leave.Request, error)
	UpdateLeaveStatus(ctx context.Context, id string, from, to leave.Status, decidedAt time.Time) error
	CreatePayrollRun(ctx context.Context, run *payroll.Run) error
	GetPayrollRun(ctx context.Context, month time.Month, year int) (*payroll.Run, error)
}

// Directory is the upstream source of employee profiles.
type Directory interface {
	FetchEmployees(ctx context.Context) ([]model.Employee, int, time.Duration, error)
}

// Service holds the payroll and leave business logic.
type Service struct {
	repo      Repository
	directory Directory
	logger    *zap.Logger
	workers   int

	now   func() time.Time
	newID func() string
}

// NewService creates a service. directory may be nil when no upstream is configured.
func NewService(repo Repository, directory Directory, logger *zap.Logger, workers int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}

	return &Service{
		repo:      repo,
		directory: directory,
		logger:    logger,
		workers:   workers,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     newLeaveID,
	}
}

// Close releases the service resources.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// ListEmployees returns every stored employee.
func (s *Service) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

// CreateEmployee stores a new employee profile.
func (s *Service) CreateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error) {
	created, err := s.repo.CreateEmployee(ctx, e)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee created", zap.String("id", created.ID), zap.String("department", created.Department))
	return created, nil
}

// UpdateEmployee replaces a stored employee profile.
func (s *Service) UpdateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error) {
	updated, err := s.repo.UpdateEmployee(ctx, e)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", zap.String("id", updated.ID))
	return updated, nil
}
