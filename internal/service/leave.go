package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/model"
	"github.com/mmeshcher/payroll-system/internal/repository"
)

// ApplyLeaveInput carries a leave application together with its submitter.
type ApplyLeaveInput struct {
	Submitter  model.Submitter
	EmployeeID string
	Type       leave.Type
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

func newLeaveID() string {
	return uuid.NewString()
}

// ApplyLeave files a leave request. Self-service submitters may only file for
// themselves and their requests wait for approval; admin requests are approved at once.
func (s *Service) ApplyLeave(ctx context.Context, in ApplyLeaveInput) (*leave.Request, error) {
	role, err := leave.ParseRole(in.Submitter.Role)
	if err != nil {
		return nil, err
	}

	employeeID := in.EmployeeID
	if role == leave.RoleESS {
		if in.Submitter.EmployeeID == "" {
			return nil, fmt.Errorf("%w: self-service submitter without employee id", ErrForbidden)
		}
		if employeeID == "" {
			employeeID = in.Submitter.EmployeeID
		}
		if employeeID != in.Submitter.EmployeeID {
			return nil, fmt.Errorf("%w: %s filing for %s", ErrForbidden, in.Submitter.EmployeeID, employeeID)
		}
	}

	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee is required", leave.ErrInvalidRequest)
	}

	emp, err := s.repo.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("%w: %s", repository.ErrUnknownEmployee, employeeID)
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}

	req, err := leave.New(leave.NewParams{
		ID:           s.newID(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         in.Type,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Reason:       in.Reason,
		Role:         role,
		AppliedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateLeaveRequest(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("leave request filed",
		zap.String("id", req.ID),
		zap.String("employee", req.EmployeeID),
		zap.String("type", string(req.Type)),
		zap.Int("workingDays", req.WorkingDays()),
		zap.String("status", string(req.Status())),
	)

	return req, nil
}

// DecideLeave approves or rejects a pending leave request. Only admin submitters
// may decide.
func (s *Service) DecideLeave(ctx context.Context, id string, action leave.Action, sub model.Submitter) (*leave.Request, error) {
	if role, err := leave.ParseRole(sub.Role); err != nil || role != leave.RoleAdmin {
		return nil, fmt.Errorf("%w: role %q cannot decide leave", ErrForbidden, sub.Role)
	}

	req, err := s.repo.GetLeaveRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	from := req.Status()
	if err := req.Apply(action, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLeaveStatus(ctx, req.ID, from, req.Status(), *req.DecidedAt); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: %w", leave.ErrInvalidStateTransition, err)
		}
		return nil, err
	}

	s.logger.Info("leave request decided",
		zap.String("id", req.ID),
		zap.String("from", string(from)),
		zap.String("to", string(req.Status())),
		zap.String("by", sub.EmployeeID),
	)

	return req, nil
}

// ListLeaves returns the leave history matching f.
func (s *Service) ListLeaves(ctx context.Context, f leave.Filter) ([]*leave.Request, error) {
	reqs, err := s.repo.ListLeaveRequests(ctx, f.Status)
	if err != nil {
		return nil, err
	}
	return leave.FilterRequests(reqs, f), nil
}

// PendingLeaves returns the requests awaiting approval.
func (s *Service) PendingLeaves(ctx context.Context) ([]*leave.Request, error) {
	return s.ListLeaves(ctx, leave.Filter{Status: leave.StatusPending})
}
