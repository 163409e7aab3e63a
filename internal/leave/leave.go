// Package leave models leave requests and their approval lifecycle.
package leave

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmeshcher/payroll-system/internal/workdays"
)

var (
	// ErrInvalidStateTransition is returned when a request in a terminal status is mutated.
	ErrInvalidStateTransition = errors.New("invalid leave state transition")
	// ErrInvalidRequest is returned when a request lacks an employee or a leave type.
	ErrInvalidRequest = errors.New("invalid leave request")
	// ErrUnknownRole is returned for a submitter role other than ess or admin.
	ErrUnknownRole = errors.New("unknown submitter role")
	// ErrUnknownAction is returned for an approval action other than approve or reject.
	ErrUnknownAction = errors.New("unknown approval action")
)

// Type is a leave category. The set is open: unknown labels are kept as-is.
type Type string

// Known leave types.
const (
	TypeAnnual    Type = "Annual Leave"
	TypeSick      Type = "Sick Leave"
	TypeMaternity Type = "Maternity Leave"
	TypePaternity Type = "Paternity Leave"
	TypeUnpaid    Type = "Unpaid"
)

// Types lists the known leave types in display order.
func Types() []Type {
	return []Type{TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeUnpaid}
}

// ParseType maps loosely spelled labels onto the known types.
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "annual", "annual leave":
		return TypeAnnual
	case "sick", "sick leave":
		return TypeSick
	case "maternity", "maternity leave":
		return TypeMaternity
	case "paternity", "paternity leave":
		return TypePaternity
	case "unpaid", "unpaid leave":
		return TypeUnpaid
	}
	return Type(s)
}

// Status is the approval status of a leave request.
type Status string

// Leave request statuses.
const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown leave status %q", s)
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Role identifies who files a leave request.
type Role string

// Submitter roles.
const (
	RoleESS   Role = "ess"
	RoleAdmin Role = "admin"
)

// ParseRole accepts a role in any letter case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleESS, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Action is an approval decision.
type Action string

// Approval actions.
const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request is a single leave application. Working days and status are derived and
// can only change through Reschedule and Apply.
type Request struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	AppliedAt    time.Time
	DecidedAt    *time.Time

	workingDays int
	status      Status
}

// NewParams holds the caller supplied fields of a new request.
type NewParams struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         Type
	StartDate    time.Time
	EndDate      time.Time
	Reason       string
	Role         Role
	AppliedAt    time.Time
}

// New creates a request. Self-service submitters start in PENDING,
// administrative submitters are approved immediately.
func New(p NewParams) (*Request, error) {
	if strings.TrimSpace(p.EmployeeID) == "" {
		return nil, fmt.Errorf("%w: employee is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(string(p.Type)) == "" {
		return nil, fmt.Errorf("%w: leave type is required", ErrInvalidRequest)
	}

	var status Status
	switch p.Role {
	case RoleESS:
		status = StatusPending
	case RoleAdmin:
		status = StatusApproved
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, p.Role)
	}

	r := &Request{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Type:         p.Type,
		StartDate:    dateOrZero(p.StartDate),
		EndDate:      dateOrZero(p.EndDate),
		Reason:       p.Reason,
		AppliedAt:    p.AppliedAt,
		status:       status,
	}
	if status == StatusApproved {
		at := p.AppliedAt
		r.DecidedAt = &at
	}
	r.workingDays = workdays.Count(r.StartDate, r.EndDate)

	return r, nil
}

// Restore rebuilds a stored request. The working days count is recomputed from the dates.
func Restore(r Request, status Status) *Request {
	r.StartDate = dateOrZero(r.StartDate)
	r.EndDate = dateOrZero(r.EndDate)
	r.status = status
	r.workingDays = workdays.Count(r.StartDate, r.EndDate)
	return &r
}

// WorkingDays returns the number of business days covered by the request.
func (r *Request) WorkingDays() int { return r.workingDays }

// Status returns the current approval status.
func (r *Request) Status() Status { return r.status }

// Reschedule changes the dates of a pending request and recomputes its working days.
func (r *Request) Reschedule(start, end time.Time) error {
	if r.status.Terminal() {
		return fmt.Errorf("%w: cannot reschedule %s request", ErrInvalidStateTransition, r.status)
	}

	r.StartDate = dateOrZero(start)
	r.EndDate = dateOrZero(end)
	r.workingDays = workdays.Count(r.StartDate, r.EndDate)

	return nil
}

// Apply moves a pending request to APPROVED or REJECTED.
func (r *Request) Apply(action Action, at time.Time) error {
	var next Status
	switch action {
	case ActionApprove:
		next = StatusApproved
	case ActionReject:
		next = StatusRejected
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if r.status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, r.status, next)
	}

	r.status = next
	r.DecidedAt = &at

	return nil
}

func dateOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return workdays.Date(t)
}
