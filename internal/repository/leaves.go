package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/payroll-system/internal/leave"
)

const leaveColumns = `l.id::text, l.employee_id, COALESCE(e.name, ''), l.leave_type,
	l.start_date, l.end_date, l.reason, l.status, l.applied_at, l.decided_at`

const leaveFrom = ` FROM leave_requests l LEFT JOIN employees e ON e.id = l.employee_id`

// CreateLeaveRequest stores a new leave request.
func (r *PostgresRepository) CreateLeaveRequest(ctx context.Context, req *leave.Request) error {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return fmt.Errorf("parse leave id: %w", err)
	}

	err = withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO leave_requests
				(id, employee_id, leave_type, start_date, end_date, reason, working_days, status, applied_at, decided_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, req.EmployeeID, string(req.Type),
			nullDate(req.StartDate), nullDate(req.EndDate),
			req.Reason, req.WorkingDays(), string(req.Status()),
			req.AppliedAt, req.DecidedAt,
		)
		return err
	})
	if err != nil {
		switch pgCode(err) {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", ErrLeaveExists, req.ID)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrUnknownEmployee, req.EmployeeID)
		}
		return fmt.Errorf("insert leave request: %w", err)
	}

	return nil
}

// GetLeaveRequest returns a single leave request.
func (r *PostgresRepository) GetLeaveRequest(ctx context.Context, id string) (*leave.Request, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrLeaveNotFound
	}

	var req *leave.Request
	err = withRetry(ctx, func() error {
		row := r.pool.QueryRow(ctx, `SELECT `+leaveColumns+leaveFrom+` WHERE l.id = $1`, uid)

		var err error
		req, err = scanLeave(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}

	return req, nil
}

// ListLeaveRequests returns leave requests, newest first. An empty status lists all of them.
func (r *PostgresRepository) ListLeaveRequests(ctx context.Context, status leave.Status) ([]*leave.Request, error) {
	return r.queryLeaves(ctx,
		`SELECT `+leaveColumns+leaveFrom+`
		 WHERE ($1 = '' OR l.status = $1)
		 ORDER BY l.applied_at DESC`,
		string(status),
	)
}

// ListApprovedUnpaidLeaves returns approved unpaid leave overlapping [from, to].
func (r *PostgresRepository) ListApprovedUnpaidLeaves(ctx context.Context, from, to time.Time) ([]*leave.Request, error) {
	return r.queryLeaves(ctx,
		`SELECT `+leaveColumns+leaveFrom+`
		 WHERE l.status = $1 AND l.leave_type = $2
		   AND l.start_date <= $4 AND l.end_date >= $3
		 ORDER BY l.employee_id, l.start_date`,
		string(leave.StatusApproved), string(leave.TypeUnpaid), from, to,
	)
}

// UpdateLeaveStatus moves a request from one status to another. It fails with
// ErrStatusConflict if the stored status is no longer from.
func (r *PostgresRepository) UpdateLeaveStatus(ctx context.Context, id string, from, to leave.Status, decidedAt time.Time) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrLeaveNotFound
	}

	return withRetry(ctx, func() error {
		tag, err := r.pool.Exec(ctx,
			`UPDATE leave_requests SET status = $3, decided_at = $4 WHERE id = $1 AND status = $2`,
			uid, string(from), string(to), decidedAt,
		)
		if err != nil {
			return fmt.Errorf("update leave status: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		var exists bool
		err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`, uid).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check leave request: %w", err)
		}
		if !exists {
			return ErrLeaveNotFound
		}
		return ErrStatusConflict
	})
}

func (r *PostgresRepository) queryLeaves(ctx context.Context, sql string, args ...any) ([]*leave.Request, error) {
	var res []*leave.Request

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("select leave requests: %w", err)
		}
		defer rows.Close()

		res = res[:0]
		for rows.Next() {
			req, err := scanLeave(rows)
			if err != nil {
				return err
			}
			res = append(res, req)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func scanLeave(row pgx.Row) (*leave.Request, error) {
	var (
		req        leave.Request
		leaveType  string
		status     string
		start, end *time.Time
	)

	err := row.Scan(&req.ID, &req.EmployeeID, &req.EmployeeName, &leaveType,
		&start, &end, &req.Reason, &status, &req.AppliedAt, &req.DecidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan leave request: %w", err)
	}

	st, err := leave.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("leave request %s: %w", req.ID, err)
	}

	req.Type = leave.Type(leaveType)
	if start != nil {
		req.StartDate = *start
	}
	if end != nil {
		req.EndDate = *end
	}

	return leave.Restore(req, st), nil
}

func nullDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
