package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/payroll"
)

// PayrollReport is the result of a payroll run after filtering.
type PayrollReport struct {
	Month       time.Month
	Year        int
	Lines       []payroll.Line
	Totals      payroll.Totals
	Departments []string
}

// RunPayroll computes the payroll of every stored employee for the given month,
// pro-rating approved unpaid leave, and returns the lines matching c with their totals.
// Departments lists every department of the unfiltered run.
func (s *Service) RunPayroll(ctx context.Context, month time.Month, year int, c payroll.Criteria) (*PayrollReport, error) {
	if err := payroll.ValidatePeriod(month); err != nil {
		return nil, err
	}

	lines, err := s.computeLines(ctx, month, year)
	if err != nil {
		return nil, err
	}

	filtered := payroll.Filter(lines, c)

	return &PayrollReport{
		Month:       month,
		Year:        year,
		Lines:       filtered,
		Totals:      payroll.ComputeTotals(filtered),
		Departments: payroll.Departments(lines),
	}, nil
}

// CreatePayrollRun computes the payroll of every stored employee for the period and
// stores it. A period can be stored only once.
func (s *Service) CreatePayrollRun(ctx context.Context, month time.Month, year int) (*payroll.Run, error) {
	if err := payroll.ValidatePeriod(month); err != nil {
		return nil, err
	}

	lines, err := s.computeLines(ctx, month, year)
	if err != nil {
		return nil, err
	}

	run := payroll.NewRun(lines, month, year, s.now())
	if err := s.repo.CreatePayrollRun(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("payroll run created",
		zap.Int("month", int(month)),
		zap.Int("year", year),
		zap.Int("employees", run.Totals.Employees),
		zap.String("net", run.Totals.NetSalary.StringFixed(2)),
	)

	return run, nil
}

// GetPayrollRun returns the stored payroll run of the period.
func (s *Service) GetPayrollRun(ctx context.Context, month time.Month, year int) (*payroll.Run, error) {
	if err := payroll.ValidatePeriod(month); err != nil {
		return nil, err
	}
	return s.repo.GetPayrollRun(ctx, month, year)
}

func (s *Service) computeLines(ctx context.Context, month time.Month, year int) ([]payroll.Line, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	unpaidLeaves, err := s.repo.ListApprovedUnpaidLeaves(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list unpaid leave: %w", err)
	}
	unpaid := leave.UnpaidDaysByEmployee(unpaidLeaves, month, year)

	comp := make([]payroll.Compensation, 0, len(employees))
	for _, e := range employees {
		comp = append(comp, payroll.Compensation{
			EmployeeID:      e.ID,
			Name:            e.Name,
			Department:      e.Department,
			Designation:     e.Designation,
			BasicSalary:     e.BasicSalary,
			Allowances:      e.Allowances,
			Deductions:      e.Deductions,
			UnpaidLeaveDays: unpaid[e.ID],
		})
	}

	return payroll.ComputeParallel(ctx, comp, month, year, s.workers)
}
