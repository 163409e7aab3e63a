// Package payroll computes monthly payroll lines, filtered views and column totals.
//
// Amounts are fixed-point decimals. Intermediate values keep full precision;
// rounding to cents is left to presentation code.
package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/payroll-system/internal/workdays"
)

// RatePrecision is the number of fractional digits kept in the daily rate.
const RatePrecision = 16

var (
	// ErrInvalidPeriod is returned when the payroll month is outside 1..12.
	ErrInvalidPeriod = errors.New("invalid payroll period")
	// ErrNegativeInput is matched by every NegativeInputError.
	ErrNegativeInput = errors.New("negative payroll input")
)

// NegativeInputError identifies the record and field holding a negative value.
type NegativeInputError struct {
	Index      int
	EmployeeID string
	Field      string
}

func (e *NegativeInputError) Error() string {
	return fmt.Sprintf("negative %s for employee %q (record %d)", e.Field, e.EmployeeID, e.Index)
}

func (e *NegativeInputError) Unwrap() error { return ErrNegativeInput }

// Compensation holds one employee's salary inputs for a payroll run.
type Compensation struct {
	EmployeeID  string
	Name        string
	Department  string
	Designation string
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	// UnpaidLeaveDays is the count of approved unpaid leave days in the target month.
	UnpaidLeaveDays int
}

// Line is the computed payroll of one employee for one month.
type Line struct {
	Compensation
	Month           time.Month
	Year            int
	DaysInMonth     int
	DailyRate       decimal.Decimal
	UnpaidDeduction decimal.Decimal
	GrossSalary     decimal.Decimal
	NetSalary       decimal.Decimal
}

// ValidatePeriod checks that month is in 1..12.
func ValidatePeriod(month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, int(month))
	}
	return nil
}

// Validate checks every record and reports all negative fields at once.
func Validate(employees []Compensation) error {
	var errs []error
	for i, e := range employees {
		check := func(field string, negative bool) {
			if negative {
				errs = append(errs, &NegativeInputError{Index: i, EmployeeID: e.EmployeeID, Field: field})
			}
		}
		check("basicSalary", e.BasicSalary.IsNegative())
		check("allowances", e.Allowances.IsNegative())
		check("deductions", e.Deductions.IsNegative())
		check("unpaidLeaveDays", e.UnpaidLeaveDays < 0)
	}
	return errors.Join(errs...)
}

// Compute returns one line per employee in input order. An invalid period or any
// negative input rejects the whole batch.
func Compute(employees []Compensation, month time.Month, year int) ([]Line, error) {
	if err := ValidatePeriod(month); err != nil {
		return nil, err
	}
	if err := Validate(employees); err != nil {
		return nil, err
	}

	dim := workdays.DaysInMonth(month, year)

	lines := make([]Line, len(employees))
	for i, e := range employees {
		lines[i] = computeLine(e, month, year, dim)
	}

	return lines, nil
}

// ComputeParallel is Compute with the per-employee work spread over at most
// workers goroutines. The result order matches the input order.
func ComputeParallel(ctx context.Context, employees []Compensation, month time.Month, year int, workers int) ([]Line, error) {
	if err := ValidatePeriod(month); err != nil {
		return nil, err
	}
	if err := Validate(employees); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	dim := workdays.DaysInMonth(month, year)
	lines := make([]Line, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range employees {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines[i] = computeLine(employees[i], month, year, dim)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute payroll: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compute payroll: %w", err)
	}

	return lines, nil
}

func computeLine(e Compensation, month time.Month, year, dim int) Line {
	gross := e.BasicSalary.Add(e.Allowances)
	daily := gross.DivRound(decimal.NewFromInt(int64(dim)), RatePrecision)
	unpaid := daily.Mul(decimal.NewFromInt(int64(e.UnpaidLeaveDays)))

	return Line{
		Compensation:    e,
		Month:           month,
		Year:            year,
		DaysInMonth:     dim,
		DailyRate:       daily,
		UnpaidDeduction: unpaid,
		GrossSalary:     gross,
		NetSalary:       gross.Sub(e.Deductions).Sub(unpaid),
	}
}
