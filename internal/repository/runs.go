package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/payroll-system/internal/payroll"
)

// CreatePayrollRun stores a payroll run with all of its lines in one transaction.
// It fails with ErrPayrollRunExists if the period is already stored.
func (r *PostgresRepository) CreatePayrollRun(ctx context.Context, run *payroll.Run) error {
	err := withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		t := run.Totals
		_, err = tx.Exec(ctx,
			`INSERT INTO payroll_runs
				(year, month, created_at, employees, basic_salary, allowances, deductions,
				 unpaid_deduction, gross_salary, net_salary)
			 VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7::text::numeric,
				 $8::text::numeric, $9::text::numeric, $10::text::numeric)`,
			run.Year, int(run.Month), run.CreatedAt, t.Employees,
			t.BasicSalary.String(), t.Allowances.String(), t.Deductions.String(),
			t.UnpaidDeduction.String(), t.GrossSalary.String(), t.NetSalary.String(),
		)
		if err != nil {
			return fmt.Errorf("insert payroll run: %w", err)
		}

		for _, l := range run.Lines {
			_, err := tx.Exec(ctx,
				`INSERT INTO payroll_run_lines
					(year, month, employee_id, name, department, designation, days_in_month, unpaid_leave_days,
					 basic_salary, allowances, deductions, daily_rate, unpaid_deduction, gross_salary, net_salary)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
					 $9::text::numeric, $10::text::numeric, $11::text::numeric, $12::text::numeric,
					 $13::text::numeric, $14::text::numeric, $15::text::numeric)`,
				run.Year, int(run.Month), l.EmployeeID, l.Name, l.Department, l.Designation,
				l.DaysInMonth, l.UnpaidLeaveDays,
				l.BasicSalary.String(), l.Allowances.String(), l.Deductions.String(), l.DailyRate.String(),
				l.UnpaidDeduction.String(), l.GrossSalary.String(), l.NetSalary.String(),
			)
			if err != nil {
				return fmt.Errorf("insert payroll line %s: %w", l.EmployeeID, err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
	if err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %d-%02d", ErrPayrollRunExists, run.Year, int(run.Month))
		}
		return err
	}

	return nil
}

// GetPayrollRun returns the payroll run stored for month and year.
func (r *PostgresRepository) GetPayrollRun(ctx context.Context, month time.Month, year int) (*payroll.Run, error) {
	run := &payroll.Run{Month: month, Year: year}

	err := withRetry(ctx, func() error {
		var totals [6]string

		err := r.pool.QueryRow(ctx,
			`SELECT created_at, employees, basic_salary::text, allowances::text, deductions::text,
				unpaid_deduction::text, gross_salary::text, net_salary::text
			 FROM payroll_runs WHERE year = $1 AND month = $2`,
			year, int(month),
		).Scan(&run.CreatedAt, &run.Totals.Employees,
			&totals[0], &totals[1], &totals[2], &totals[3], &totals[4], &totals[5])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			return fmt.Errorf("select payroll run: %w", err)
		}

		if err := parseDecimals(totals[:], &run.Totals.BasicSalary, &run.Totals.Allowances, &run.Totals.Deductions,
			&run.Totals.UnpaidDeduction, &run.Totals.GrossSalary, &run.Totals.NetSalary); err != nil {
			return fmt.Errorf("payroll run totals: %w", err)
		}

		rows, err := r.pool.Query(ctx,
			`SELECT employee_id, name, department, designation, days_in_month, unpaid_leave_days,
				basic_salary::text, allowances::text, deductions::text, daily_rate::text,
				unpaid_deduction::text, gross_salary::text, net_salary::text
			 FROM payroll_run_lines WHERE year = $1 AND month = $2
			 ORDER BY employee_id`,
			year, int(month),
		)
		if err != nil {
			return fmt.Errorf("select payroll lines: %w", err)
		}
		defer rows.Close()

		run.Lines = run.Lines[:0]
		for rows.Next() {
			l := payroll.Line{Month: month, Year: year}
			var amounts [7]string

			err := rows.Scan(&l.EmployeeID, &l.Name, &l.Department, &l.Designation, &l.DaysInMonth, &l.UnpaidLeaveDays,
				&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5], &amounts[6])
			if err != nil {
				return fmt.Errorf("scan payroll line: %w", err)
			}

			if err := parseDecimals(amounts[:], &l.BasicSalary, &l.Allowances, &l.Deductions, &l.DailyRate,
				&l.UnpaidDeduction, &l.GrossSalary, &l.NetSalary); err != nil {
				return fmt.Errorf("payroll line %s: %w", l.EmployeeID, err)
			}
			run.Lines = append(run.Lines, l)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d-%02d", ErrPayrollRunNotFound, year, int(month))
		}
		return nil, err
	}

	return run, nil
}

// parseDecimals parses src[i] into dst[i].
func parseDecimals(src []string, dst ...*decimal.Decimal) error {
	if len(src) != len(dst) {
		return fmt.Errorf("parse decimals: %d values for %d fields", len(src), len(dst))
	}

	for i, s := range src {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("parse %q: %w", s, err)
		}
		*dst[i] = d
	}
	return nil
}
