package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/payroll-system/internal/model"
)

const employeeColumns = `id, name, department, designation,
	basic_salary::text, allowances::text, deductions::text, updated_at`

// UpsertEmployees inserts or updates the given employees in one transaction.
func (r *PostgresRepository) UpsertEmployees(ctx context.Context, employees []model.Employee) error {
	return withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		for _, e := range employees {
			_, err := tx.Exec(ctx,
				`INSERT INTO employees (id, name, department, designation, basic_salary, allowances, deductions, updated_at)
				 VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7::text::numeric, NOW())
				 ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name,
					department = EXCLUDED.department,
					designation = EXCLUDED.designation,
					basic_salary = EXCLUDED.basic_salary,
					allowances = EXCLUDED.allowances,
					deductions = EXCLUDED.deductions,
					updated_at = NOW()`,
				e.ID, e.Name, e.Department, e.Designation,
				e.BasicSalary.String(), e.Allowances.String(), e.Deductions.String(),
			)
			if err != nil {
				return fmt.Errorf("upsert employee %s: %w", e.ID, err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// ListEmployees returns all employees ordered by id.
func (r *PostgresRepository) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var res []model.Employee

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
		if err != nil {
			return fmt.Errorf("select employees: %w", err)
		}
		defer rows.Close()

		res = res[:0]
		for rows.Next() {
			e, err := scanEmployee(rows)
			if err != nil {
				return err
			}
			res = append(res, e)
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

// GetEmployee returns a single employee.
func (r *PostgresRepository) GetEmployee(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee

	err := withRetry(ctx, func() error {
		row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)

		var err error
		e, err = scanEmployee(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	return &e, nil
}

// CreateEmployee stores a new employee. It fails with ErrEmployeeExists if the id is taken.
func (r *PostgresRepository) CreateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error) {
	var created model.Employee

	err := withRetry(ctx, func() error {
		row := r.pool.QueryRow(ctx,
			`INSERT INTO employees (id, name, department, designation, basic_salary, allowances, deductions, updated_at)
			 VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7::text::numeric, NOW())
			 RETURNING `+employeeColumns,
			e.ID, e.Name, e.Department, e.Designation,
			e.BasicSalary.String(), e.Allowances.String(), e.Deductions.String(),
		)

		var err error
		created, err = scanEmployee(row)
		return err
	})
	if err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeExists, e.ID)
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	return &created, nil
}

// UpdateEmployee replaces the profile of a stored employee. It fails with
// ErrEmployeeNotFound if the id is not stored.
func (r *PostgresRepository) UpdateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error) {
	var updated model.Employee

	err := withRetry(ctx, func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE employees SET
				name = $2,
				department = $3,
				designation = $4,
				basic_salary = $5::text::numeric,
				allowances = $6::text::numeric,
				deductions = $7::text::numeric,
				updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+employeeColumns,
			e.ID, e.Name, e.Department, e.Designation,
			e.BasicSalary.String(), e.Allowances.String(), e.Deductions.String(),
		)

		var err error
		updated, err = scanEmployee(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, e.ID)
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	return &updated, nil
}

func scanEmployee(row pgx.Row) (model.Employee, error) {
	var (
		e                           model.Employee
		basic, allowances, deducted string
		updatedAt                   time.Time
	)

	if err := row.Scan(&e.ID, &e.Name, &e.Department, &e.Designation, &basic, &allowances, &deducted, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, err
		}
		return e, fmt.Errorf("scan employee: %w", err)
	}

	var err error
	if e.BasicSalary, err = decimal.NewFromString(basic); err != nil {
		return e, fmt.Errorf("parse basic salary of %s: %w", e.ID, err)
	}
	if e.Allowances, err = decimal.NewFromString(allowances); err != nil {
		return e, fmt.Errorf("parse allowances of %s: %w", e.ID, err)
	}
	if e.Deductions, err = decimal.NewFromString(deducted); err != nil {
		return e, fmt.Errorf("parse deductions of %s: %w", e.ID, err)
	}
	e.UpdatedAt = updatedAt

	return e, nil
}
