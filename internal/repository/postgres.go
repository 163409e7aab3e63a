// Package repository implements PostgreSQL storage for employees, leave requests
// and stored payroll runs.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	// ErrEmployeeNotFound is returned when an employee id is not stored.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeExists is returned when creating an employee whose id is taken.
	ErrEmployeeExists = errors.New("employee already exists")
	// ErrUnknownEmployee is returned when a leave request references a missing employee.
	ErrUnknownEmployee = errors.New("unknown employee")
	// ErrLeaveNotFound is returned when a leave request id is not stored.
	ErrLeaveNotFound = errors.New("leave request not found")
	// ErrLeaveExists is returned when a leave request id is already taken.
	ErrLeaveExists = errors.New("leave request already exists")
	// ErrStatusConflict is returned when a leave request changed status concurrently.
	ErrStatusConflict = errors.New("leave request status changed concurrently")
	// ErrPayrollRunExists is returned when a payroll run for the period is already stored.
	ErrPayrollRunExists = errors.New("payroll run already exists")
	// ErrPayrollRunNotFound is returned when no payroll run is stored for the period.
	ErrPayrollRunNotFound = errors.New("payroll run not found")
)

// PostgresRepository provides access to the PostgreSQL store.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies pending migrations.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

var retryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i <= len(retryDelays); i++ {
		err = fn()
		if err == nil || !isRetryable(err) || i == len(retryDelays) {
			return err
		}

		timer := time.NewTimer(retryDelays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
