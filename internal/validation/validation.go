// Package validation contains parsers for request input.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/payroll-system/internal/model"
)

// ErrInvalidInput is returned for malformed or out-of-range values.
var ErrInvalidInput = errors.New("invalid input")

// ParseDate parses a calendar date given as 2006-01-02 or RFC 3339 and returns it
// at midnight UTC. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidInput, s)
	}

	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParsePeriod parses month and year query values. The month range is checked by
// the payroll computation, not here.
func ParsePeriod(month, year string) (time.Month, int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q", ErrInvalidInput, month)
	}

	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %q", ErrInvalidInput, year)
	}

	return time.Month(m), y, nil
}

// ValidateEmployee checks a submitted employee profile. An id and a name are
// required and no monetary field may be negative.
func ValidateEmployee(e model.Employee) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: employee name is required", ErrInvalidInput)
	}

	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"basic salary", e.BasicSalary},
		{"allowances", e.Allowances},
		{"deductions", e.Deductions},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: negative %s %s", ErrInvalidInput, f.name, f.value)
		}
	}

	return nil
}
