package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Criteria selects payroll lines. Empty fields match everything.
type Criteria struct {
	// NameContains is matched case-insensitively as a substring of the name.
	NameContains string
	// Department must match exactly.
	Department string
}

// Filter returns the lines satisfying c, preserving order.
func Filter(lines []Line, c Criteria) []Line {
	q := strings.ToLower(strings.TrimSpace(c.NameContains))

	res := make([]Line, 0, len(lines))
	for _, l := range lines {
		if q != "" && !strings.Contains(strings.ToLower(l.Name), q) {
			continue
		}
		if c.Department != "" && l.Department != c.Department {
			continue
		}
		res = append(res, l)
	}
	return res
}

// Totals holds column sums over a set of payroll lines.
type Totals struct {
	Employees       int
	BasicSalary     decimal.Decimal
	Allowances      decimal.Decimal
	Deductions      decimal.Decimal
	UnpaidDeduction decimal.Decimal
	GrossSalary     decimal.Decimal
	NetSalary       decimal.Decimal
}

// ComputeTotals sums the monetary columns of lines. No lines give zero totals.
func ComputeTotals(lines []Line) Totals {
	t := Totals{
		BasicSalary:     decimal.Zero,
		Allowances:      decimal.Zero,
		Deductions:      decimal.Zero,
		UnpaidDeduction: decimal.Zero,
		GrossSalary:     decimal.Zero,
		NetSalary:       decimal.Zero,
	}

	for _, l := range lines {
		t.Employees++
		t.BasicSalary = t.BasicSalary.Add(l.BasicSalary)
		t.Allowances = t.Allowances.Add(l.Allowances)
		t.Deductions = t.Deductions.Add(l.Deductions)
		t.UnpaidDeduction = t.UnpaidDeduction.Add(l.UnpaidDeduction)
		t.GrossSalary = t.GrossSalary.Add(l.GrossSalary)
		t.NetSalary = t.NetSalary.Add(l.NetSalary)
	}

	return t
}

// Departments lists the distinct non-empty departments in first-seen order.
func Departments(lines []Line) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, l := range lines {
		if l.Department == "" {
			continue
		}
		if _, ok := seen[l.Department]; ok {
			continue
		}
		seen[l.Department] = struct{}{}
		res = append(res, l.Department)
	}
	return res
}

// Run is a payroll fixed for one period. It keeps every line of the period
// together with their totals.
type Run struct {
	Month     time.Month
	Year      int
	CreatedAt time.Time
	Lines     []Line
	Totals    Totals
}

// NewRun builds a run for month and year from the computed lines.
func NewRun(lines []Line, month time.Month, year int, createdAt time.Time) *Run {
	return &Run{
		Month:     month,
		Year:      year,
		CreatedAt: createdAt,
		Lines:     lines,
		Totals:    ComputeTotals(lines),
	}
}
