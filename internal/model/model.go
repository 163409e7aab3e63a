// Package model contains the domain entities shared by the payroll service layers.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the canonical employee profile after normalisation at the data source boundary.
type Employee struct {
	ID          string
	Name        string
	Department  string
	Designation string
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	UpdatedAt   time.Time
}

// Submitter identifies who acts on a leave request. It is passed explicitly on every call.
type Submitter struct {
	Role       string
	EmployeeID string
}
