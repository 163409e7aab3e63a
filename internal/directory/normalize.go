package directory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/payroll-system/internal/model"
)

var (
	idKeys          = []string{"employee_id", "emp_id", "employeeId", "empId", "id"}
	nameKeys        = []string{"name", "employee_name", "employeeName", "full_name", "fullName"}
	departmentKeys  = []string{"department", "dept"}
	designationKeys = []string{"designation", "position", "job_title"}
	basicKeys       = []string{"basicSalary", "basic_salary", "basic"}
	allowanceKeys   = []string{"allowances", "allowance"}
	deductionKeys   = []string{"deductions", "deduction"}
)

func normalize(rec map[string]any) (model.Employee, error) {
	id := text(lookup(rec, idKeys))
	if id == "" {
		return model.Employee{}, fmt.Errorf("missing employee id")
	}

	name := text(lookup(rec, nameKeys))
	if name == "" {
		name = strings.TrimSpace(text(rec["first_name"]) + " " + text(rec["last_name"]))
	}

	e := model.Employee{
		ID:          id,
		Name:        name,
		Department:  text(lookup(rec, departmentKeys)),
		Designation: text(lookup(rec, designationKeys)),
	}

	var err error
	if e.BasicSalary, err = amount(lookup(rec, basicKeys)); err != nil {
		return model.Employee{}, fmt.Errorf("basic salary: %w", err)
	}
	if e.Allowances, err = amount(lookup(rec, allowanceKeys)); err != nil {
		return model.Employee{}, fmt.Errorf("allowances: %w", err)
	}
	if e.Deductions, err = amount(lookup(rec, deductionKeys)); err != nil {
		return model.Employee{}, fmt.Errorf("deductions: %w", err)
	}

	return e, nil
}

func lookup(rec map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// amount reads a monetary value given as a JSON number or a numeric string.
// Missing and empty values are zero.
func amount(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %q", t)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected type %T", v)
	}
}
