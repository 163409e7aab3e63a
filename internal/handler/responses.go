package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/model"
	"github.com/mmeshcher/payroll-system/internal/payroll"
	"github.com/mmeshcher/payroll-system/internal/service"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

type employeeResponse struct {
	ID          string `json:"employee_id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	BasicSalary string `json:"basic_salary"`
	Allowances  string `json:"allowances"`
	Deductions  string `json:"deductions"`
}

func newEmployeeResponse(e model.Employee) employeeResponse {
	return employeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Department:  e.Department,
		Designation: e.Designation,
		BasicSalary: money(e.BasicSalary),
		Allowances:  money(e.Allowances),
		Deductions:  money(e.Deductions),
	}
}

type leaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	WorkingDays  int     `json:"working_days"`
	Status       string  `json:"status"`
	AppliedAt    string  `json:"applied_at"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

func newLeaveResponse(r *leave.Request) leaveResponse {
	resp := leaveResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    string(r.Type),
		StartDate:    formatDate(r.StartDate),
		EndDate:      formatDate(r.EndDate),
		Reason:       r.Reason,
		WorkingDays:  r.WorkingDays(),
		Status:       string(r.Status()),
		AppliedAt:    r.AppliedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func newLeaveListResponse(reqs []*leave.Request) []leaveResponse {
	resp := make([]leaveResponse, 0, len(reqs))
	for _, r := range reqs {
		resp = append(resp, newLeaveResponse(r))
	}
	return resp
}

type payrollLineResponse struct {
	EmployeeID      string `json:"employee_id"`
	Name            string `json:"name"`
	Department      string `json:"department"`
	Designation     string `json:"designation"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
	DaysInMonth     int    `json:"days_in_month"`
	UnpaidLeaveDays int    `json:"unpaid_leave_days"`
	BasicSalary     string `json:"basic_salary"`
	Allowances      string `json:"allowances"`
	Deductions      string `json:"deductions"`
	DailyRate       string `json:"daily_rate"`
	UnpaidDeduction string `json:"unpaid_deduction"`
	GrossSalary     string `json:"gross_salary"`
	NetSalary       string `json:"net_salary"`
}

type payrollTotalsResponse struct {
	Employees       int    `json:"employees"`
	BasicSalary     string `json:"basic_salary"`
	Allowances      string `json:"allowances"`
	Deductions      string `json:"deductions"`
	UnpaidDeduction string `json:"unpaid_deduction"`
	GrossSalary     string `json:"gross_salary"`
	NetSalary       string `json:"net_salary"`
}

type payrollResponse struct {
	Month       int                   `json:"month"`
	Year        int                   `json:"year"`
	Payroll     []payrollLineResponse `json:"payroll"`
	Totals      payrollTotalsResponse `json:"totals"`
	Departments []string              `json:"departments"`
}

func newPayrollResponse(rep *service.PayrollReport) payrollResponse {
	departments := rep.Departments
	if departments == nil {
		departments = []string{}
	}

	return payrollResponse{
		Month:       int(rep.Month),
		Year:        rep.Year,
		Payroll:     newPayrollLinesResponse(rep.Lines),
		Totals:      newPayrollTotalsResponse(rep.Totals),
		Departments: departments,
	}
}

type payrollRunResponse struct {
	Month     int                   `json:"month"`
	Year      int                   `json:"year"`
	CreatedAt string                `json:"created_at"`
	Payroll   []payrollLineResponse `json:"payroll"`
	Totals    payrollTotalsResponse `json:"totals"`
}

func newPayrollRunResponse(run *payroll.Run) payrollRunResponse {
	return payrollRunResponse{
		Month:     int(run.Month),
		Year:      run.Year,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
		Payroll:   newPayrollLinesResponse(run.Lines),
		Totals:    newPayrollTotalsResponse(run.Totals),
	}
}

func newPayrollTotalsResponse(t payroll.Totals) payrollTotalsResponse {
	return payrollTotalsResponse{
		Employees:       t.Employees,
		BasicSalary:     money(t.BasicSalary),
		Allowances:      money(t.Allowances),
		Deductions:      money(t.Deductions),
		UnpaidDeduction: money(t.UnpaidDeduction),
		GrossSalary:     money(t.GrossSalary),
		NetSalary:       money(t.NetSalary),
	}
}

func newPayrollLinesResponse(lines []payroll.Line) []payrollLineResponse {
	resp := make([]payrollLineResponse, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, newPayrollLineResponse(l))
	}
	return resp
}

func newPayrollLineResponse(l payroll.Line) payrollLineResponse {
	return payrollLineResponse{
		EmployeeID:      l.EmployeeID,
		Name:            l.Name,
		Department:      l.Department,
		Designation:     l.Designation,
		Month:           int(l.Month),
		Year:            l.Year,
		DaysInMonth:     l.DaysInMonth,
		UnpaidLeaveDays: l.UnpaidLeaveDays,
		BasicSalary:     money(l.BasicSalary),
		Allowances:      money(l.Allowances),
		Deductions:      money(l.Deductions),
		DailyRate:       money(l.DailyRate),
		UnpaidDeduction: money(l.UnpaidDeduction),
		GrossSalary:     money(l.GrossSalary),
		NetSalary:       money(l.NetSalary),
	}
}
