package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/payroll-system/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date only",
			input: "2025-06-09",
			want:  time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 keeps the calendar date",
			input: "2025-06-09T23:30:00+05:00",
			want:  time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "empty means absent",
			input: "  ",
			want:  time.Time{},
		},
		{
			name:    "garbage",
			input:   "09/06/2025",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		year      string
		wantMonth time.Month
		wantYear  int
		wantErr   bool
	}{
		{name: "valid", month: "6", year: "2025", wantMonth: time.June, wantYear: 2025},
		{name: "out of range month passes through", month: "13", year: "2025", wantMonth: 13, wantYear: 2025},
		{name: "month not a number", month: "June", year: "2025", wantErr: true},
		{name: "missing year", month: "6", year: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, y, err := ParsePeriod(tt.month, tt.year)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ParsePeriod error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod unexpected error: %v", err)
			}
			if m != tt.wantMonth || y != tt.wantYear {
				t.Fatalf("ParsePeriod = %d/%d, want %d/%d", m, y, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

func TestValidateEmployee(t *testing.T) {
	valid := model.Employee{
		ID:          "E001",
		Name:        "Jane Doe",
		BasicSalary: decimal.NewFromInt(30000),
		Allowances:  decimal.NewFromInt(8000),
		Deductions:  decimal.Zero,
	}

	tests := []struct {
		name    string
		modify  func(e *model.Employee)
		wantErr bool
	}{
		{name: "valid", modify: func(e *model.Employee) {}},
		{name: "zero money", modify: func(e *model.Employee) { e.BasicSalary, e.Allowances = decimal.Zero, decimal.Zero }},
		{name: "missing id", modify: func(e *model.Employee) { e.ID = " " }, wantErr: true},
		{name: "missing name", modify: func(e *model.Employee) { e.Name = "" }, wantErr: true},
		{name: "negative basic salary", modify: func(e *model.Employee) { e.BasicSalary = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "negative allowances", modify: func(e *model.Employee) { e.Allowances = decimal.RequireFromString("-0.01") }, wantErr: true},
		{name: "negative deductions", modify: func(e *model.Employee) { e.Deductions = decimal.NewFromInt(-500) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)

			err := ValidateEmployee(e)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("ValidateEmployee() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateEmployee() unexpected error: %v", err)
			}
		})
	}
}
