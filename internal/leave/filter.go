package leave

import (
	"strings"
	"time"

	"github.com/mmeshcher/payroll-system/internal/workdays"
)

// Filter narrows the leave history. Empty fields match everything.
type Filter struct {
	// Search matches employee name or reason, case-insensitively.
	Search string
	Status Status
	Type   Type
}

// Match reports whether r satisfies every non-empty field of f.
func (f Filter) Match(r *Request) bool {
	if f.Status != "" && r.status != f.Status {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(r.EmployeeName), q) &&
			!strings.Contains(strings.ToLower(r.Reason), q) {
			return false
		}
	}
	return true
}

// FilterRequests returns the requests matching f, preserving order.
func FilterRequests(reqs []*Request, f Filter) []*Request {
	res := make([]*Request, 0, len(reqs))
	for _, r := range reqs {
		if f.Match(r) {
			res = append(res, r)
		}
	}
	return res
}

// UnpaidDaysByEmployee sums, per employee, the working days of approved unpaid
// leave that fall inside the given month.
func UnpaidDaysByEmployee(reqs []*Request, month time.Month, year int) map[string]int {
	res := make(map[string]int)
	for _, r := range reqs {
		if r.status != StatusApproved || r.Type != TypeUnpaid {
			continue
		}
		if n := workdays.InMonth(r.StartDate, r.EndDate, month, year); n > 0 {
			res[r.EmployeeID] += n
		}
	}
	return res
}
