package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/payroll"
	"github.com/mmeshcher/payroll-system/internal/validation"
)

// GetPayroll runs the payroll for the month and year query values and returns the
// lines matching the optional name and department filters with their totals.
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	rep, err := h.service.RunPayroll(r.Context(), month, year, payroll.Criteria{
		NameContains: q.Get("name"),
		Department:   q.Get("department"),
	})
	if err != nil {
		h.fail(w, "run payroll error", err, zap.Int("month", int(month)), zap.Int("year", year))
		return
	}

	h.writeJSON(w, http.StatusOK, newPayrollResponse(rep))
}

func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request) (time.Month, int, bool) {
	q := r.URL.Query()

	month, year, err := validation.ParsePeriod(q.Get("month"), q.Get("year"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return 0, 0, false
	}
	return month, year, true
}

// CreatePayrollRun computes and stores the payroll of the month and year query values.
func (h *Handler) CreatePayrollRun(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	run, err := h.service.CreatePayrollRun(r.Context(), month, year)
	if err != nil {
		h.fail(w, "create payroll run error", err, zap.Int("month", int(month)), zap.Int("year", year))
		return
	}

	h.writeJSON(w, http.StatusCreated, newPayrollRunResponse(run))
}

// GetPayrollRun returns the stored payroll of the month and year query values.
func (h *Handler) GetPayrollRun(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	run, err := h.service.GetPayrollRun(r.Context(), month, year)
	if err != nil {
		h.fail(w, "get payroll run error", err, zap.Int("month", int(month)), zap.Int("year", year))
		return
	}

	h.writeJSON(w, http.StatusOK, newPayrollRunResponse(run))
}
