package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/leave"
	"github.com/mmeshcher/payroll-system/internal/middleware"
	"github.com/mmeshcher/payroll-system/internal/model"
	"github.com/mmeshcher/payroll-system/internal/service"
	"github.com/mmeshcher/payroll-system/internal/validation"
	"github.com/mmeshcher/payroll-system/internal/workdays"
)

// applyLeaveRequest accepts both snake_case and camelCase field spellings.
type applyLeaveRequest struct {
	SubmitterRole string `json:"submitter_role"`
	SubmitterID   string `json:"submitter_id"`

	EmployeeID      string `json:"employee_id"`
	EmpID           string `json:"emp_id"`
	EmployeeIDCamel string `json:"employeeId"`

	LeaveType      string `json:"leave_type"`
	LeaveTypeCamel string `json:"leaveType"`

	StartDate      string `json:"start_date"`
	StartDateCamel string `json:"startDate"`
	EndDate        string `json:"end_date"`
	EndDateCamel   string `json:"endDate"`

	Reason string `json:"reason"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ApplyLeave files a leave request. The submitter comes from the submitter headers
// when present, otherwise from the request body.
func (h *Handler) ApplyLeave(w http.ResponseWriter, r *http.Request) {
	var req applyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sub, ok := middleware.GetSubmitterFromContext(r.Context())
	if !ok {
		sub = model.Submitter{Role: req.SubmitterRole, EmployeeID: strings.TrimSpace(req.SubmitterID)}
	}

	start, err := validation.ParseDate(firstNonEmpty(req.StartDate, req.StartDateCamel))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	end, err := validation.ParseDate(firstNonEmpty(req.EndDate, req.EndDateCamel))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	created, err := h.service.ApplyLeave(r.Context(), service.ApplyLeaveInput{
		Submitter:  sub,
		EmployeeID: firstNonEmpty(req.EmployeeID, req.EmpID, req.EmployeeIDCamel),
		Type:       leave.ParseType(firstNonEmpty(req.LeaveType, req.LeaveTypeCamel)),
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(req.Reason),
	})
	if err != nil {
		h.fail(w, "apply leave error", err, zap.String("submitter", sub.EmployeeID))
		return
	}

	h.writeJSON(w, http.StatusCreated, newLeaveResponse(created))
}

// GetLeaves returns the leave history filtered by search, status and type.
func (h *Handler) GetLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := leave.Filter{Search: q.Get("search")}
	if s := q.Get("status"); s != "" {
		st, err := leave.ParseStatus(s)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		f.Status = st
	}
	if t := q.Get("type"); t != "" {
		f.Type = leave.ParseType(t)
	}

	reqs, err := h.service.ListLeaves(r.Context(), f)
	if err != nil {
		h.fail(w, "list leaves error", err)
		return
	}

	if len(reqs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, newLeaveListResponse(reqs))
}

// GetPendingLeaves returns the requests awaiting approval.
func (h *Handler) GetPendingLeaves(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.service.PendingLeaves(r.Context())
	if err != nil {
		h.fail(w, "list pending leaves error", err)
		return
	}

	if len(reqs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, newLeaveListResponse(reqs))
}

// ApproveLeave approves a pending request. The submitter headers must name an admin.
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.ActionApprove)
}

// RejectLeave rejects a pending request. The submitter headers must name an admin.
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.ActionReject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action leave.Action) {
	id := chi.URLParam(r, "id")
	sub, _ := middleware.GetSubmitterFromContext(r.Context())

	req, err := h.service.DecideLeave(r.Context(), id, action, sub)
	if err != nil {
		h.fail(w, "decide leave error", err,
			zap.String("id", id), zap.String("action", string(action)), zap.String("role", sub.Role))
		return
	}

	h.writeJSON(w, http.StatusOK, newLeaveResponse(req))
}

type workingDaysResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

// GetWorkingDays counts business days between the start and end query dates.
func (h *Handler) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	start, err := validation.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	end, err := validation.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, workingDaysResponse{
		StartDate:   formatDate(start),
		EndDate:     formatDate(end),
		WorkingDays: workdays.Count(start, end),
	})
}

// GetLeaveTypes returns the known leave types.
func (h *Handler) GetLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types := leave.Types()
	resp := make([]string, 0, len(types))
	for _, t := range types {
		resp = append(resp, string(t))
	}

	h.writeJSON(w, http.StatusOK, resp)
}
