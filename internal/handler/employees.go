package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/payroll-system/internal/directory"
	"github.com/mmeshcher/payroll-system/internal/model"
	"github.com/mmeshcher/payroll-system/internal/validation"
)

// GetEmployees returns every stored employee.
func (h *Handler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.fail(w, "list employees error", err)
		return
	}

	if len(employees) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, newEmployeeResponse(e))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// decodeEmployee reads an employee profile in any of the directory record shapes.
// A non-empty id overrides the identifier in the body.
func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request, id string) (model.Employee, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return model.Employee{}, false
	}

	e, err := directory.DecodeEmployee(raw, id)
	if err != nil {
		h.logger.Debug("decode employee error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return model.Employee{}, false
	}

	if err := validation.ValidateEmployee(e); err != nil {
		h.fail(w, "invalid employee", err, zap.String("id", e.ID))
		return model.Employee{}, false
	}

	return e, true
}

// CreateEmployee adds an employee profile.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEmployee(w, r, "")
	if !ok {
		return
	}

	created, err := h.service.CreateEmployee(r.Context(), e)
	if err != nil {
		h.fail(w, "create employee error", err, zap.String("id", e.ID))
		return
	}

	h.writeJSON(w, http.StatusCreated, newEmployeeResponse(*created))
}

// UpdateEmployee replaces the profile of the employee named in the path.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEmployee(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	updated, err := h.service.UpdateEmployee(r.Context(), e)
	if err != nil {
		h.fail(w, "update employee error", err, zap.String("id", e.ID))
		return
	}

	h.writeJSON(w, http.StatusOK, newEmployeeResponse(*updated))
}
