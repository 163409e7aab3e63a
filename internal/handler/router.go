package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	custommiddleware "github.com/mmeshcher/payroll-system/internal/middleware"
)

// SetupRouter configures the HTTP routes and middleware.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Content-Encoding",
			custommiddleware.SubmitterRoleHeader, custommiddleware.SubmitterIDHeader,
		},
		MaxAge: 300,
	}))
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetEmployees)
			r.Post("/", h.CreateEmployee)
			r.Put("/{id}", h.UpdateEmployee)
		})

		r.Get("/leave-types", h.GetLeaveTypes)

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.GetPayroll)
			r.Get("/runs", h.GetPayrollRun)
			r.Post("/runs", h.CreatePayrollRun)
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", h.GetLeaves)
			r.Get("/pending", h.GetPendingLeaves)
			r.Get("/working-days", h.GetWorkingDays)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.Submitter)

				r.Post("/", h.ApplyLeave)
				r.Put("/{id}/approve", h.ApproveLeave)
				r.Put("/{id}/reject", h.RejectLeave)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
