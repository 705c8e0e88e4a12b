package ui

import (
	"net/http"

	"eshoplabs.dev/eshop-web/internal/admin/dashboard"
	custommw "eshoplabs.dev/eshop-web/internal/admin/httpserver/middleware"
)

// DashboardData is the payload for the admin landing page.
type DashboardData struct {
	BaseData
	Overview dashboard.Overview
}

// Dashboard renders headline metrics and the most recent orders.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := custommw.UserFromContext(r.Context())

	overview, err := h.dashboard.Overview(r.Context(), user.Token)
	if err != nil {
		h.serverError(w, "dashboard overview", err)
		return
	}

	h.render(w, "dashboard", http.StatusOK, DashboardData{
		BaseData: h.newBaseData(r, "Dashboard", "dashboard"),
		Overview: overview,
	})
}
