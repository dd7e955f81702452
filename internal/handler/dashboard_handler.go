package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/authz"
	"taskapp/internal/middleware"
	"taskapp/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Member returns the dashboard for the authenticated user. The aggregation is
// fail-soft, so this endpoint never reports a storage error.
func (h *DashboardHandler) Member(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, h.dashboardService.Member(c.Request.Context(), user))
}

// Admin returns the aggregate dashboard. Staff or superuser only; the gate
// lives here, not in the aggregator.
func (h *DashboardHandler) Admin(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if !authz.IsAdmin(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	dashboard, err := h.dashboardService.Admin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
