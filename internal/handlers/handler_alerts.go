package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/festarent/rental_mgmt_app/internal/core/ports/services"
	"github.com/festarent/rental_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// alertHandler serves the expiry and maintenance dashboard.
type alertHandler struct {
	alertService portssvc.AlertSvcFacade
}

func newAlertHandler(as portssvc.AlertSvcFacade) *alertHandler {
	return &alertHandler{alertService: as}
}

// registerAlertRoutes registers the alerts dashboard routes.
func registerAlertRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAlertHandler(services.Alerts)
	rg.GET("/alerts", h.getAlerts)
	rg.GET("/lots", h.listLots)
	rg.GET("/maintenance-tasks", h.listMaintenanceTasks)
}

// getAlerts godoc
// @Summary Get expiry and maintenance alerts
// @Description Classifies the tenant's lots and pending maintenance tasks against today's date
// @Tags alerts
// @Produce  json
// @Success 200 {object} alerting.AlertSet
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute alerts"
// @Security BearerAuth
// @Router /alerts [get]
func (h *alertHandler) getAlerts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	alerts, err := h.alertService.GetAlerts(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to compute alerts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// listLots godoc
// @Summary List inventory lots
// @Description Lists the tenant's inventory lots ordered by expiration date
// @Tags alerts
// @Produce  json
// @Success 200 {array} domain.Lot
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve lots"
// @Security BearerAuth
// @Router /lots [get]
func (h *alertHandler) listLots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	lots, err := h.alertService.ListLots(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list lots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lots"})
		return
	}

	c.JSON(http.StatusOK, lots)
}

// listMaintenanceTasks godoc
// @Summary List maintenance tasks
// @Description Lists the tenant's maintenance tasks ordered by scheduled date
// @Tags alerts
// @Produce  json
// @Success 200 {array} domain.MaintenanceTask
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve maintenance tasks"
// @Security BearerAuth
// @Router /maintenance-tasks [get]
func (h *alertHandler) listMaintenanceTasks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identity(c)
	if !ok {
		return
	}

	tasks, err := h.alertService.ListMaintenanceTasks(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list maintenance tasks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve maintenance tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}
