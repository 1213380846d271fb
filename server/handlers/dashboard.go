package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// DashboardHandler обработчик сводной панели
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler создает обработчик панели
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// HandleDashboard обработчик сводной панели
// @Summary Сводная панель
// @Description Счетчики статусов, финансовые показатели, просроченные и ближайшие объекты
// @Tags dashboard
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Success 200 {object} services.Dashboard
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) HandleDashboard(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to build dashboard")
		return
	}

	dashboard, err := h.dashboard.Build(referenceDate)
	if err != nil {
		HandleError(c, err, "failed to build dashboard")
		return
	}

	SendJSONResponse(c, http.StatusOK, dashboard)
}
