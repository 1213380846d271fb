package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// ComplianceHandler обработчики классификации зданий
type ComplianceHandler struct {
	compliance *services.ComplianceService
}

// NewComplianceHandler создает обработчик классификации
func NewComplianceHandler(compliance *services.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance}
}

// HandleList обработчик классификации всех зданий
// @Summary Статусы всех зданий
// @Description Классифицирует здания с активным договором: scheduled, overdue, due_soon, on_track
// @Tags compliance
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD, по умолчанию сегодня)"
// @Success 200 {array} database.ComplianceEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/compliance [get]
func (h *ComplianceHandler) HandleList(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to classify buildings")
		return
	}

	entries, err := h.compliance.List(referenceDate)
	if err != nil {
		HandleError(c, err, "failed to classify buildings")
		return
	}

	SendJSONResponse(c, http.StatusOK, entries)
}

// HandleOverdue обработчик просроченных зданий
// @Summary Просроченные здания
// @Description Здания с превышенным сроком обслуживания, сильнее просроченные первыми
// @Tags compliance
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Success 200 {array} database.ComplianceEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/compliance/overdue [get]
func (h *ComplianceHandler) HandleOverdue(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to list overdue buildings")
		return
	}

	entries, err := h.compliance.Overdue(referenceDate)
	if err != nil {
		HandleError(c, err, "failed to list overdue buildings")
		return
	}

	SendJSONResponse(c, http.StatusOK, entries)
}

// HandleDueSoon обработчик зданий с приближающимся сроком
// @Summary Здания с приближающимся сроком
// @Tags compliance
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Success 200 {array} database.ComplianceEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/compliance/due-soon [get]
func (h *ComplianceHandler) HandleDueSoon(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to list due-soon buildings")
		return
	}

	entries, err := h.compliance.DueSoon(referenceDate)
	if err != nil {
		HandleError(c, err, "failed to list due-soon buildings")
		return
	}

	SendJSONResponse(c, http.StatusOK, entries)
}
