package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// ReportHandler обработчик выгрузки отчетов
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler создает обработчик отчетов
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// HandleComplianceReport обработчик отчета по статусам зданий
// @Summary Отчет по статусам зданий
// @Description Выгрузка в xlsx (по умолчанию), csv или json
// @Tags reports
// @Produce octet-stream
// @Param format query string false "Формат: xlsx, csv или json"
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /api/reports/compliance [get]
func (h *ReportHandler) HandleComplianceReport(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to build compliance report")
		return
	}

	report, err := h.reports.ComplianceReport(referenceDate, c.Query("format"))
	if err != nil {
		HandleError(c, err, "failed to build compliance report")
		return
	}

	sendReport(c, report)
}

// HandleFinanceReport обработчик финансового отчета
// @Summary Финансовый отчет
// @Description Сводка портфеля и разбивка по клиентам в xlsx
// @Tags reports
// @Produce octet-stream
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /api/reports/finance [get]
func (h *ReportHandler) HandleFinanceReport(c *gin.Context) {
	report, err := h.reports.FinanceReport()
	if err != nil {
		HandleError(c, err, "failed to build finance report")
		return
	}

	sendReport(c, report)
}

func sendReport(c *gin.Context, report *services.Report) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Content)
}
