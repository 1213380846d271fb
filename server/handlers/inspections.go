package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// InspectionHandler обработчики обслуживаний и графика выездов
type InspectionHandler struct {
	inspections *services.InspectionService
}

// NewInspectionHandler создает обработчик обслуживаний
func NewInspectionHandler(inspections *services.InspectionService) *InspectionHandler {
	return &InspectionHandler{inspections: inspections}
}

// HandleRecord обработчик записи обслуживания
// @Summary Записать выполненное обслуживание
// @Description Записывает визит и закрывает незавершенные выезды по зданию
// @Tags inspections
// @Accept json
// @Produce json
// @Param inspection body services.RecordInspectionRequest true "Данные обслуживания"
// @Success 201 {object} database.Inspection
// @Failure 400 {object} ErrorResponse
// @Router /api/inspections [post]
func (h *InspectionHandler) HandleRecord(c *gin.Context) {
	var req services.RecordInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	inspection, err := h.inspections.Record(req)
	if err != nil {
		HandleError(c, err, "failed to record inspection")
		return
	}

	SendJSONResponse(c, http.StatusCreated, inspection)
}

// HandleRecent обработчик недавних обслуживаний
// @Summary Недавние обслуживания
// @Tags inspections
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Param days query int false "Окно в днях (по умолчанию 30)"
// @Success 200 {array} database.InspectionWithBuilding
// @Failure 400 {object} ErrorResponse
// @Router /api/inspections/recent [get]
func (h *InspectionHandler) HandleRecent(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to list inspections")
		return
	}

	days := ParseIntQuery(c, "days", 30)

	inspections, err := h.inspections.Recent(referenceDate, days)
	if err != nil {
		HandleError(c, err, "failed to list inspections")
		return
	}

	SendJSONResponse(c, http.StatusOK, inspections)
}

// HandleByMonth обработчик обслуживаний за месяц
// @Summary Обслуживания за месяц
// @Tags inspections
// @Produce json
// @Param year query int true "Год"
// @Param month query int true "Месяц (1-12)"
// @Success 200 {array} database.InspectionWithBuilding
// @Failure 400 {object} ErrorResponse
// @Router /api/inspections [get]
func (h *InspectionHandler) HandleByMonth(c *gin.Context) {
	now := time.Now().UTC()
	year := ParseIntQuery(c, "year", now.Year())
	month := ParseIntQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		SendJSONError(c, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	inspections, err := h.inspections.ByMonth(year, time.Month(month))
	if err != nil {
		HandleError(c, err, "failed to list inspections")
		return
	}

	SendJSONResponse(c, http.StatusOK, inspections)
}

// HandleSchedule обработчик назначения выезда
// @Summary Назначить выезд
// @Description Назначает выезд; здание с назначенным выездом исключается из просроченных
// @Tags inspections
// @Accept json
// @Produce json
// @Param schedule body services.ScheduleRequest true "Данные выезда"
// @Success 201 {object} database.ScheduledInspection
// @Failure 409 {object} ErrorResponse
// @Router /api/inspections/scheduled [post]
func (h *InspectionHandler) HandleSchedule(c *gin.Context) {
	var req services.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	scheduled, err := h.inspections.Schedule(req)
	if err != nil {
		HandleError(c, err, "failed to schedule inspection")
		return
	}

	SendJSONResponse(c, http.StatusCreated, scheduled)
}

// HandleScheduled обработчик списка выездов
// @Summary Незавершенные выезды
// @Tags inspections
// @Produce json
// @Success 200 {array} database.ScheduledWithBuilding
// @Failure 500 {object} ErrorResponse
// @Router /api/inspections/scheduled [get]
func (h *InspectionHandler) HandleScheduled(c *gin.Context) {
	scheduled, err := h.inspections.ListScheduled()
	if err != nil {
		HandleError(c, err, "failed to list scheduled inspections")
		return
	}

	SendJSONResponse(c, http.StatusOK, scheduled)
}

// scheduleStatusRequest смена статуса выезда
type scheduleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleUpdateSchedule обработчик смены статуса выезда
// @Summary Завершить или отменить выезд
// @Tags inspections
// @Accept json
// @Produce json
// @Param id path int true "ID выезда"
// @Param status body scheduleStatusRequest true "Новый статус (completed/cancelled)"
// @Success 200 {object} database.ScheduledInspection
// @Failure 404 {object} ErrorResponse
// @Router /api/inspections/scheduled/{id} [patch]
func (h *InspectionHandler) HandleUpdateSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req scheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	scheduled, err := h.inspections.UpdateScheduleStatus(id, req.Status)
	if err != nil {
		HandleError(c, err, "failed to update schedule")
		return
	}

	SendJSONResponse(c, http.StatusOK, scheduled)
}

// HandleGet обработчик одной записи обслуживания
// @Summary Запись обслуживания по ID
// @Tags inspections
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} database.Inspection
// @Failure 404 {object} ErrorResponse
// @Router /api/inspections/{id} [get]
func (h *InspectionHandler) HandleGet(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	inspection, err := h.inspections.Get(id)
	if err != nil {
		HandleError(c, err, "failed to get inspection")
		return
	}

	SendJSONResponse(c, http.StatusOK, inspection)
}
