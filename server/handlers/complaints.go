package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// ComplaintHandler обработчики обращений клиентов
type ComplaintHandler struct {
	complaints *services.ComplaintService
}

// NewComplaintHandler создает обработчик обращений
func NewComplaintHandler(complaints *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// HandleCreate обработчик регистрации обращения
// @Summary Зарегистрировать обращение
// @Description Создает тикет с номером TTS-<год>-<порядковый номер>
// @Tags complaints
// @Accept json
// @Produce json
// @Param complaint body services.CreateComplaintRequest true "Данные обращения"
// @Success 201 {object} database.Complaint
// @Failure 400 {object} ErrorResponse
// @Router /api/complaints [post]
func (h *ComplaintHandler) HandleCreate(c *gin.Context) {
	var req services.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	complaint, err := h.complaints.Create(req)
	if err != nil {
		HandleError(c, err, "failed to create complaint")
		return
	}

	SendJSONResponse(c, http.StatusCreated, complaint)
}

// HandleList обработчик списка обращений
// @Summary Все обращения
// @Description Свежие первыми. Параметр q включает текстовый поиск со стеммингом
// @Tags complaints
// @Produce json
// @Param q query string false "Поисковый запрос"
// @Success 200 {array} database.ComplaintWithBuilding
// @Failure 500 {object} ErrorResponse
// @Router /api/complaints [get]
func (h *ComplaintHandler) HandleList(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		matched, err := h.complaints.Search(query)
		if err != nil {
			HandleError(c, err, "failed to search complaints")
			return
		}
		SendJSONResponse(c, http.StatusOK, matched)
		return
	}

	complaints, err := h.complaints.List()
	if err != nil {
		HandleError(c, err, "failed to list complaints")
		return
	}

	SendJSONResponse(c, http.StatusOK, complaints)
}

// HandleByMonth обработчик обращений за месяц
// @Summary Обращения за календарный месяц
// @Tags complaints
// @Produce json
// @Param year query int true "Год"
// @Param month query int true "Месяц (1-12)"
// @Success 200 {array} database.ComplaintWithBuilding
// @Failure 400 {object} ErrorResponse
// @Router /api/complaints/month [get]
func (h *ComplaintHandler) HandleByMonth(c *gin.Context) {
	now := time.Now().UTC()
	year := ParseIntQuery(c, "year", now.Year())
	month := ParseIntQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		SendJSONError(c, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	complaints, err := h.complaints.ByMonth(year, time.Month(month))
	if err != nil {
		HandleError(c, err, "failed to list complaints")
		return
	}

	SendJSONResponse(c, http.StatusOK, complaints)
}

// HandleGet обработчик карточки обращения
// @Summary Обращение по ID
// @Tags complaints
// @Produce json
// @Param id path int true "ID обращения"
// @Success 200 {object} database.Complaint
// @Failure 404 {object} ErrorResponse
// @Router /api/complaints/{id} [get]
func (h *ComplaintHandler) HandleGet(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	complaint, err := h.complaints.Get(id)
	if err != nil {
		HandleError(c, err, "failed to get complaint")
		return
	}

	SendJSONResponse(c, http.StatusOK, complaint)
}

// HandleGetByTicket обработчик поиска по номеру тикета
// @Summary Обращение по номеру тикета
// @Tags complaints
// @Produce json
// @Param ticket path string true "Номер тикета (TTS-2026-0001)"
// @Success 200 {object} database.Complaint
// @Failure 404 {object} ErrorResponse
// @Router /api/complaints/ticket/{ticket} [get]
func (h *ComplaintHandler) HandleGetByTicket(c *gin.Context) {
	ticket := c.Param("ticket")
	if ticket == "" {
		SendJSONError(c, http.StatusBadRequest, "ticket number is required")
		return
	}

	complaint, err := h.complaints.GetByTicket(ticket)
	if err != nil {
		HandleError(c, err, "failed to get complaint")
		return
	}

	SendJSONResponse(c, http.StatusOK, complaint)
}

// HandleUpdateStatus обработчик смены статуса тикета
// @Summary Сменить статус тикета
// @Description Тикеты двигаются только вперед: open -> assigned -> in_progress -> resolved
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path int true "ID обращения"
// @Param update body services.UpdateComplaintRequest true "Новый статус"
// @Success 200 {object} database.Complaint
// @Failure 400 {object} ErrorResponse
// @Router /api/complaints/{id} [patch]
func (h *ComplaintHandler) HandleUpdateStatus(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	complaint, err := h.complaints.UpdateStatus(id, req)
	if err != nil {
		HandleError(c, err, "failed to update complaint")
		return
	}

	SendJSONResponse(c, http.StatusOK, complaint)
}
