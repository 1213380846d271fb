package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// FinanceHandler обработчики финансовых сводок и платежей
type FinanceHandler struct {
	finance *services.FinanceService
}

// NewFinanceHandler создает финансовый обработчик
func NewFinanceHandler(finance *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// HandleSummary обработчик сводки портфеля
// @Summary Финансовая сводка портфеля
// @Description Стоимость договоров, собранные средства, оба вида остатка и процент сбора
// @Tags finance
// @Produce json
// @Success 200 {object} finance.Summary
// @Failure 500 {object} ErrorResponse
// @Router /api/finance/summary [get]
func (h *FinanceHandler) HandleSummary(c *gin.Context) {
	summary, err := h.finance.Summary()
	if err != nil {
		HandleError(c, err, "failed to build financial summary")
		return
	}

	SendJSONResponse(c, http.StatusOK, summary)
}

// HandleBreakdown обработчик разбивки по клиентам
// @Summary Финансовая разбивка по клиентам
// @Description Клиенты со статусом оплаты, отсортированы по стоимости договоров
// @Tags finance
// @Produce json
// @Success 200 {array} database.ClientFinanceRow
// @Failure 500 {object} ErrorResponse
// @Router /api/finance/breakdown [get]
func (h *FinanceHandler) HandleBreakdown(c *gin.Context) {
	rows, err := h.finance.Breakdown()
	if err != nil {
		HandleError(c, err, "failed to build client breakdown")
		return
	}

	SendJSONResponse(c, http.StatusOK, rows)
}

// HandleOutstanding обработчик неоплаченных счетов
// @Summary Неоплаченные счета
// @Tags finance
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Success 200 {array} database.OutstandingInvoice
// @Failure 400 {object} ErrorResponse
// @Router /api/finance/outstanding [get]
func (h *FinanceHandler) HandleOutstanding(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to list outstanding invoices")
		return
	}

	invoices, err := h.finance.Outstanding(referenceDate)
	if err != nil {
		HandleError(c, err, "failed to list outstanding invoices")
		return
	}

	SendJSONResponse(c, http.StatusOK, invoices)
}

// HandleRecordPayment обработчик регистрации платежа
// @Summary Зарегистрировать платеж
// @Tags finance
// @Accept json
// @Produce json
// @Param payment body services.RecordPaymentRequest true "Данные платежа"
// @Success 201 {object} database.Payment
// @Failure 400 {object} ErrorResponse
// @Router /api/finance/payments [post]
func (h *FinanceHandler) HandleRecordPayment(c *gin.Context) {
	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	payment, err := h.finance.RecordPayment(req)
	if err != nil {
		HandleError(c, err, "failed to record payment")
		return
	}

	SendJSONResponse(c, http.StatusCreated, payment)
}

// HandleGetPayment обработчик карточки платежа
// @Summary Платеж по ID
// @Tags finance
// @Produce json
// @Param id path int true "ID платежа"
// @Success 200 {object} database.Payment
// @Failure 404 {object} ErrorResponse
// @Router /api/finance/payments/{id} [get]
func (h *FinanceHandler) HandleGetPayment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.finance.Payment(id)
	if err != nil {
		HandleError(c, err, "failed to get payment")
		return
	}

	SendJSONResponse(c, http.StatusOK, payment)
}

// HandlePaymentHistory обработчик истории платежей
// @Summary История платежей
// @Tags finance
// @Produce json
// @Param limit query int false "Предел выдачи (по умолчанию 50)"
// @Success 200 {array} database.PaymentHistoryEntry
// @Failure 500 {object} ErrorResponse
// @Router /api/finance/payments [get]
func (h *FinanceHandler) HandlePaymentHistory(c *gin.Context) {
	limit := ParseIntQuery(c, "limit", 50)

	history, err := h.finance.PaymentHistory(limit)
	if err != nil {
		HandleError(c, err, "failed to list payment history")
		return
	}

	SendJSONResponse(c, http.StatusOK, history)
}

// HandleMonthlyRevenue обработчик выручки по месяцам
// @Summary Выручка по месяцам
// @Tags finance
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD)"
// @Param months query int false "Число месяцев (по умолчанию 6)"
// @Success 200 {array} database.MonthlyRevenue
// @Failure 400 {object} ErrorResponse
// @Router /api/finance/revenue [get]
func (h *FinanceHandler) HandleMonthlyRevenue(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to build monthly revenue")
		return
	}

	months := ParseIntQuery(c, "months", 6)

	revenue, err := h.finance.MonthlyRevenue(referenceDate, months)
	if err != nil {
		HandleError(c, err, "failed to build monthly revenue")
		return
	}

	SendJSONResponse(c, http.StatusOK, revenue)
}
