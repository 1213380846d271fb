package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// ClientHandler обработчики реестра клиентов
type ClientHandler struct {
	clients *services.ClientService
	finance *services.FinanceService
}

// NewClientHandler создает обработчик клиентов
func NewClientHandler(clients *services.ClientService, finance *services.FinanceService) *ClientHandler {
	return &ClientHandler{clients: clients, finance: finance}
}

// HandleList обработчик реестра клиентов
// @Summary Реестр клиентов
// @Description Возвращает клиентов со сводкой: здания, оборудование, стоимость договоров, просроченные объекты
// @Tags clients
// @Produce json
// @Param date query string false "Дата отсчета (YYYY-MM-DD, по умолчанию сегодня)"
// @Success 200 {array} database.ClientSummary
// @Failure 500 {object} ErrorResponse
// @Router /api/clients [get]
func (h *ClientHandler) HandleList(c *gin.Context) {
	referenceDate, err := services.ParseReferenceDate(c.Query("date"))
	if err != nil {
		HandleError(c, err, "failed to list clients")
		return
	}

	summaries, err := h.clients.ListSummaries(referenceDate)
	if err != nil {
		HandleError(c, err, "failed to list clients")
		return
	}

	SendJSONResponse(c, http.StatusOK, summaries)
}

// HandleCreate обработчик создания клиента
// @Summary Создать клиента
// @Tags clients
// @Accept json
// @Produce json
// @Param client body services.CreateClientRequest true "Данные клиента"
// @Success 201 {object} database.Client
// @Failure 400 {object} ErrorResponse
// @Router /api/clients [post]
func (h *ClientHandler) HandleCreate(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	client, err := h.clients.Create(req)
	if err != nil {
		HandleError(c, err, "failed to create client")
		return
	}

	SendJSONResponse(c, http.StatusCreated, client)
}

// HandleGet обработчик карточки клиента
// @Summary Карточка клиента
// @Tags clients
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} database.Client
// @Failure 404 {object} ErrorResponse
// @Router /api/clients/{id} [get]
func (h *ClientHandler) HandleGet(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clients.Get(id)
	if err != nil {
		HandleError(c, err, "failed to get client")
		return
	}

	SendJSONResponse(c, http.StatusOK, client)
}

// HandleBuildings обработчик зданий клиента
// @Summary Здания клиента
// @Description Возвращает здания клиента с оборудованием, последним обслуживанием и параметрами договора
// @Tags clients
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {array} database.BuildingOverview
// @Failure 404 {object} ErrorResponse
// @Router /api/clients/{id}/buildings [get]
func (h *ClientHandler) HandleBuildings(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	buildings, err := h.clients.Buildings(id)
	if err != nil {
		HandleError(c, err, "failed to list client buildings")
		return
	}

	SendJSONResponse(c, http.StatusOK, buildings)
}

// HandleFinances обработчик финансовой сводки клиента
// @Summary Финансы клиента
// @Tags clients
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} database.ClientFinancialDetail
// @Failure 404 {object} ErrorResponse
// @Router /api/clients/{id}/finances [get]
func (h *ClientHandler) HandleFinances(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.finance.ClientDetail(id)
	if err != nil {
		HandleError(c, err, "failed to get client finances")
		return
	}

	SendJSONResponse(c, http.StatusOK, detail)
}
