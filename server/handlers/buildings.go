package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ttsguard/server/services"
)

// BuildingHandler обработчики зданий, оборудования и договоров
type BuildingHandler struct {
	buildings *services.BuildingService
}

// NewBuildingHandler создает обработчик зданий
func NewBuildingHandler(buildings *services.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildings: buildings}
}

// HandleList обработчик списка зданий
// @Summary Все здания
// @Tags buildings
// @Produce json
// @Success 200 {array} database.BuildingWithClient
// @Failure 500 {object} ErrorResponse
// @Router /api/buildings [get]
func (h *BuildingHandler) HandleList(c *gin.Context) {
	buildings, err := h.buildings.List()
	if err != nil {
		HandleError(c, err, "failed to list buildings")
		return
	}

	SendJSONResponse(c, http.StatusOK, buildings)
}

// HandleCreate обработчик создания здания
// @Summary Создать здание
// @Tags buildings
// @Accept json
// @Produce json
// @Param building body services.CreateBuildingRequest true "Данные здания"
// @Success 201 {object} database.Building
// @Failure 400 {object} ErrorResponse
// @Router /api/buildings [post]
func (h *BuildingHandler) HandleCreate(c *gin.Context) {
	var req services.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	building, err := h.buildings.Create(req)
	if err != nil {
		HandleError(c, err, "failed to create building")
		return
	}

	SendJSONResponse(c, http.StatusCreated, building)
}

// HandleDetails обработчик карточки здания
// @Summary Карточка здания
// @Description Здание с владельцем, оборудованием и активным договором
// @Tags buildings
// @Produce json
// @Param id path int true "ID здания"
// @Success 200 {object} database.BuildingDetails
// @Failure 404 {object} ErrorResponse
// @Router /api/buildings/{id} [get]
func (h *BuildingHandler) HandleDetails(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.buildings.Details(id)
	if err != nil {
		HandleError(c, err, "failed to get building details")
		return
	}

	SendJSONResponse(c, http.StatusOK, details)
}

// HandleCreateContract обработчик оформления договора
// @Summary Оформить договор по зданию
// @Description Создает договор и деактивирует предыдущий активный
// @Tags buildings
// @Accept json
// @Produce json
// @Param id path int true "ID здания"
// @Param contract body services.CreateContractRequest true "Данные договора"
// @Success 201 {object} database.Contract
// @Failure 400 {object} ErrorResponse
// @Router /api/buildings/{id}/contracts [post]
func (h *BuildingHandler) HandleCreateContract(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	contract, err := h.buildings.CreateContract(id, req)
	if err != nil {
		HandleError(c, err, "failed to create contract")
		return
	}

	SendJSONResponse(c, http.StatusCreated, contract)
}

// HandleActiveContract обработчик действующего договора здания
// @Summary Действующий договор здания
// @Tags buildings
// @Produce json
// @Param id path int true "ID здания"
// @Success 200 {object} database.Contract
// @Failure 404 {object} ErrorResponse
// @Router /api/buildings/{id}/contracts/active [get]
func (h *BuildingHandler) HandleActiveContract(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	contract, err := h.buildings.ActiveContract(id)
	if err != nil {
		HandleError(c, err, "failed to get active contract")
		return
	}

	SendJSONResponse(c, http.StatusOK, contract)
}

// HandleAddEquipment обработчик добавления оборудования
// @Summary Добавить оборудование в здание
// @Tags buildings
// @Accept json
// @Produce json
// @Param id path int true "ID здания"
// @Param equipment body services.AddEquipmentRequest true "Единица оборудования"
// @Success 201 {object} database.Equipment
// @Failure 400 {object} ErrorResponse
// @Router /api/buildings/{id}/equipment [post]
func (h *BuildingHandler) HandleAddEquipment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AddEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	equipment, err := h.buildings.AddEquipment(id, req)
	if err != nil {
		HandleError(c, err, "failed to add equipment")
		return
	}

	SendJSONResponse(c, http.StatusCreated, equipment)
}

// HandleEquipment обработчик оборудования здания
// @Summary Оборудование здания по типам
// @Tags buildings
// @Produce json
// @Param id path int true "ID здания"
// @Success 200 {array} database.EquipmentGroup
// @Failure 404 {object} ErrorResponse
// @Router /api/buildings/{id}/equipment [get]
func (h *BuildingHandler) HandleEquipment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	groups, err := h.buildings.EquipmentGroups(id)
	if err != nil {
		HandleError(c, err, "failed to list equipment")
		return
	}

	SendJSONResponse(c, http.StatusOK, groups)
}
