package services

import (
	"ttsguard/database"
	apperrors "ttsguard/server/errors"
)

// BuildingService сервис работы со зданиями, оборудованием и договорами
type BuildingService struct {
	db *database.DB
}

// NewBuildingService создает сервис зданий
func NewBuildingService(db *database.DB) *BuildingService {
	return &BuildingService{db: db}
}

// CreateBuildingRequest данные нового здания
type CreateBuildingRequest struct {
	ClientID int    `json:"client_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Area     string `json:"area"`
}

// CreateContractRequest данные нового договора на обслуживание
type CreateContractRequest struct {
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	VisitsPerYear int     `json:"visits_per_year" binding:"required"`
	AnnualValue   float64 `json:"annual_value" binding:"required"`
	PaymentTerms  string  `json:"payment_terms" binding:"required"`
}

// AddEquipmentRequest данные единицы оборудования
type AddEquipmentRequest struct {
	Type   string `json:"type" binding:"required"`
	Status string `json:"status"`
}

// Create создает здание у клиента
func (s *BuildingService) Create(req CreateBuildingRequest) (*database.Building, error) {
	building, err := s.db.CreateBuilding(req.ClientID, req.Name, req.Area)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create building")
	}
	return building, nil
}

// List возвращает все здания с владельцами
func (s *BuildingService) List() ([]*database.BuildingWithClient, error) {
	buildings, err := s.db.GetAllBuildings()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list buildings", err)
	}
	return buildings, nil
}

// Details возвращает полную карточку здания
func (s *BuildingService) Details(buildingID int) (*database.BuildingDetails, error) {
	details, err := s.db.GetBuildingDetails(buildingID)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get building details")
	}

	equipment, err := s.db.GetEquipmentByBuilding(buildingID)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get building equipment")
	}
	details.Equipment = equipment

	return details, nil
}

// CreateContract оформляет новый договор по зданию.
// Предыдущий активный договор деактивируется в той же транзакции
func (s *BuildingService) CreateContract(buildingID int, req CreateContractRequest) (*database.Contract, error) {
	contract, err := s.db.CreateContract(buildingID, req.StartDate, req.EndDate,
		req.VisitsPerYear, req.AnnualValue, req.PaymentTerms)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create contract")
	}
	return contract, nil
}

// ActiveContract возвращает действующий договор здания
func (s *BuildingService) ActiveContract(buildingID int) (*database.Contract, error) {
	contract, err := s.db.GetContractByBuilding(buildingID)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get active contract")
	}
	return contract, nil
}

// AddEquipment добавляет единицу оборудования в здание
func (s *BuildingService) AddEquipment(buildingID int, req AddEquipmentRequest) (*database.Equipment, error) {
	equipment, err := s.db.AddEquipment(buildingID, req.Type, req.Status)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to add equipment")
	}
	return equipment, nil
}

// EquipmentGroups возвращает оборудование здания, сгруппированное по типу
func (s *BuildingService) EquipmentGroups(buildingID int) ([]*database.EquipmentGroup, error) {
	if _, err := s.db.GetBuilding(buildingID); err != nil {
		return nil, apperrors.WrapError(err, "failed to get building")
	}

	groups, err := s.db.GetEquipmentGroupedByType(buildingID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to group equipment", err)
	}
	return groups, nil
}
