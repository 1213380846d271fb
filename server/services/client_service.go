package services

import (
	"time"

	"ttsguard/database"
	apperrors "ttsguard/server/errors"
)

// ClientService сервис работы с клиентами
type ClientService struct {
	db         *database.DB
	compliance *ComplianceService
}

// NewClientService создает сервис клиентов
func NewClientService(db *database.DB, compliance *ComplianceService) *ClientService {
	return &ClientService{db: db, compliance: compliance}
}

// CreateClientRequest данные нового клиента
type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	ShortName     string `json:"short_name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// Create создает клиента
func (s *ClientService) Create(req CreateClientRequest) (*database.Client, error) {
	client, err := s.db.CreateClient(req.Name, req.ShortName, req.ContactPerson, req.Phone, req.Email)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create client")
	}
	return client, nil
}

// Get возвращает клиента по ID
func (s *ClientService) Get(id int) (*database.Client, error) {
	client, err := s.db.GetClient(id)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get client")
	}
	return client, nil
}

// ListSummaries возвращает реестр клиентов со сводкой.
// Число просроченных зданий берется у классификатора, не из SQL
func (s *ClientService) ListSummaries(referenceDate time.Time) ([]*database.ClientSummary, error) {
	overdueCounts, err := s.compliance.OverdueCountsByClient(referenceDate)
	if err != nil {
		return nil, err
	}

	summaries, err := s.db.GetClientSummaries(overdueCounts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clients", err)
	}
	return summaries, nil
}

// Buildings возвращает здания клиента со сводкой по каждому
func (s *ClientService) Buildings(clientID int) ([]*database.BuildingOverview, error) {
	if _, err := s.db.GetClient(clientID); err != nil {
		return nil, apperrors.WrapError(err, "failed to get client")
	}

	buildings, err := s.db.GetBuildingsByClient(clientID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list client buildings", err)
	}
	return buildings, nil
}
