package services

import (
	"log/slog"
	"time"

	"ttsguard/database"
	apperrors "ttsguard/server/errors"
)

// InspectionService сервис записи и просмотра обслуживаний
type InspectionService struct {
	db *database.DB
}

// NewInspectionService создает сервис обслуживаний
func NewInspectionService(db *database.DB) *InspectionService {
	return &InspectionService{db: db}
}

// RecordInspectionRequest данные выполненного обслуживания
type RecordInspectionRequest struct {
	BuildingID     int    `json:"building_id" binding:"required"`
	InspectionDate string `json:"inspection_date" binding:"required"`
	Technician     string `json:"technician" binding:"required"`
	ItemsChecked   int    `json:"items_checked"`
	ItemsPassed    int    `json:"items_passed"`
	ItemsFailed    int    `json:"items_failed"`
	Notes          string `json:"notes"`
}

// ScheduleRequest данные назначаемого выезда
type ScheduleRequest struct {
	BuildingID         int    `json:"building_id" binding:"required"`
	ScheduledDate      string `json:"scheduled_date" binding:"required"`
	AssignedTechnician string `json:"assigned_technician" binding:"required"`
}

// Record записывает обслуживание и закрывает висящие по зданию выезды:
// визит состоялся, запись в графике больше не актуальна
func (s *InspectionService) Record(req RecordInspectionRequest) (*database.Inspection, error) {
	inspection, err := s.db.InsertInspection(req.BuildingID, req.InspectionDate, req.Technician,
		req.ItemsChecked, req.ItemsPassed, req.ItemsFailed, req.Notes)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to record inspection")
	}

	closed, err := s.db.CompletePendingForBuilding(req.BuildingID)
	if err != nil {
		// Обслуживание уже записано, падать поздно.
		slog.Error("Failed to close pending schedules", "building_id", req.BuildingID, "error", err)
	} else if closed > 0 {
		slog.Info("Closed pending schedules after inspection", "building_id", req.BuildingID, "count", closed)
	}

	return inspection, nil
}

// Recent возвращает обслуживания за последние N дней
func (s *InspectionService) Recent(referenceDate time.Time, days int) ([]*database.InspectionWithBuilding, error) {
	if days < 1 {
		days = 30
	}

	inspections, err := s.db.GetRecentInspections(referenceDate, days)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recent inspections", err)
	}
	return inspections, nil
}

// ByMonth возвращает обслуживания за календарный месяц
func (s *InspectionService) ByMonth(year int, month time.Month) ([]*database.InspectionWithBuilding, error) {
	inspections, err := s.db.GetInspectionsByMonth(year, month)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list inspections by month", err)
	}
	return inspections, nil
}

// Schedule назначает выезд по зданию. Повторное назначение при
// незавершенном выезде отклоняется
func (s *InspectionService) Schedule(req ScheduleRequest) (*database.ScheduledInspection, error) {
	alreadyScheduled, err := s.db.IsBuildingScheduled(req.BuildingID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check pending schedules", err)
	}
	if alreadyScheduled {
		return nil, apperrors.NewConflictError("building already has a pending scheduled inspection", nil)
	}

	scheduled, err := s.db.ScheduleInspection(req.BuildingID, req.ScheduledDate, req.AssignedTechnician)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to schedule inspection")
	}
	return scheduled, nil
}

// ListScheduled возвращает незавершенные выезды, ближайшие первыми
func (s *InspectionService) ListScheduled() ([]*database.ScheduledWithBuilding, error) {
	scheduled, err := s.db.GetScheduledInspections()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list scheduled inspections", err)
	}
	return scheduled, nil
}

// UpdateScheduleStatus переводит выезд в completed или cancelled
func (s *InspectionService) UpdateScheduleStatus(id int, status string) (*database.ScheduledInspection, error) {
	if err := s.db.UpdateScheduledStatus(id, status); err != nil {
		return nil, apperrors.WrapError(err, "failed to update schedule")
	}

	scheduled, err := s.db.GetScheduledInspection(id)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get updated schedule")
	}
	return scheduled, nil
}

// Get возвращает запись обслуживания по ID
func (s *InspectionService) Get(id int) (*database.Inspection, error) {
	inspection, err := s.db.GetInspection(id)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get inspection")
	}
	return inspection, nil
}
