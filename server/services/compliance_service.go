package services

import (
	"fmt"
	"time"

	"ttsguard/database"
	"ttsguard/internal/compliance"
	apperrors "ttsguard/server/errors"
)

// ComplianceService сервис классификации зданий по графику обслуживаний
type ComplianceService struct {
	db               *database.DB
	dueSoonThreshold int
}

// NewComplianceService создает сервис классификации
func NewComplianceService(db *database.DB, dueSoonThresholdDays int) *ComplianceService {
	if dueSoonThresholdDays < 1 {
		dueSoonThresholdDays = compliance.DefaultDueSoonThreshold
	}
	return &ComplianceService{db: db, dueSoonThreshold: dueSoonThresholdDays}
}

// ParseReferenceDate разбирает опциональную дату отсчета из запроса.
// Пустая строка означает "сегодня"
func ParseReferenceDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(
			fmt.Sprintf("invalid reference date %q, expected YYYY-MM-DD", raw), err)
	}
	return date, nil
}

// List возвращает классификацию всех зданий с активным договором
func (s *ComplianceService) List(referenceDate time.Time) ([]*database.ComplianceEntry, error) {
	entries, err := s.db.ListCompliance(referenceDate, s.dueSoonThreshold)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to classify buildings", err)
	}
	return entries, nil
}

// Overdue возвращает просроченные здания, сильнее просроченные первыми
func (s *ComplianceService) Overdue(referenceDate time.Time) ([]*database.ComplianceEntry, error) {
	entries, err := s.db.ListOverdue(referenceDate)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list overdue buildings", err)
	}
	return entries, nil
}

// DueSoon возвращает здания с приближающимся сроком обслуживания
func (s *ComplianceService) DueSoon(referenceDate time.Time) ([]*database.ComplianceEntry, error) {
	entries, err := s.db.ListDueSoon(referenceDate, s.dueSoonThreshold)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list due-soon buildings", err)
	}
	return entries, nil
}

// OverdueCountsByClient возвращает число просроченных зданий по клиентам
func (s *ComplianceService) OverdueCountsByClient(referenceDate time.Time) (map[int]int, error) {
	counts, err := s.db.ClientOverdueCounts(referenceDate)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count overdue buildings", err)
	}
	return counts, nil
}
