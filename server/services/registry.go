package services

import (
	"ttsguard/database"
)

// Registry собирает все сервисы поверх одного хранилища
type Registry struct {
	Clients     *ClientService
	Buildings   *BuildingService
	Inspections *InspectionService
	Complaints  *ComplaintService
	Compliance  *ComplianceService
	Finance     *FinanceService
	Dashboard   *DashboardService
	Reports     *ReportService
}

// NewRegistry создает сервисы с общими настройками классификации
func NewRegistry(db *database.DB, dueSoonThresholdDays int) *Registry {
	compliance := NewComplianceService(db, dueSoonThresholdDays)
	finance := NewFinanceService(db)

	return &Registry{
		Clients:     NewClientService(db, compliance),
		Buildings:   NewBuildingService(db),
		Inspections: NewInspectionService(db),
		Complaints:  NewComplaintService(db),
		Compliance:  compliance,
		Finance:     finance,
		Dashboard:   NewDashboardService(db, compliance, finance),
		Reports:     NewReportService(db, compliance, finance),
	}
}
