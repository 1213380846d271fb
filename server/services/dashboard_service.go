package services

import (
	"time"

	"ttsguard/database"
	"ttsguard/internal/compliance"
	apperrors "ttsguard/server/errors"
)

// DashboardService собирает сводку для главного экрана
type DashboardService struct {
	db         *database.DB
	compliance *ComplianceService
	finance    *FinanceService
}

// NewDashboardService создает сервис дашборда
func NewDashboardService(db *database.DB, compliance *ComplianceService, finance *FinanceService) *DashboardService {
	return &DashboardService{db: db, compliance: compliance, finance: finance}
}

// DashboardStats сводные показатели для дашборда
type DashboardStats struct {
	ActiveContracts    int     `json:"active_contracts"`
	TotalBuildings     int     `json:"total_buildings"`
	OverdueBuildings   int     `json:"overdue_buildings"`
	DueSoonBuildings   int     `json:"due_soon_buildings"`
	ScheduledBuildings int     `json:"scheduled_buildings"`
	OnTrackBuildings   int     `json:"on_track_buildings"`
	CompletedThisMonth int     `json:"completed_this_month"`
	OpenComplaints     int     `json:"open_complaints"`
	TotalContractValue float64 `json:"total_contract_value"`
	TotalCollected     float64 `json:"total_collected"`
	TotalOutstanding   float64 `json:"total_outstanding"`
	CollectionPct      float64 `json:"collection_pct"`
}

// Dashboard полная выдача главного экрана
type Dashboard struct {
	Stats             *DashboardStats                    `json:"stats"`
	OverdueBuildings  []*database.ComplianceEntry        `json:"overdue_buildings"`
	DueSoonBuildings  []*database.ComplianceEntry        `json:"due_soon_buildings"`
	RecentInspections []*database.InspectionWithBuilding `json:"recent_inspections"`
	RecentComplaints  []*database.ComplaintWithBuilding  `json:"recent_complaints"`
}

// Build собирает дашборд на дату отсчета
func (s *DashboardService) Build(referenceDate time.Time) (*Dashboard, error) {
	entries, err := s.compliance.List(referenceDate)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalBuildings: len(entries)}

	var overdue, dueSoon []*database.ComplianceEntry
	for _, e := range entries {
		switch e.Status {
		case compliance.StatusOverdue:
			stats.OverdueBuildings++
			overdue = append(overdue, e)
		case compliance.StatusDueSoon:
			stats.DueSoonBuildings++
			dueSoon = append(dueSoon, e)
		case compliance.StatusScheduled:
			stats.ScheduledBuildings++
		case compliance.StatusOnTrack:
			stats.OnTrackBuildings++
		}
	}

	activeContracts, err := s.db.CountActiveContracts()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count active contracts", err)
	}
	stats.ActiveContracts = activeContracts

	completed, err := s.db.GetCompletedThisMonth(referenceDate)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count completed inspections", err)
	}
	stats.CompletedThisMonth = len(completed)

	complaints, err := s.db.GetAllComplaints()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list complaints", err)
	}
	for _, c := range complaints {
		if c.Status != "resolved" {
			stats.OpenComplaints++
		}
	}

	summary, err := s.finance.Summary()
	if err != nil {
		return nil, err
	}
	stats.TotalContractValue = summary.TotalContractValue
	stats.TotalCollected = summary.TotalCollected
	stats.TotalOutstanding = summary.TotalOutstanding
	stats.CollectionPct = summary.CollectionPct

	recentInspections, err := s.db.GetRecentInspections(referenceDate, 30)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recent inspections", err)
	}

	recentComplaints, err := s.db.GetRecentComplaints(5)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recent complaints", err)
	}

	return &Dashboard{
		Stats:             stats,
		OverdueBuildings:  overdue,
		DueSoonBuildings:  dueSoon,
		RecentInspections: recentInspections,
		RecentComplaints:  recentComplaints,
	}, nil
}
