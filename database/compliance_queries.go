package database

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"ttsguard/internal/compliance"
)

// ComplianceEntry здание с активным договором и результатом классификации.
// DaysSinceLast/DaysUntilNext выдаются в историческом формате:
// 999 / -999 для зданий без единого обслуживания.
type ComplianceEntry struct {
	BuildingID         int               `json:"building_id"`
	BuildingName       string            `json:"building_name"`
	Area               string            `json:"area"`
	ClientID           int               `json:"client_id"`
	ClientName         string            `json:"client_name"`
	ShortName          string            `json:"short_name"`
	ContractID         int               `json:"contract_id"`
	AnnualValue        float64           `json:"annual_value"`
	VisitsPerYear      int               `json:"visits_per_year"`
	EquipmentCount     int               `json:"equipment_count"`
	LastInspectionDate *string           `json:"last_inspection_date"`
	DaysSinceLast      int               `json:"days_since_last"`
	DaysUntilNext      int               `json:"days_until_next"`
	DaysOverdue        int               `json:"days_overdue,omitempty"`
	Status             compliance.Status `json:"status"`
}

// complianceBaseQuery единственный источник входов классификации:
// здания с активным договором, дата последнего обслуживания и признак
// назначенного выезда. Сама классификация выполняется в Go
// (compliance.Classify), а не растиражированными CASE-выражениями.
const complianceBaseQuery = `
	SELECT
		b.id,
		b.name,
		b.area,
		cl.id,
		cl.name,
		cl.short_name,
		c.id,
		c.annual_value,
		c.visits_per_year,
		(SELECT COUNT(*) FROM equipment e WHERE e.building_id = b.id) AS equipment_count,
		(SELECT MAX(i.inspection_date) FROM inspections i WHERE i.building_id = b.id) AS last_date,
		EXISTS (
			SELECT 1 FROM scheduled_inspections si
			WHERE si.building_id = b.id AND si.status = 'scheduled'
		) AS has_schedule
	FROM buildings b
	JOIN clients cl ON cl.id = b.client_id
	JOIN contracts c ON c.building_id = b.id AND c.status = 'active'
`

// ListCompliance классифицирует все здания с активным договором.
// Здания без активного договора в выдачу не попадают: для них
// интервал не определен.
func (db *DB) ListCompliance(referenceDate time.Time, dueSoonThreshold int) ([]*ComplianceEntry, error) {
	rows, err := db.conn.Query(complianceBaseQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query compliance inputs: %w", err)
	}
	defer rows.Close()

	var entries []*ComplianceEntry
	for rows.Next() {
		e := &ComplianceEntry{}
		var (
			area        sql.NullString
			lastDate    sql.NullString
			hasSchedule bool
		)

		if err := rows.Scan(&e.BuildingID, &e.BuildingName, &area,
			&e.ClientID, &e.ClientName, &e.ShortName,
			&e.ContractID, &e.AnnualValue, &e.VisitsPerYear,
			&e.EquipmentCount, &lastDate, &hasSchedule); err != nil {
			return nil, fmt.Errorf("failed to scan compliance row: %w", err)
		}
		e.Area = nullString(area)

		in := compliance.Input{
			ReferenceDate:      referenceDate,
			VisitsPerYear:      e.VisitsPerYear,
			HasPendingSchedule: hasSchedule,
			DueSoonThreshold:   dueSoonThreshold,
		}

		if lastDate.Valid {
			ts, err := parseISODate(lastDate.String)
			if err != nil {
				return nil, fmt.Errorf("building %d has invalid inspection date: %w", e.BuildingID, err)
			}
			in.LastInspection = &ts
			e.LastInspectionDate = &lastDate.String
		}

		a, err := compliance.Classify(in)
		if err != nil {
			return nil, fmt.Errorf("failed to classify building %d: %w", e.BuildingID, err)
		}

		e.Status = a.Status
		e.DaysSinceLast = a.EffectiveDaysSinceLast()
		e.DaysUntilNext = a.EffectiveDaysUntilNext()
		e.DaysOverdue = a.DaysOverdue

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListOverdue возвращает просроченные здания, самые просроченные первыми.
// Здания с назначенным выездом исключены независимо от дат.
func (db *DB) ListOverdue(referenceDate time.Time) ([]*ComplianceEntry, error) {
	entries, err := db.ListCompliance(referenceDate, 0)
	if err != nil {
		return nil, err
	}

	var overdue []*ComplianceEntry
	for _, e := range entries {
		if e.Status == compliance.StatusOverdue {
			overdue = append(overdue, e)
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysSinceLast > overdue[j].DaysSinceLast
	})

	return overdue, nil
}

// ListDueSoon возвращает здания, которым обслуживание требуется
// в ближайшие thresholdDays дней, самые срочные первыми
func (db *DB) ListDueSoon(referenceDate time.Time, thresholdDays int) ([]*ComplianceEntry, error) {
	entries, err := db.ListCompliance(referenceDate, thresholdDays)
	if err != nil {
		return nil, err
	}

	var dueSoon []*ComplianceEntry
	for _, e := range entries {
		if e.Status == compliance.StatusDueSoon {
			dueSoon = append(dueSoon, e)
		}
	}

	sort.SliceStable(dueSoon, func(i, j int) bool {
		return dueSoon[i].DaysUntilNext < dueSoon[j].DaysUntilNext
	})

	return dueSoon, nil
}

// ClientOverdueCounts возвращает число просроченных зданий по каждому клиенту
func (db *DB) ClientOverdueCounts(referenceDate time.Time) (map[int]int, error) {
	overdue, err := db.ListOverdue(referenceDate)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, e := range overdue {
		counts[e.ClientID]++
	}

	return counts, nil
}
