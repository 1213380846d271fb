package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// InspectionWithBuilding обслуживание с данными здания и клиента
type InspectionWithBuilding struct {
	Inspection
	BuildingName string `json:"building_name"`
	ClientName   string `json:"client_name"`
	ShortName    string `json:"short_name"`
}

// InsertInspection записывает выполненное обслуживание.
// История обслуживаний append-only: записи не редактируются и не удаляются.
func (db *DB) InsertInspection(buildingID int, inspectionDate, technician string,
	itemsChecked, itemsPassed, itemsFailed int, notes string) (*Inspection, error) {

	if err := validateDate("inspection_date", inspectionDate); err != nil {
		return nil, err
	}
	if err := validateRequired("technician", technician); err != nil {
		return nil, err
	}
	if itemsChecked < 0 || itemsPassed < 0 || itemsFailed < 0 {
		return nil, fmt.Errorf("%w: item counters cannot be negative", ErrValidation)
	}
	if itemsPassed+itemsFailed > itemsChecked {
		return nil, fmt.Errorf("%w: passed+failed exceeds items checked", ErrValidation)
	}
	if _, err := db.GetBuilding(buildingID); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec(`
		INSERT INTO inspections (building_id, inspection_date, technician, items_checked, items_passed, items_failed, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, buildingID, inspectionDate, technician, itemsChecked, itemsPassed, itemsFailed, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inspection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection ID: %w", err)
	}

	return db.GetInspection(int(id))
}

// GetInspection получает обслуживание по ID
func (db *DB) GetInspection(id int) (*Inspection, error) {
	i := &Inspection{}
	var notes sql.NullString

	err := db.conn.QueryRow(`
		SELECT id, building_id, inspection_date, technician, items_checked, items_passed, items_failed, notes, created_at
		FROM inspections WHERE id = ?
	`, id).Scan(&i.ID, &i.BuildingID, &i.InspectionDate, &i.Technician,
		&i.ItemsChecked, &i.ItemsPassed, &i.ItemsFailed, &notes, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: inspection %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}

	i.Notes = nullString(notes)
	return i, nil
}

// GetRecentInspections возвращает обслуживания за последние N дней
func (db *DB) GetRecentInspections(referenceDate time.Time, days int) ([]*InspectionWithBuilding, error) {
	cutoff := referenceDate.AddDate(0, 0, -days).Format(isoDate)
	return db.queryInspections(`
		WHERE i.inspection_date >= ?
		ORDER BY i.inspection_date DESC
	`, cutoff)
}

// GetCompletedThisMonth возвращает обслуживания текущего месяца
func (db *DB) GetCompletedThisMonth(referenceDate time.Time) ([]*InspectionWithBuilding, error) {
	monthStart := time.Date(referenceDate.Year(), referenceDate.Month(), 1, 0, 0, 0, 0, time.UTC).Format(isoDate)
	return db.queryInspections(`
		WHERE i.inspection_date >= ?
		ORDER BY i.inspection_date DESC
	`, monthStart)
}

// GetInspectionsByMonth возвращает обслуживания за указанный месяц
func (db *DB) GetInspectionsByMonth(year int, month time.Month) ([]*InspectionWithBuilding, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	return db.queryInspections(`
		WHERE i.inspection_date >= ? AND i.inspection_date < ?
		ORDER BY i.inspection_date DESC
	`, monthStart.Format(isoDate), monthEnd.Format(isoDate))
}

// queryInspections общий запрос обслуживаний с данными здания и клиента
func (db *DB) queryInspections(whereClause string, args ...interface{}) ([]*InspectionWithBuilding, error) {
	query := `
		SELECT i.id, i.building_id, i.inspection_date, i.technician,
			i.items_checked, i.items_passed, i.items_failed, i.notes, i.created_at,
			b.name, cl.name, cl.short_name
		FROM inspections i
		JOIN buildings b ON b.id = i.building_id
		JOIN clients cl ON cl.id = b.client_id
	` + whereClause

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections: %w", err)
	}
	defer rows.Close()

	var inspections []*InspectionWithBuilding
	for rows.Next() {
		i := &InspectionWithBuilding{}
		var notes sql.NullString

		if err := rows.Scan(&i.ID, &i.BuildingID, &i.InspectionDate, &i.Technician,
			&i.ItemsChecked, &i.ItemsPassed, &i.ItemsFailed, &notes, &i.CreatedAt,
			&i.BuildingName, &i.ClientName, &i.ShortName); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}

		i.Notes = nullString(notes)
		inspections = append(inspections, i)
	}

	return inspections, rows.Err()
}
