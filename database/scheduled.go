package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ScheduledWithBuilding назначенный выезд с данными здания и клиента
type ScheduledWithBuilding struct {
	ScheduledInspection
	BuildingName string `json:"building_name"`
	Area         string `json:"area"`
	ClientName   string `json:"client_name"`
	ShortName    string `json:"short_name"`
}

// ScheduleInspection назначает выезд по зданию.
// Пока выезд в статусе scheduled, классификатор исключает здание из просроченных.
func (db *DB) ScheduleInspection(buildingID int, scheduledDate, assignedTechnician string) (*ScheduledInspection, error) {
	if err := validateDate("scheduled_date", scheduledDate); err != nil {
		return nil, err
	}
	if err := validateRequired("assigned_technician", assignedTechnician); err != nil {
		return nil, err
	}
	if _, err := db.GetBuilding(buildingID); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec(`
		INSERT INTO scheduled_inspections (building_id, scheduled_date, assigned_technician)
		VALUES (?, ?, ?)
	`, buildingID, scheduledDate, assignedTechnician)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule inspection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule ID: %w", err)
	}

	return db.GetScheduledInspection(int(id))
}

// GetScheduledInspection получает назначенный выезд по ID
func (db *DB) GetScheduledInspection(id int) (*ScheduledInspection, error) {
	s := &ScheduledInspection{}

	err := db.conn.QueryRow(`
		SELECT id, building_id, scheduled_date, assigned_technician, status, created_at
		FROM scheduled_inspections WHERE id = ?
	`, id).Scan(&s.ID, &s.BuildingID, &s.ScheduledDate, &s.AssignedTechnician, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: scheduled inspection %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get scheduled inspection: %w", err)
	}

	return s, nil
}

// GetScheduledInspections возвращает все незавершенные выезды
func (db *DB) GetScheduledInspections() ([]*ScheduledWithBuilding, error) {
	rows, err := db.conn.Query(`
		SELECT si.id, si.building_id, si.scheduled_date, si.assigned_technician, si.status, si.created_at,
			b.name, b.area, cl.name, cl.short_name
		FROM scheduled_inspections si
		JOIN buildings b ON b.id = si.building_id
		JOIN clients cl ON cl.id = b.client_id
		WHERE si.status = 'scheduled'
		ORDER BY si.scheduled_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled inspections: %w", err)
	}
	defer rows.Close()

	var scheduled []*ScheduledWithBuilding
	for rows.Next() {
		s := &ScheduledWithBuilding{}
		var area sql.NullString

		if err := rows.Scan(&s.ID, &s.BuildingID, &s.ScheduledDate, &s.AssignedTechnician,
			&s.Status, &s.CreatedAt, &s.BuildingName, &area, &s.ClientName, &s.ShortName); err != nil {
			return nil, fmt.Errorf("failed to scan scheduled inspection: %w", err)
		}

		s.Area = nullString(area)
		scheduled = append(scheduled, s)
	}

	return scheduled, rows.Err()
}

// IsBuildingScheduled проверяет, есть ли по зданию незавершенный выезд
func (db *DB) IsBuildingScheduled(buildingID int) (bool, error) {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM scheduled_inspections
		WHERE building_id = ? AND status = 'scheduled'
	`, buildingID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check schedule: %w", err)
	}
	return count > 0, nil
}

// UpdateScheduledStatus переводит выезд в completed или cancelled.
// Классификатор выезды не закрывает — это внешний путь записи.
func (db *DB) UpdateScheduledStatus(id int, status string) error {
	if err := validateEnum("status", status, allowedScheduleStatuses); err != nil {
		return err
	}

	result, err := db.conn.Exec(`
		UPDATE scheduled_inspections SET status = ? WHERE id = ?
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: scheduled inspection %d", ErrNotFound, id)
	}

	return nil
}

// CompletePendingForBuilding закрывает незавершенные выезды здания.
// Вызывается после записи фактического обслуживания: визит состоялся,
// висящий в графике выезд больше не актуален.
func (db *DB) CompletePendingForBuilding(buildingID int) (int, error) {
	result, err := db.conn.Exec(`
		UPDATE scheduled_inspections SET status = 'completed'
		WHERE building_id = ? AND status = 'scheduled'
	`, buildingID)
	if err != nil {
		return 0, fmt.Errorf("failed to complete pending schedules: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check update result: %w", err)
	}

	return int(affected), nil
}
