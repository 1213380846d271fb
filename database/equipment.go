package database

import "fmt"

// EquipmentGroup оборудование здания, сгруппированное по типу
type EquipmentGroup struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// AddEquipment добавляет единицу оборудования в здание
func (db *DB) AddEquipment(buildingID int, equipmentType, status string) (*Equipment, error) {
	if err := validateRequired("type", equipmentType); err != nil {
		return nil, err
	}
	if status == "" {
		status = "OK"
	}
	if _, err := db.GetBuilding(buildingID); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec(`
		INSERT INTO equipment (building_id, type, status) VALUES (?, ?, ?)
	`, buildingID, equipmentType, status)
	if err != nil {
		return nil, fmt.Errorf("failed to add equipment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment ID: %w", err)
	}

	return &Equipment{ID: int(id), BuildingID: buildingID, Type: equipmentType, Status: status}, nil
}

// GetEquipmentByBuilding возвращает все оборудование здания
func (db *DB) GetEquipmentByBuilding(buildingID int) ([]*Equipment, error) {
	rows, err := db.conn.Query(`
		SELECT id, building_id, type, status
		FROM equipment
		WHERE building_id = ?
		ORDER BY type, id
	`, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	defer rows.Close()

	var items []*Equipment
	for rows.Next() {
		e := &Equipment{}
		if err := rows.Scan(&e.ID, &e.BuildingID, &e.Type, &e.Status); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, e)
	}

	return items, rows.Err()
}

// GetEquipmentGroupedByType возвращает оборудование здания по типам с количеством
func (db *DB) GetEquipmentGroupedByType(buildingID int) ([]*EquipmentGroup, error) {
	rows, err := db.conn.Query(`
		SELECT type, COUNT(*) AS count
		FROM equipment
		WHERE building_id = ?
		GROUP BY type
		ORDER BY type
	`, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to group equipment: %w", err)
	}
	defer rows.Close()

	var groups []*EquipmentGroup
	for rows.Next() {
		g := &EquipmentGroup{}
		if err := rows.Scan(&g.Type, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan equipment group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
