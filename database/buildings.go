package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// BuildingWithClient здание с данными владельца
type BuildingWithClient struct {
	Building
	ClientName string `json:"client_name"`
	ShortName  string `json:"short_name"`
}

// BuildingOverview здание в списке по клиенту: оборудование,
// последнее обслуживание и параметры активного договора (если есть)
type BuildingOverview struct {
	Building
	EquipmentCount int      `json:"equipment_count"`
	LastInspection *string  `json:"last_inspection,omitempty"`
	AnnualValue    *float64 `json:"annual_value,omitempty"`
	VisitsPerYear  *int     `json:"visits_per_year,omitempty"`
	PaymentTerms   string   `json:"payment_terms,omitempty"`
}

// BuildingDetails полная карточка здания
type BuildingDetails struct {
	Building
	ClientName     string   `json:"client_name"`
	ShortName      string   `json:"short_name"`
	ContactPerson  string   `json:"contact_person"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	EquipmentCount int      `json:"equipment_count"`
	ContractID     *int     `json:"contract_id,omitempty"`
	AnnualValue    *float64 `json:"annual_value,omitempty"`
	VisitsPerYear  *int     `json:"visits_per_year,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	PaymentTerms   string   `json:"payment_terms,omitempty"`
	// Заполняется сервисным слоем отдельным запросом
	Equipment []*Equipment `json:"equipment,omitempty"`
}

// CreateBuilding создает здание у клиента
func (db *DB) CreateBuilding(clientID int, name, area string) (*Building, error) {
	if err := validateRequired("name", name); err != nil {
		return nil, err
	}

	// Клиент должен существовать — NotFound, а не молчаливая вставка.
	if _, err := db.GetClient(clientID); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec(`
		INSERT INTO buildings (client_id, name, area) VALUES (?, ?, ?)
	`, clientID, name, area)
	if err != nil {
		return nil, fmt.Errorf("failed to create building: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get building ID: %w", err)
	}

	return db.GetBuilding(int(id))
}

// GetBuilding получает здание по ID
func (db *DB) GetBuilding(id int) (*Building, error) {
	b := &Building{}
	var area sql.NullString

	err := db.conn.QueryRow(`
		SELECT id, client_id, name, area FROM buildings WHERE id = ?
	`, id).Scan(&b.ID, &b.ClientID, &b.Name, &area)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: building %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get building: %w", err)
	}

	b.Area = nullString(area)
	return b, nil
}

// GetAllBuildings возвращает все здания с данными клиентов
func (db *DB) GetAllBuildings() ([]*BuildingWithClient, error) {
	rows, err := db.conn.Query(`
		SELECT b.id, b.client_id, b.name, b.area, cl.name, cl.short_name
		FROM buildings b
		JOIN clients cl ON cl.id = b.client_id
		ORDER BY cl.name, b.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*BuildingWithClient
	for rows.Next() {
		b := &BuildingWithClient{}
		var area sql.NullString
		if err := rows.Scan(&b.ID, &b.ClientID, &b.Name, &area, &b.ClientName, &b.ShortName); err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		b.Area = nullString(area)
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

// GetBuildingsByClient возвращает здания клиента со сводкой по каждому
func (db *DB) GetBuildingsByClient(clientID int) ([]*BuildingOverview, error) {
	rows, err := db.conn.Query(`
		SELECT b.id, b.client_id, b.name, b.area,
			(SELECT COUNT(*) FROM equipment e WHERE e.building_id = b.id) AS equipment_count,
			(SELECT MAX(i.inspection_date) FROM inspections i WHERE i.building_id = b.id) AS last_inspection,
			c.annual_value,
			c.visits_per_year,
			c.payment_terms
		FROM buildings b
		LEFT JOIN contracts c ON c.building_id = b.id AND c.status = 'active'
		WHERE b.client_id = ?
		ORDER BY b.name
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buildings by client: %w", err)
	}
	defer rows.Close()

	var buildings []*BuildingOverview
	for rows.Next() {
		b := &BuildingOverview{}
		var (
			area           sql.NullString
			lastInspection sql.NullString
			annualValue    sql.NullFloat64
			visitsPerYear  sql.NullInt64
			paymentTerms   sql.NullString
		)

		if err := rows.Scan(&b.ID, &b.ClientID, &b.Name, &area,
			&b.EquipmentCount, &lastInspection, &annualValue, &visitsPerYear, &paymentTerms); err != nil {
			return nil, fmt.Errorf("failed to scan building overview: %w", err)
		}

		b.Area = nullString(area)
		b.PaymentTerms = nullString(paymentTerms)
		if lastInspection.Valid {
			b.LastInspection = &lastInspection.String
		}
		if annualValue.Valid {
			b.AnnualValue = &annualValue.Float64
		}
		if visitsPerYear.Valid {
			v := int(visitsPerYear.Int64)
			b.VisitsPerYear = &v
		}

		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

// GetBuildingDetails возвращает полную карточку здания
func (db *DB) GetBuildingDetails(buildingID int) (*BuildingDetails, error) {
	d := &BuildingDetails{}
	var (
		area          sql.NullString
		contactPerson sql.NullString
		phone         sql.NullString
		email         sql.NullString
		contractID    sql.NullInt64
		annualValue   sql.NullFloat64
		visitsPerYear sql.NullInt64
		startDate     sql.NullString
		endDate       sql.NullString
		paymentTerms  sql.NullString
	)

	err := db.conn.QueryRow(`
		SELECT b.id, b.client_id, b.name, b.area,
			cl.name, cl.short_name, cl.contact_person, cl.phone, cl.email,
			(SELECT COUNT(*) FROM equipment e WHERE e.building_id = b.id) AS equipment_count,
			c.id, c.annual_value, c.visits_per_year, c.start_date, c.end_date, c.payment_terms
		FROM buildings b
		JOIN clients cl ON cl.id = b.client_id
		LEFT JOIN contracts c ON c.building_id = b.id AND c.status = 'active'
		WHERE b.id = ?
	`, buildingID).Scan(&d.ID, &d.ClientID, &d.Name, &area,
		&d.ClientName, &d.ShortName, &contactPerson, &phone, &email,
		&d.EquipmentCount, &contractID, &annualValue, &visitsPerYear, &startDate, &endDate, &paymentTerms)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: building %d", ErrNotFound, buildingID)
		}
		return nil, fmt.Errorf("failed to get building details: %w", err)
	}

	d.Area = nullString(area)
	d.ContactPerson = nullString(contactPerson)
	d.Phone = nullString(phone)
	d.Email = nullString(email)
	d.StartDate = nullString(startDate)
	d.EndDate = nullString(endDate)
	d.PaymentTerms = nullString(paymentTerms)
	d.ContractID = nullIntPtr(contractID)
	if annualValue.Valid {
		d.AnnualValue = &annualValue.Float64
	}
	if visitsPerYear.Valid {
		v := int(visitsPerYear.Int64)
		d.VisitsPerYear = &v
	}

	return d, nil
}
