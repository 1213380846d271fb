package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// CreateContract создает договор обслуживания по зданию.
// Нулевая или отрицательная частота выездов и неположительная стоимость
// отклоняются здесь — классификатор и агрегатор таких данных не видят.
// Новый активный договор деактивирует предыдущий активный по тому же зданию,
// чтобы сохранить инвариант "не более одного активного договора на здание".
func (db *DB) CreateContract(buildingID int, startDate, endDate string,
	visitsPerYear int, annualValue float64, paymentTerms string) (*Contract, error) {

	if visitsPerYear < 1 {
		return nil, fmt.Errorf("%w: visits_per_year must be at least 1, got %d", ErrValidation, visitsPerYear)
	}
	if annualValue <= 0 {
		return nil, fmt.Errorf("%w: annual_value must be positive, got %v", ErrValidation, annualValue)
	}
	if err := validateDate("start_date", startDate); err != nil {
		return nil, err
	}
	if err := validateDate("end_date", endDate); err != nil {
		return nil, err
	}
	if endDate < startDate {
		return nil, fmt.Errorf("%w: end_date precedes start_date", ErrValidation)
	}
	if err := validateEnum("payment_terms", paymentTerms, allowedPaymentTerms); err != nil {
		return nil, err
	}
	if _, err := db.GetBuilding(buildingID); err != nil {
		return nil, err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE contracts SET status = 'inactive'
		WHERE building_id = ? AND status = 'active'
	`, buildingID); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous contract: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO contracts (building_id, start_date, end_date, visits_per_year, annual_value, payment_terms, status)
		VALUES (?, ?, ?, ?, ?, ?, 'active')
	`, buildingID, startDate, endDate, visitsPerYear, annualValue, paymentTerms)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get contract ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit contract: %w", err)
	}

	return db.GetContract(int(id))
}

// GetContract получает договор по ID
func (db *DB) GetContract(id int) (*Contract, error) {
	c := &Contract{}

	err := db.conn.QueryRow(`
		SELECT id, building_id, start_date, end_date, visits_per_year, annual_value, payment_terms, status
		FROM contracts WHERE id = ?
	`, id).Scan(&c.ID, &c.BuildingID, &c.StartDate, &c.EndDate,
		&c.VisitsPerYear, &c.AnnualValue, &c.PaymentTerms, &c.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: contract %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	return c, nil
}

// GetContractByBuilding возвращает активный договор здания.
// Здание без активного договора — это ErrNotFound, а не пустой договор.
func (db *DB) GetContractByBuilding(buildingID int) (*Contract, error) {
	c := &Contract{}

	err := db.conn.QueryRow(`
		SELECT id, building_id, start_date, end_date, visits_per_year, annual_value, payment_terms, status
		FROM contracts
		WHERE building_id = ? AND status = 'active'
	`, buildingID).Scan(&c.ID, &c.BuildingID, &c.StartDate, &c.EndDate,
		&c.VisitsPerYear, &c.AnnualValue, &c.PaymentTerms, &c.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: active contract for building %d", ErrNotFound, buildingID)
		}
		return nil, fmt.Errorf("failed to get contract by building: %w", err)
	}

	return c, nil
}

// CountActiveContracts возвращает число активных договоров
func (db *DB) CountActiveContracts() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM contracts WHERE status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active contracts: %w", err)
	}
	return count, nil
}
