package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PaymentHistoryEntry платеж с данными клиента и здания для истории платежей
type PaymentHistoryEntry struct {
	Payment
	ClientName   string `json:"client_name"`
	BuildingName string `json:"building_name"`
}

// MonthlyRevenue выручка за календарный месяц (только received платежи)
type MonthlyRevenue struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// InsertPayment регистрирует платеж по договору.
// Платежи append-only: статус назначается при создании
// (received/pending/overdue/partial) и дальше не пересчитывается.
func (db *DB) InsertPayment(contractID int, paymentDate string, amount float64,
	method, referenceNumber, status, notes string) (*Payment, error) {

	if err := validateDate("payment_date", paymentDate); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %v", ErrValidation, amount)
	}
	if method == "" {
		method = "bank_transfer"
	}
	if err := validateEnum("method", method, allowedPaymentMethods); err != nil {
		return nil, err
	}
	if status == "" {
		status = "received"
	}
	if err := validateEnum("status", status, allowedPaymentStatuses); err != nil {
		return nil, err
	}
	if _, err := db.GetContract(contractID); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec(`
		INSERT INTO payments (contract_id, payment_date, amount, method, reference_number, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, contractID, paymentDate, amount, method, nullable(referenceNumber), status, nullable(notes))
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment ID: %w", err)
	}

	return db.GetPayment(int(id))
}

// GetPayment получает платеж по ID
func (db *DB) GetPayment(id int) (*Payment, error) {
	p := &Payment{}
	var referenceNumber, notes sql.NullString

	err := db.conn.QueryRow(`
		SELECT id, contract_id, payment_date, amount, method, reference_number, status, notes, created_at
		FROM payments WHERE id = ?
	`, id).Scan(&p.ID, &p.ContractID, &p.PaymentDate, &p.Amount, &p.Method,
		&referenceNumber, &p.Status, &notes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	p.ReferenceNumber = nullString(referenceNumber)
	p.Notes = nullString(notes)
	return p, nil
}

// GetPaymentHistory возвращает последние платежи с данными клиентов
func (db *DB) GetPaymentHistory(limit int) ([]*PaymentHistoryEntry, error) {
	rows, err := db.conn.Query(`
		SELECT p.id, p.contract_id, p.payment_date, p.amount, p.method,
			p.reference_number, p.status, p.notes, p.created_at,
			cl.name, b.name
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		JOIN buildings b ON b.id = c.building_id
		JOIN clients cl ON cl.id = b.client_id
		ORDER BY p.payment_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment history: %w", err)
	}
	defer rows.Close()

	var entries []*PaymentHistoryEntry
	for rows.Next() {
		e := &PaymentHistoryEntry{}
		var referenceNumber, notes sql.NullString

		if err := rows.Scan(&e.ID, &e.ContractID, &e.PaymentDate, &e.Amount, &e.Method,
			&referenceNumber, &e.Status, &notes, &e.CreatedAt,
			&e.ClientName, &e.BuildingName); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		e.ReferenceNumber = nullString(referenceNumber)
		e.Notes = nullString(notes)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetMonthlyRevenue возвращает выручку по месяцам за последние N месяцев
func (db *DB) GetMonthlyRevenue(referenceDate time.Time, months int) ([]*MonthlyRevenue, error) {
	cutoff := referenceDate.AddDate(0, 0, -months*30).Format(isoDate)

	rows, err := db.conn.Query(`
		SELECT strftime('%Y-%m', payment_date) AS month, SUM(amount) AS total
		FROM payments
		WHERE status = 'received' AND payment_date >= ?
		GROUP BY strftime('%Y-%m', payment_date)
		ORDER BY month ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}
	defer rows.Close()

	var revenue []*MonthlyRevenue
	for rows.Next() {
		r := &MonthlyRevenue{}
		if err := rows.Scan(&r.Month, &r.Total); err != nil {
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		revenue = append(revenue, r)
	}

	return revenue, rows.Err()
}
