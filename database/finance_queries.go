package database

import (
	"fmt"
	"time"

	"ttsguard/internal/finance"
)

// ClientFinanceRow финансовая строка клиента для разбивки по портфелю
type ClientFinanceRow struct {
	ClientID      int                  `json:"client_id"`
	ClientName    string               `json:"client_name"`
	ContractValue float64              `json:"contract_value"`
	Paid          float64              `json:"paid"`
	Outstanding   float64              `json:"outstanding"`
	Status        finance.ClientStatus `json:"status"`
}

// OutstandingInvoice неоплаченный платеж по активному договору.
// DaysOverdue знаковый: отрицательное значение означает счет со сроком
// в будущем; просрочка осмысленна только при положительном значении
// вместе со статусом overdue.
type OutstandingInvoice struct {
	ClientName    string  `json:"client_name"`
	BuildingName  string  `json:"building_name"`
	ContractValue float64 `json:"contract_value"`
	AmountDue     float64 `json:"amount_due"`
	DueDate       string  `json:"due_date"`
	DaysOverdue   int     `json:"days_overdue"`
	Status        string  `json:"status"`
}

// ClientFinancialDetail финансовая сводка одного клиента
type ClientFinancialDetail struct {
	TotalValue  float64 `json:"total_value"`
	TotalPaid   float64 `json:"total_paid"`
	Outstanding float64 `json:"outstanding"`
}

// GetFinancialSummary возвращает сводные финансовые показатели портфеля.
// Остаток считается двумя способами (остаток от стоимости портфеля и сумма
// выставленных pending/overdue платежей) — оба попадают в выдачу.
func (db *DB) GetFinancialSummary() (*finance.Summary, error) {
	s := &finance.Summary{}

	err := db.conn.QueryRow(`
		SELECT COALESCE(SUM(annual_value), 0) FROM contracts WHERE status = 'active'
	`).Scan(&s.TotalContractValue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum contract value: %w", err)
	}

	err = db.conn.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		WHERE p.status = 'received' AND c.status = 'active'
	`).Scan(&s.TotalCollected)
	if err != nil {
		return nil, fmt.Errorf("failed to sum collected payments: %w", err)
	}

	err = db.conn.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		WHERE p.status = 'overdue' AND c.status = 'active'
	`).Scan(&s.TotalOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum overdue payments: %w", err)
	}

	err = db.conn.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0), COUNT(*)
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		WHERE p.status IN ('pending', 'overdue') AND c.status = 'active'
	`).Scan(&s.OutstandingInvoiced, &s.OutstandingCount)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outstanding payments: %w", err)
	}

	err = db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		WHERE p.status = 'overdue' AND c.status = 'active'
	`).Scan(&s.OverdueCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue payments: %w", err)
	}

	s.TotalOutstanding = s.TotalContractValue - s.TotalCollected
	s.CollectionPct = finance.CollectionPct(s.TotalCollected, s.TotalContractValue)

	return s, nil
}

// GetClientFinancialBreakdown возвращает финансовую разбивку по клиентам,
// отсортированную по стоимости договоров. Платежный статус клиента
// вычисляется в Go (finance.ClassifyClient), SQL отдает только суммы.
func (db *DB) GetClientFinancialBreakdown() ([]*ClientFinanceRow, error) {
	rows, err := db.conn.Query(`
		SELECT
			cl.id,
			cl.name,
			COALESCE(SUM(DISTINCT c.annual_value), 0) AS contract_value,
			COALESCE((
				SELECT SUM(p.amount)
				FROM payments p
				JOIN contracts c2 ON c2.id = p.contract_id
				JOIN buildings b2 ON b2.id = c2.building_id
				WHERE b2.client_id = cl.id AND p.status = 'received' AND c2.status = 'active'
			), 0) AS paid,
			EXISTS (
				SELECT 1
				FROM payments p
				JOIN contracts c2 ON c2.id = p.contract_id
				JOIN buildings b2 ON b2.id = c2.building_id
				WHERE b2.client_id = cl.id AND p.status = 'overdue'
			) AS has_overdue
		FROM clients cl
		LEFT JOIN buildings b ON b.client_id = cl.id
		LEFT JOIN contracts c ON c.building_id = b.id AND c.status = 'active'
		GROUP BY cl.id
		ORDER BY contract_value DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []*ClientFinanceRow
	for rows.Next() {
		r := &ClientFinanceRow{}
		var hasOverdue bool

		if err := rows.Scan(&r.ClientID, &r.ClientName, &r.ContractValue, &r.Paid, &hasOverdue); err != nil {
			return nil, fmt.Errorf("failed to scan financial row: %w", err)
		}

		r.Outstanding = r.ContractValue - r.Paid
		r.Status = finance.ClassifyClient(r.ContractValue, r.Paid, hasOverdue)
		breakdown = append(breakdown, r)
	}

	return breakdown, rows.Err()
}

// GetOutstandingInvoices возвращает неоплаченные платежи по активным договорам
func (db *DB) GetOutstandingInvoices(referenceDate time.Time) ([]*OutstandingInvoice, error) {
	rows, err := db.conn.Query(`
		SELECT cl.name, b.name, c.annual_value, p.amount, p.payment_date, p.status
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		JOIN buildings b ON b.id = c.building_id
		JOIN clients cl ON cl.id = b.client_id
		WHERE p.status IN ('pending', 'overdue') AND c.status = 'active'
		ORDER BY p.payment_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query outstanding invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*OutstandingInvoice
	for rows.Next() {
		inv := &OutstandingInvoice{}
		if err := rows.Scan(&inv.ClientName, &inv.BuildingName, &inv.ContractValue,
			&inv.AmountDue, &inv.DueDate, &inv.Status); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		dueDate, err := parseISODate(inv.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invoice has invalid due date: %w", err)
		}
		inv.DaysOverdue = daysBetweenDates(dueDate, referenceDate)

		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// GetClientFinancialDetail возвращает финансовую сводку клиента
func (db *DB) GetClientFinancialDetail(clientID int) (*ClientFinancialDetail, error) {
	if _, err := db.GetClient(clientID); err != nil {
		return nil, err
	}

	d := &ClientFinancialDetail{}

	err := db.conn.QueryRow(`
		SELECT COALESCE(SUM(c.annual_value), 0)
		FROM contracts c
		JOIN buildings b ON b.id = c.building_id
		WHERE b.client_id = ? AND c.status = 'active'
	`, clientID).Scan(&d.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum client contracts: %w", err)
	}

	err = db.conn.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN contracts c ON c.id = p.contract_id
		JOIN buildings b ON b.id = c.building_id
		WHERE b.client_id = ? AND p.status = 'received' AND c.status = 'active'
	`, clientID).Scan(&d.TotalPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum client payments: %w", err)
	}

	d.Outstanding = d.TotalValue - d.TotalPaid
	return d, nil
}

// daysBetweenDates целое число дней между календарными датами
func daysBetweenDates(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
