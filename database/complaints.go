package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ComplaintWithBuilding обращение с данными клиента и здания
type ComplaintWithBuilding struct {
	Complaint
	ClientName   string `json:"client_name"`
	ShortName    string `json:"short_name"`
	BuildingName string `json:"building_name"`
}

// ticketInsertAttempts число попыток вставки при гонке за номер тикета
const ticketInsertAttempts = 5

// InsertComplaint регистрирует обращение и присваивает номер тикета
// TTS-<год>-<порядковый номер с ведущими нулями до 4 знаков>.
// Номер вычисляется как счетчик тикетов года + 1; от одновременной выдачи
// одинаковых номеров защищает UNIQUE ограничение с повторной попыткой.
func (db *DB) InsertComplaint(clientID, buildingID int, message, priority,
	assignedTechnician string, inspectionID *int) (*Complaint, error) {

	if err := validateRequired("message", message); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = "medium"
	}
	if err := validateEnum("priority", priority, allowedComplaintPriorities); err != nil {
		return nil, err
	}
	if _, err := db.GetClient(clientID); err != nil {
		return nil, err
	}
	if _, err := db.GetBuilding(buildingID); err != nil {
		return nil, err
	}
	if inspectionID != nil {
		if _, err := db.GetInspection(*inspectionID); err != nil {
			return nil, err
		}
	}

	status := "open"
	if assignedTechnician != "" {
		status = "assigned"
	}

	year := time.Now().Year()

	var lastErr error
	for attempt := 0; attempt < ticketInsertAttempts; attempt++ {
		ticketNumber, err := db.nextTicketNumber(year)
		if err != nil {
			return nil, err
		}

		result, err := db.conn.Exec(`
			INSERT INTO complaints (ticket_number, client_id, building_id, message, priority, status, assigned_technician, inspection_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, ticketNumber, clientID, buildingID, message, priority, status, nullable(assignedTechnician), inspectionIDValue(inspectionID))
		if err != nil {
			// Конкурирующая вставка успела занять номер — пробуем следующий.
			if isUniqueConstraintErr(err) {
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("failed to insert complaint: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get complaint ID: %w", err)
		}

		return db.GetComplaint(int(id))
	}

	return nil, fmt.Errorf("failed to allocate ticket number after %d attempts: %w", ticketInsertAttempts, lastErr)
}

// nextTicketNumber следующий свободный номер тикета в рамках года
func (db *DB) nextTicketNumber(year int) (string, error) {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM complaints WHERE ticket_number LIKE ?
	`, fmt.Sprintf("TTS-%d-%%", year)).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("failed to count tickets: %w", err)
	}

	return fmt.Sprintf("TTS-%d-%04d", year, count+1), nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func inspectionIDValue(id *int) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// GetComplaint получает обращение по ID
func (db *DB) GetComplaint(id int) (*Complaint, error) {
	c := &Complaint{}
	var (
		assignedTechnician sql.NullString
		inspectionID       sql.NullInt64
	)

	err := db.conn.QueryRow(`
		SELECT id, ticket_number, client_id, building_id, message, priority, status, assigned_technician, inspection_id, created_at
		FROM complaints WHERE id = ?
	`, id).Scan(&c.ID, &c.TicketNumber, &c.ClientID, &c.BuildingID, &c.Message,
		&c.Priority, &c.Status, &assignedTechnician, &inspectionID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	c.AssignedTechnician = nullString(assignedTechnician)
	c.InspectionID = nullIntPtr(inspectionID)
	return c, nil
}

// GetComplaintByTicket получает обращение по номеру тикета
func (db *DB) GetComplaintByTicket(ticketNumber string) (*Complaint, error) {
	var id int
	err := db.conn.QueryRow(`SELECT id FROM complaints WHERE ticket_number = ?`, ticketNumber).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: ticket %s", ErrNotFound, ticketNumber)
		}
		return nil, fmt.Errorf("failed to get complaint by ticket: %w", err)
	}
	return db.GetComplaint(id)
}

// GetAllComplaints возвращает все обращения, новые первыми
func (db *DB) GetAllComplaints() ([]*ComplaintWithBuilding, error) {
	return db.queryComplaints(`ORDER BY comp.created_at DESC`)
}

// GetRecentComplaints возвращает последние обращения
func (db *DB) GetRecentComplaints(limit int) ([]*ComplaintWithBuilding, error) {
	return db.queryComplaints(`ORDER BY comp.created_at DESC LIMIT ?`, limit)
}

// GetComplaintsByMonth возвращает обращения за указанный месяц
func (db *DB) GetComplaintsByMonth(year int, month time.Month) ([]*ComplaintWithBuilding, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	return db.queryComplaints(`
		WHERE comp.created_at >= ? AND comp.created_at < ?
		ORDER BY comp.created_at DESC
	`, monthStart.Format(isoDate), monthEnd.Format(isoDate))
}

func (db *DB) queryComplaints(clause string, args ...interface{}) ([]*ComplaintWithBuilding, error) {
	query := `
		SELECT comp.id, comp.ticket_number, comp.client_id, comp.building_id, comp.message,
			comp.priority, comp.status, comp.assigned_technician, comp.inspection_id, comp.created_at,
			cl.name, cl.short_name, b.name
		FROM complaints comp
		JOIN clients cl ON cl.id = comp.client_id
		JOIN buildings b ON b.id = comp.building_id
	` + clause

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []*ComplaintWithBuilding
	for rows.Next() {
		c := &ComplaintWithBuilding{}
		var (
			assignedTechnician sql.NullString
			inspectionID       sql.NullInt64
		)

		if err := rows.Scan(&c.ID, &c.TicketNumber, &c.ClientID, &c.BuildingID, &c.Message,
			&c.Priority, &c.Status, &assignedTechnician, &inspectionID, &c.CreatedAt,
			&c.ClientName, &c.ShortName, &c.BuildingName); err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}

		c.AssignedTechnician = nullString(assignedTechnician)
		c.InspectionID = nullIntPtr(inspectionID)
		complaints = append(complaints, c)
	}

	return complaints, rows.Err()
}

// UpdateComplaintStatus меняет статус обращения и при необходимости исполнителя.
// Тикеты двигаются только вперед: open -> assigned -> in_progress -> resolved.
func (db *DB) UpdateComplaintStatus(id int, status, assignedTechnician string) error {
	if err := validateEnum("status", status, allowedComplaintStatuses); err != nil {
		return err
	}

	current, err := db.GetComplaint(id)
	if err != nil {
		return err
	}

	if complaintStatusRank(status) < complaintStatusRank(current.Status) {
		return fmt.Errorf("%w: cannot move ticket %s back from %s to %s",
			ErrValidation, current.TicketNumber, current.Status, status)
	}

	technician := assignedTechnician
	if technician == "" {
		technician = current.AssignedTechnician
	}

	if _, err := db.conn.Exec(`
		UPDATE complaints SET status = ?, assigned_technician = ? WHERE id = ?
	`, status, nullable(technician), id); err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}

	return nil
}

func complaintStatusRank(status string) int {
	switch status {
	case "open":
		return 0
	case "assigned":
		return 1
	case "in_progress":
		return 2
	case "resolved":
		return 3
	default:
		return -1
	}
}
