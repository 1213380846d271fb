package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ClientSummary сводка по клиенту для реестра:
// здания, оборудование, стоимость договоров и число просроченных объектов
type ClientSummary struct {
	ClientID       int     `json:"client_id"`
	Name           string  `json:"name"`
	ShortName      string  `json:"short_name"`
	BuildingCount  int     `json:"building_count"`
	EquipmentCount int     `json:"equipment_count"`
	AnnualValue    float64 `json:"annual_value"`
	OverdueCount   int     `json:"overdue_count"`
}

// CreateClient создает нового клиента
func (db *DB) CreateClient(name, shortName, contactPerson, phone, email string) (*Client, error) {
	if err := validateRequired("name", name); err != nil {
		return nil, err
	}
	if err := validateRequired("short_name", shortName); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec(`
		INSERT INTO clients (name, short_name, contact_person, phone, email)
		VALUES (?, ?, ?, ?, ?)
	`, name, shortName, contactPerson, phone, email)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get client ID: %w", err)
	}

	return db.GetClient(int(id))
}

// GetClient получает клиента по ID
func (db *DB) GetClient(id int) (*Client, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, short_name, contact_person, phone, email
		FROM clients WHERE id = ?
	`, id)

	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// GetAllClients возвращает всех клиентов, отсортированных по имени
func (db *DB) GetAllClients() ([]*Client, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, short_name, contact_person, phone, email
		FROM clients ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// scanTarget общий интерфейс для *sql.Row и *sql.Rows
type scanTarget interface {
	Scan(dest ...interface{}) error
}

func scanClient(row scanTarget) (*Client, error) {
	client := &Client{}

	var contactPerson, phone, email sql.NullString

	err := row.Scan(&client.ID, &client.Name, &client.ShortName, &contactPerson, &phone, &email)
	if err != nil {
		return nil, err
	}

	client.ContactPerson = nullString(contactPerson)
	client.Phone = nullString(phone)
	client.Email = nullString(email)

	return client, nil
}

// GetClientSummaries возвращает сводку по всем клиентам, отсортированную
// по стоимости договоров. Число просроченных объектов досчитывается
// классификатором через ClientOverdueCounts, а не дублируется в SQL.
func (db *DB) GetClientSummaries(overdueCounts map[int]int) ([]*ClientSummary, error) {
	rows, err := db.conn.Query(`
		SELECT
			cl.id,
			cl.name,
			cl.short_name,
			COUNT(DISTINCT b.id) AS building_count,
			COUNT(DISTINCT e.id) AS equipment_count,
			COALESCE(SUM(DISTINCT c.annual_value), 0) AS annual_value
		FROM clients cl
		LEFT JOIN buildings b ON b.client_id = cl.id
		LEFT JOIN contracts c ON c.building_id = b.id AND c.status = 'active'
		LEFT JOIN equipment e ON e.building_id = b.id
		GROUP BY cl.id
		ORDER BY annual_value DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get client summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*ClientSummary
	for rows.Next() {
		s := &ClientSummary{}
		if err := rows.Scan(&s.ClientID, &s.Name, &s.ShortName,
			&s.BuildingCount, &s.EquipmentCount, &s.AnnualValue); err != nil {
			return nil, fmt.Errorf("failed to scan client summary: %w", err)
		}
		s.OverdueCount = overdueCounts[s.ClientID]
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
