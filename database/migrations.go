package database

import (
	"fmt"
	"log"
)

// schemaStatements DDL всех таблиц реестра.
// Все выражения идемпотентны, повторный запуск безопасен.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		short_name TEXT NOT NULL,
		contact_person TEXT,
		phone TEXT,
		email TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS buildings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		area TEXT,
		FOREIGN KEY (client_id) REFERENCES clients(id)
	)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		building_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		visits_per_year INTEGER DEFAULT 4,
		annual_value REAL NOT NULL,
		payment_terms TEXT DEFAULT 'quarterly',
		status TEXT DEFAULT 'active',
		FOREIGN KEY (building_id) REFERENCES buildings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		building_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		status TEXT DEFAULT 'OK',
		FOREIGN KEY (building_id) REFERENCES buildings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS inspections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		building_id INTEGER NOT NULL,
		inspection_date TEXT NOT NULL,
		technician TEXT NOT NULL,
		items_checked INTEGER DEFAULT 0,
		items_passed INTEGER DEFAULT 0,
		items_failed INTEGER DEFAULT 0,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (building_id) REFERENCES buildings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticket_number TEXT NOT NULL UNIQUE,
		client_id INTEGER NOT NULL,
		building_id INTEGER NOT NULL,
		message TEXT NOT NULL,
		priority TEXT DEFAULT 'medium',
		status TEXT DEFAULT 'open',
		assigned_technician TEXT,
		inspection_id INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (client_id) REFERENCES clients(id),
		FOREIGN KEY (building_id) REFERENCES buildings(id),
		FOREIGN KEY (inspection_id) REFERENCES inspections(id)
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_inspections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		building_id INTEGER NOT NULL,
		scheduled_date TEXT NOT NULL,
		assigned_technician TEXT NOT NULL,
		status TEXT DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (building_id) REFERENCES buildings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_id INTEGER NOT NULL,
		payment_date TEXT NOT NULL,
		amount REAL NOT NULL,
		method TEXT DEFAULT 'bank_transfer',
		reference_number TEXT,
		status TEXT DEFAULT 'received',
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (contract_id) REFERENCES contracts(id)
	)`,
}

// schemaIndexes индексы под основные пути чтения:
// классификация (активный договор + последнее обслуживание + назначенный выезд)
// и финансовые агрегаты (платежи по договору)
var schemaIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_buildings_client_id ON buildings(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_building_status ON contracts(building_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_building_id ON equipment(building_id)`,
	`CREATE INDEX IF NOT EXISTS idx_inspections_building_date ON inspections(building_id, inspection_date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_building_status ON scheduled_inspections(building_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_contract_status ON payments(contract_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(payment_date)`,
}

// createSchema создает все таблицы и индексы, если они еще не существуют
func (db *DB) createSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, stmt := range schemaIndexes {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Reset удаляет все таблицы и создает схему заново.
// Порядок удаления учитывает внешние ключи.
func (db *DB) Reset() error {
	tables := []string{
		"payments", "scheduled_inspections", "complaints",
		"inspections", "equipment", "contracts", "buildings", "clients",
	}

	for _, table := range tables {
		if _, err := db.conn.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("Database reset: all tables dropped")

	return db.createSchema()
}

// HasData проверяет, заполнена ли база (используется автозасевом демо-данных)
func (db *DB) HasData() (bool, error) {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count clients: %w", err)
	}
	return count > 0, nil
}
