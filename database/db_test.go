package database

import (
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create DB: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertTestClient(t *testing.T, db *DB, name string) int {
	t.Helper()

	client, err := db.CreateClient(name, "TST", "", "", "")
	if err != nil {
		t.Fatalf("failed to insert client: %v", err)
	}

	return client.ID
}

func insertTestBuilding(t *testing.T, db *DB, clientID int, name string) int {
	t.Helper()

	building, err := db.CreateBuilding(clientID, name, "Test Area")
	if err != nil {
		t.Fatalf("failed to insert building: %v", err)
	}

	return building.ID
}

// insertTestContract создает активный договор на год от refDate назад на 30 дней
func insertTestContract(t *testing.T, db *DB, buildingID, visitsPerYear int, annualValue float64, refDate time.Time) int {
	t.Helper()

	start := refDate.AddDate(0, 0, -30).Format(isoDate)
	end := refDate.AddDate(0, 0, 335).Format(isoDate)

	contract, err := db.CreateContract(buildingID, start, end, visitsPerYear, annualValue, "annual")
	if err != nil {
		t.Fatalf("failed to insert contract: %v", err)
	}

	return contract.ID
}

func insertTestInspection(t *testing.T, db *DB, buildingID int, date time.Time) int {
	t.Helper()

	inspection, err := db.InsertInspection(buildingID, date.Format(isoDate), "Test Technician", 10, 10, 0, "")
	if err != nil {
		t.Fatalf("failed to insert inspection: %v", err)
	}

	return inspection.ID
}

func insertTestPayment(t *testing.T, db *DB, contractID int, date time.Time, amount float64, status string) int {
	t.Helper()

	payment, err := db.InsertPayment(contractID, date.Format(isoDate), amount, "bank_transfer", "", status, "")
	if err != nil {
		t.Fatalf("failed to insert payment: %v", err)
	}

	return payment.ID
}

func TestDB_SchemaIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Повторное применение схемы не должно падать на существующих таблицах.
	if err := db.createSchema(); err != nil {
		t.Fatalf("second createSchema failed: %v", err)
	}
}

func TestDB_HasData(t *testing.T) {
	db := newTestDB(t)

	hasData, err := db.HasData()
	if err != nil {
		t.Fatalf("HasData returned error: %v", err)
	}
	if hasData {
		t.Fatal("expected empty database")
	}

	insertTestClient(t, db, "Test Client")

	hasData, err = db.HasData()
	if err != nil {
		t.Fatalf("HasData returned error: %v", err)
	}
	if !hasData {
		t.Fatal("expected database with data")
	}
}

func TestDB_Reset(t *testing.T) {
	db := newTestDB(t)

	clientID := insertTestClient(t, db, "Test Client")
	insertTestBuilding(t, db, clientID, "Test Building")

	if err := db.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	hasData, err := db.HasData()
	if err != nil {
		t.Fatalf("HasData returned error: %v", err)
	}
	if hasData {
		t.Fatal("expected empty database after reset")
	}
}
