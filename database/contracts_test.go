package database

import (
	"errors"
	"testing"
)

func TestDB_CreateContractDeactivatesPrevious(t *testing.T) {
	db := newTestDB(t)
	clientID := insertTestClient(t, db, "Renewal Client")
	buildingID := insertTestBuilding(t, db, clientID, "Renewal Building")

	first, err := db.CreateContract(buildingID, "2025-01-01", "2025-12-31", 4, 20000, "quarterly")
	if err != nil {
		t.Fatalf("CreateContract returned error: %v", err)
	}

	second, err := db.CreateContract(buildingID, "2026-01-01", "2026-12-31", 4, 22000, "quarterly")
	if err != nil {
		t.Fatalf("CreateContract returned error: %v", err)
	}

	// У здания ровно один активный договор — новый.
	active, err := db.GetContractByBuilding(buildingID)
	if err != nil {
		t.Fatalf("GetContractByBuilding returned error: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("expected active contract %d, got %d", second.ID, active.ID)
	}

	old, err := db.GetContract(first.ID)
	if err != nil {
		t.Fatalf("GetContract returned error: %v", err)
	}
	if old.Status != "inactive" {
		t.Errorf("expected old contract deactivated, got %q", old.Status)
	}

	count, err := db.CountActiveContracts()
	if err != nil {
		t.Fatalf("CountActiveContracts returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 active contract, got %d", count)
	}
}

func TestDB_CreateContractValidation(t *testing.T) {
	db := newTestDB(t)
	clientID := insertTestClient(t, db, "Validation Client")
	buildingID := insertTestBuilding(t, db, clientID, "Validation Building")

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "zero visits per year",
			run: func() error {
				_, err := db.CreateContract(buildingID, "2026-01-01", "2026-12-31", 0, 20000, "annual")
				return err
			},
		},
		{
			name: "zero annual value",
			run: func() error {
				_, err := db.CreateContract(buildingID, "2026-01-01", "2026-12-31", 4, 0, "annual")
				return err
			},
		},
		{
			name: "end before start",
			run: func() error {
				_, err := db.CreateContract(buildingID, "2026-12-31", "2026-01-01", 4, 20000, "annual")
				return err
			},
		},
		{
			name: "bad date format",
			run: func() error {
				_, err := db.CreateContract(buildingID, "01/01/2026", "2026-12-31", 4, 20000, "annual")
				return err
			},
		},
		{
			name: "unknown payment terms",
			run: func() error {
				_, err := db.CreateContract(buildingID, "2026-01-01", "2026-12-31", 4, 20000, "monthly")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := db.CreateContract(9999, "2026-01-01", "2026-12-31", 4, 20000, "annual"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found for unknown building, got %v", err)
	}
}

func TestDB_GetContractByBuildingWithoutActive(t *testing.T) {
	db := newTestDB(t)
	clientID := insertTestClient(t, db, "Bare Client")
	buildingID := insertTestBuilding(t, db, clientID, "Bare Building")

	if _, err := db.GetContractByBuilding(buildingID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found without active contract, got %v", err)
	}
}
