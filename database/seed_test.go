package database

import (
	"testing"
	"time"

	"ttsguard/internal/compliance"
)

var seedRefDate = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

func TestDB_SeedDemo(t *testing.T) {
	db := newTestDB(t)

	if err := db.SeedDemo(seedRefDate); err != nil {
		t.Fatalf("SeedDemo returned error: %v", err)
	}

	clients, err := db.GetAllClients()
	if err != nil {
		t.Fatalf("GetAllClients returned error: %v", err)
	}
	if len(clients) != 8 {
		t.Errorf("expected 8 demo clients, got %d", len(clients))
	}

	buildings, err := db.GetAllBuildings()
	if err != nil {
		t.Fatalf("GetAllBuildings returned error: %v", err)
	}
	if len(buildings) != 18 {
		t.Errorf("expected 18 demo buildings, got %d", len(buildings))
	}

	count, err := db.CountActiveContracts()
	if err != nil {
		t.Fatalf("CountActiveContracts returned error: %v", err)
	}
	if count != 18 {
		t.Errorf("expected 18 active contracts, got %d", count)
	}

	// Целевое распределение статусов: 4 просроченных, 5 на подходе.
	entries, err := db.ListCompliance(seedRefDate, compliance.DefaultDueSoonThreshold)
	if err != nil {
		t.Fatalf("ListCompliance returned error: %v", err)
	}
	statusCounts := map[compliance.Status]int{}
	for _, e := range entries {
		statusCounts[e.Status]++
	}
	if statusCounts[compliance.StatusOverdue] != 4 {
		t.Errorf("expected 4 overdue buildings, got %d", statusCounts[compliance.StatusOverdue])
	}
	if statusCounts[compliance.StatusDueSoon] != 5 {
		t.Errorf("expected 5 due-soon buildings, got %d", statusCounts[compliance.StatusDueSoon])
	}

	complaints, err := db.GetAllComplaints()
	if err != nil {
		t.Fatalf("GetAllComplaints returned error: %v", err)
	}
	if len(complaints) != 5 {
		t.Errorf("expected 5 demo complaints, got %d", len(complaints))
	}

	summary, err := db.GetFinancialSummary()
	if err != nil {
		t.Fatalf("GetFinancialSummary returned error: %v", err)
	}
	if summary.TotalContractValue <= 0 {
		t.Errorf("expected positive portfolio value, got %.2f", summary.TotalContractValue)
	}
	if summary.OverdueCount == 0 {
		t.Error("expected overdue payments in demo data")
	}
}

func TestDB_EnsureDemoDataIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.EnsureDemoData(seedRefDate); err != nil {
		t.Fatalf("EnsureDemoData returned error: %v", err)
	}
	// Повторный вызов не досевает данные.
	if err := db.EnsureDemoData(seedRefDate); err != nil {
		t.Fatalf("second EnsureDemoData returned error: %v", err)
	}

	clients, err := db.GetAllClients()
	if err != nil {
		t.Fatalf("GetAllClients returned error: %v", err)
	}
	if len(clients) != 8 {
		t.Errorf("expected 8 clients after repeat seed, got %d", len(clients))
	}
}
