package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ttsguard/database"
	"ttsguard/server/services"
)

// setupTestRouter поднимает роутер поверх чистой базы в памяти
func setupTestRouter(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	router := gin.New()
	RegisterRoutes(router, services.NewRegistry(db, 14))
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestClientLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/clients", map[string]any{
		"name":       "Farnek Services LLC",
		"short_name": "Farnek",
		"email":      "fm@farnek.example",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	client := decodeJSON[database.Client](t, w)
	if client.ID == 0 {
		t.Error("expected client ID to be assigned")
	}

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/clients/%d", client.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	got := decodeJSON[database.Client](t, w)
	if got.ShortName != "Farnek" {
		t.Errorf("expected short name 'Farnek', got %q", got.ShortName)
	}

	t.Run("missing required field", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/clients", map[string]any{"name": "No Short Name"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/clients/9999", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/clients/abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

// createTestPortfolio создает клиента, здание и активный договор через API
func createTestPortfolio(t *testing.T, router *gin.Engine, refDate time.Time) (clientID, buildingID, contractID int) {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/clients", map[string]any{
		"name": "Khidmah LLC", "short_name": "Khidmah",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create client: %d %s", w.Code, w.Body.String())
	}
	client := decodeJSON[database.Client](t, w)

	w = doJSON(t, router, "POST", "/api/buildings", map[string]any{
		"client_id": client.ID, "name": "Marina Tower A", "area": "Dubai Marina",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create building: %d %s", w.Code, w.Body.String())
	}
	building := decodeJSON[database.Building](t, w)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/buildings/%d/contracts", building.ID), map[string]any{
		"start_date":      refDate.AddDate(0, 0, -30).Format("2006-01-02"),
		"end_date":        refDate.AddDate(0, 11, 0).Format("2006-01-02"),
		"visits_per_year": 4,
		"annual_value":    30000.0,
		"payment_terms":   "quarterly",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create contract: %d %s", w.Code, w.Body.String())
	}
	contract := decodeJSON[database.Contract](t, w)

	return client.ID, building.ID, contract.ID
}

func TestInspectionAndCompliance(t *testing.T) {
	router, _ := setupTestRouter(t)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	_, buildingID, _ := createTestPortfolio(t, router, refDate)

	// Квартальный цикл: проверка 100 дней назад дает просрочку в 9 дней
	w := doJSON(t, router, "POST", "/api/inspections", map[string]any{
		"building_id":     buildingID,
		"inspection_date": refDate.AddDate(0, 0, -100).Format("2006-01-02"),
		"technician":      "Ramesh Kumar",
		"items_checked":   12,
		"items_passed":    11,
		"items_failed":    1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to record inspection: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/compliance/overdue?date="+refDate.Format("2006-01-02"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	overdue := decodeJSON[[]map[string]any](t, w)
	if len(overdue) != 1 {
		t.Fatalf("expected 1 overdue building, got %d", len(overdue))
	}
	if days := overdue[0]["days_overdue"].(float64); days != 9 {
		t.Errorf("expected 9 days overdue, got %v", days)
	}

	t.Run("scheduling suppresses overdue", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/inspections/scheduled", map[string]any{
			"building_id":         buildingID,
			"scheduled_date":      refDate.AddDate(0, 0, 3).Format("2006-01-02"),
			"assigned_technician": "Ramesh Kumar",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to schedule inspection: %d %s", w.Code, w.Body.String())
		}

		w = doJSON(t, router, "GET", "/api/compliance/overdue?date="+refDate.Format("2006-01-02"), nil)
		overdue := decodeJSON[[]map[string]any](t, w)
		if len(overdue) != 0 {
			t.Errorf("expected no overdue buildings after scheduling, got %d", len(overdue))
		}
	})

	t.Run("duplicate pending schedule rejected", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/inspections/scheduled", map[string]any{
			"building_id":         buildingID,
			"scheduled_date":      refDate.AddDate(0, 0, 5).Format("2006-01-02"),
			"assigned_technician": "Ramesh Kumar",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", w.Code)
		}
	})

	t.Run("recording closes pending schedule", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/inspections", map[string]any{
			"building_id":     buildingID,
			"inspection_date": refDate.Format("2006-01-02"),
			"technician":      "Ahmed Hassan",
			"items_checked":   12,
			"items_passed":    12,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to record inspection: %d %s", w.Code, w.Body.String())
		}

		w = doJSON(t, router, "GET", "/api/compliance?date="+refDate.Format("2006-01-02"), nil)
		statuses := decodeJSON[[]map[string]any](t, w)
		if len(statuses) != 1 {
			t.Fatalf("expected 1 building, got %d", len(statuses))
		}
		if status := statuses[0]["status"].(string); status != "on_track" {
			t.Errorf("expected status on_track after fresh inspection, got %q", status)
		}
	})

	t.Run("invalid date parameter", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/compliance?date=28-08-2026", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestComplaintEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	clientID, buildingID, _ := createTestPortfolio(t, router, refDate)

	w := doJSON(t, router, "POST", "/api/complaints", map[string]any{
		"client_id":   clientID,
		"building_id": buildingID,
		"message":     "Smoke detector on floor 12 keeps beeping",
		"priority":    "high",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create complaint: %d %s", w.Code, w.Body.String())
	}
	complaint := decodeJSON[database.Complaint](t, w)

	wantTicket := fmt.Sprintf("TTS-%d-0001", time.Now().Year())
	if complaint.TicketNumber != wantTicket {
		t.Errorf("expected ticket %q, got %q", wantTicket, complaint.TicketNumber)
	}

	w = doJSON(t, router, "GET", "/api/complaints/ticket/"+complaint.TicketNumber, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/api/complaints/%d/status", complaint.ID), map[string]any{
		"status":              "assigned",
		"assigned_technician": "Ramesh Kumar",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("failed to update complaint: %d %s", w.Code, w.Body.String())
	}
	updated := decodeJSON[database.Complaint](t, w)
	if updated.Status != "assigned" {
		t.Errorf("expected status assigned, got %q", updated.Status)
	}

	t.Run("backward transition rejected", func(t *testing.T) {
		w := doJSON(t, router, "PATCH", fmt.Sprintf("/api/complaints/%d/status", complaint.ID), map[string]any{
			"status": "open",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("search matches stemmed terms", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/complaints?q=detectors+beep", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		found := decodeJSON[[]database.Complaint](t, w)
		if len(found) != 1 {
			t.Errorf("expected 1 search hit, got %d", len(found))
		}
	})
}

func TestFinanceEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	_, _, contractID := createTestPortfolio(t, router, refDate)

	w := doJSON(t, router, "POST", "/api/finance/payments", map[string]any{
		"contract_id":  contractID,
		"payment_date": refDate.AddDate(0, 0, -10).Format("2006-01-02"),
		"amount":       7500.0,
		"method":       "cheque",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to record payment: %d %s", w.Code, w.Body.String())
	}
	payment := decodeJSON[database.Payment](t, w)
	if payment.Status != "received" {
		t.Errorf("expected default status received, got %q", payment.Status)
	}

	w = doJSON(t, router, "GET", "/api/finance/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	summary := decodeJSON[map[string]any](t, w)
	if collected := summary["total_collected"].(float64); collected != 7500 {
		t.Errorf("expected total collected 7500, got %v", collected)
	}

	t.Run("payment for unknown contract", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/finance/payments", map[string]any{
			"contract_id":  9999,
			"payment_date": refDate.Format("2006-01-02"),
			"amount":       100.0,
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})

	t.Run("payment history", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/finance/payments?limit=10", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		history := decodeJSON[[]map[string]any](t, w)
		if len(history) != 1 {
			t.Errorf("expected 1 payment in history, got %d", len(history))
		}
	})
}

func TestDashboardEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	if err := db.SeedDemo(refDate); err != nil {
		t.Fatalf("failed to seed demo data: %v", err)
	}

	w := doJSON(t, router, "GET", "/api/dashboard?date="+refDate.Format("2006-01-02"), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	dashboard := decodeJSON[map[string]any](t, w)
	stats, ok := dashboard["stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected stats object in dashboard response: %s", w.Body.String())
	}
	if total := stats["total_buildings"].(float64); total != 18 {
		t.Errorf("expected 18 buildings, got %v", total)
	}
	if overdue := stats["overdue_buildings"].(float64); overdue == 0 {
		t.Error("expected overdue buildings in demo dataset")
	}
}

func TestReportEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	if err := db.SeedDemo(refDate); err != nil {
		t.Fatalf("failed to seed demo data: %v", err)
	}

	t.Run("compliance csv", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/reports/compliance?format=csv&date="+refDate.Format("2006-01-02"), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv content type, got %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); cd == "" {
			t.Error("expected Content-Disposition header")
		}
	})

	t.Run("compliance xlsx by default", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/reports/compliance", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if w.Body.Len() == 0 {
			t.Error("expected non-empty xlsx body")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/reports/compliance?format=pdf", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("finance xlsx", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/reports/finance", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if w.Body.Len() == 0 {
			t.Error("expected non-empty xlsx body")
		}
	})
}
