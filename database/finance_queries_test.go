package database

import (
	"testing"

	"ttsguard/internal/finance"
)

func TestDB_GetFinancialSummaryEmptyPortfolio(t *testing.T) {
	db := newTestDB(t)

	summary, err := db.GetFinancialSummary()
	if err != nil {
		t.Fatalf("GetFinancialSummary returned error: %v", err)
	}

	if summary.TotalContractValue != 0 {
		t.Errorf("expected zero portfolio, got %.2f", summary.TotalContractValue)
	}
	// На пустом портфеле процент сбора 0, а не деление на ноль.
	if summary.CollectionPct != 0 {
		t.Errorf("expected 0%% collection on empty portfolio, got %.2f", summary.CollectionPct)
	}
}

func TestDB_GetFinancialSummary(t *testing.T) {
	db := newTestDB(t)

	clientID := insertTestClient(t, db, "Summary Client")
	b1 := insertTestBuilding(t, db, clientID, "Building One")
	b2 := insertTestBuilding(t, db, clientID, "Building Two")
	c1 := insertTestContract(t, db, b1, 4, 40000, testRefDate)
	c2 := insertTestContract(t, db, b2, 4, 20000, testRefDate)

	insertTestPayment(t, db, c1, testRefDate.AddDate(0, 0, -60), 10000, "received")
	insertTestPayment(t, db, c1, testRefDate.AddDate(0, 0, -30), 10000, "pending")
	insertTestPayment(t, db, c2, testRefDate.AddDate(0, 0, -45), 10000, "overdue")

	summary, err := db.GetFinancialSummary()
	if err != nil {
		t.Fatalf("GetFinancialSummary returned error: %v", err)
	}

	if summary.TotalContractValue != 60000 {
		t.Errorf("expected portfolio 60000, got %.2f", summary.TotalContractValue)
	}
	if summary.TotalCollected != 10000 {
		t.Errorf("expected collected 10000, got %.2f", summary.TotalCollected)
	}
	// Остаток от портфеля и сумма выставленных счетов — разные показатели.
	if summary.TotalOutstanding != 50000 {
		t.Errorf("expected outstanding 50000, got %.2f", summary.TotalOutstanding)
	}
	if summary.OutstandingInvoiced != 20000 {
		t.Errorf("expected invoiced outstanding 20000, got %.2f", summary.OutstandingInvoiced)
	}
	if summary.TotalOverdue != 10000 {
		t.Errorf("expected overdue 10000, got %.2f", summary.TotalOverdue)
	}
	if summary.OutstandingCount != 2 {
		t.Errorf("expected 2 outstanding payments, got %d", summary.OutstandingCount)
	}
	if summary.OverdueCount != 1 {
		t.Errorf("expected 1 overdue payment, got %d", summary.OverdueCount)
	}

	wantPct := 10000.0 / 60000.0 * 100
	if diff := summary.CollectionPct - wantPct; diff > 0.01 || diff < -0.01 {
		t.Errorf("expected collection pct %.2f, got %.2f", wantPct, summary.CollectionPct)
	}
}

func TestDB_GetClientFinancialBreakdown(t *testing.T) {
	db := newTestDB(t)

	paidClient := insertTestClient(t, db, "Paid Client")
	pb := insertTestBuilding(t, db, paidClient, "Paid Building")
	pc := insertTestContract(t, db, pb, 4, 10000, testRefDate)
	insertTestPayment(t, db, pc, testRefDate.AddDate(0, 0, -30), 10000, "received")

	overdueClient := insertTestClient(t, db, "Overdue Client")
	ob := insertTestBuilding(t, db, overdueClient, "Overdue Building")
	oc := insertTestContract(t, db, ob, 4, 30000, testRefDate)
	insertTestPayment(t, db, oc, testRefDate.AddDate(0, 0, -30), 5000, "received")
	insertTestPayment(t, db, oc, testRefDate.AddDate(0, 0, -10), 5000, "overdue")

	partialClient := insertTestClient(t, db, "Partial Client")
	prb := insertTestBuilding(t, db, partialClient, "Partial Building")
	prc := insertTestContract(t, db, prb, 4, 20000, testRefDate)
	insertTestPayment(t, db, prc, testRefDate.AddDate(0, 0, -30), 5000, "received")

	rows, err := db.GetClientFinancialBreakdown()
	if err != nil {
		t.Fatalf("GetClientFinancialBreakdown returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Сортировка по стоимости портфеля по убыванию.
	if rows[0].ClientID != overdueClient || rows[1].ClientID != partialClient || rows[2].ClientID != paidClient {
		t.Errorf("unexpected order: %d, %d, %d", rows[0].ClientID, rows[1].ClientID, rows[2].ClientID)
	}

	byClient := map[int]*ClientFinanceRow{}
	for _, r := range rows {
		byClient[r.ClientID] = r
	}

	if got := byClient[paidClient].Status; got != finance.StatusFullyPaid {
		t.Errorf("expected fully_paid, got %q", got)
	}
	if got := byClient[overdueClient].Status; got != finance.StatusPaymentOverdue {
		t.Errorf("expected payment_overdue, got %q", got)
	}
	if got := byClient[partialClient].Status; got != finance.StatusPartiallyPaid {
		t.Errorf("expected partially_paid, got %q", got)
	}

	if got := byClient[overdueClient].Outstanding; got != 25000 {
		t.Errorf("expected outstanding 25000, got %.2f", got)
	}
}

func TestDB_GetOutstandingInvoices(t *testing.T) {
	db := newTestDB(t)

	clientID := insertTestClient(t, db, "Invoice Client")
	buildingID := insertTestBuilding(t, db, clientID, "Invoice Building")
	contractID := insertTestContract(t, db, buildingID, 4, 20000, testRefDate)

	insertTestPayment(t, db, contractID, testRefDate.AddDate(0, 0, -20), 5000, "overdue")
	insertTestPayment(t, db, contractID, testRefDate.AddDate(0, 0, 10), 5000, "pending")
	insertTestPayment(t, db, contractID, testRefDate.AddDate(0, 0, -40), 5000, "received")

	invoices, err := db.GetOutstandingInvoices(testRefDate)
	if err != nil {
		t.Fatalf("GetOutstandingInvoices returned error: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(invoices))
	}

	// Сортировка по дате платежа, знак DaysOverdue отражает прошлое/будущее.
	if invoices[0].Status != "overdue" || invoices[0].DaysOverdue != 20 {
		t.Errorf("expected overdue invoice 20 days past due, got %+v", invoices[0])
	}
	if invoices[1].Status != "pending" || invoices[1].DaysOverdue != -10 {
		t.Errorf("expected pending invoice due in 10 days, got %+v", invoices[1])
	}
}

func TestDB_GetClientFinancialDetail(t *testing.T) {
	db := newTestDB(t)

	clientID := insertTestClient(t, db, "Detail Client")
	buildingID := insertTestBuilding(t, db, clientID, "Detail Building")
	contractID := insertTestContract(t, db, buildingID, 4, 20000, testRefDate)
	insertTestPayment(t, db, contractID, testRefDate.AddDate(0, 0, -30), 5000, "received")

	detail, err := db.GetClientFinancialDetail(clientID)
	if err != nil {
		t.Fatalf("GetClientFinancialDetail returned error: %v", err)
	}

	if detail.TotalValue != 20000 || detail.TotalPaid != 5000 || detail.Outstanding != 15000 {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if _, err := db.GetClientFinancialDetail(9999); err == nil {
		t.Fatal("expected error for unknown client")
	}
}
