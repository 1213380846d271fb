package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ttsguard/database"
	"ttsguard/internal/compliance"
	"ttsguard/internal/finance"
)

func sampleEntries() []*database.ComplianceEntry {
	lastDate := "2026-05-20"
	return []*database.ComplianceEntry{
		{
			BuildingID:         1,
			BuildingName:       "Marina Tower A",
			Area:               "Dubai Marina",
			ClientName:         "Farnek Services LLC",
			AnnualValue:        30000,
			VisitsPerYear:      4,
			EquipmentCount:     12,
			LastInspectionDate: &lastDate,
			DaysSinceLast:      100,
			DaysUntilNext:      -9,
			DaysOverdue:        9,
			Status:             compliance.StatusOverdue,
		},
		{
			BuildingID:     2,
			BuildingName:   "Plaza One",
			Area:           "Business Bay",
			ClientName:     "Khidmah LLC",
			AnnualValue:    18000,
			VisitsPerYear:  2,
			EquipmentCount: 5,
			DaysSinceLast:  999,
			DaysUntilNext:  -999,
			Status:         compliance.StatusOverdue,
		},
	}
}

func TestComplianceExcel(t *testing.T) {
	exporter := NewExporter(nil)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	data, err := exporter.ComplianceExcel(sampleEntries(), refDate)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	building, err := f.GetCellValue("Compliance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Marina Tower A", building)

	// Здание без единого обслуживания помечено как never
	lastInspection, err := f.GetCellValue("Compliance", "G3")
	require.NoError(t, err)
	assert.Equal(t, "never", lastInspection)

	footer, err := f.GetCellValue("Compliance", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Generated for 2026-08-28", footer)
}

func TestComplianceCSV(t *testing.T) {
	exporter := NewExporter(nil)

	data, err := exporter.ComplianceCSV(sampleEntries())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, complianceHeaders, records[0])
	assert.Equal(t, "Marina Tower A", records[1][0])
	assert.Equal(t, "overdue", records[1][9])
	assert.Equal(t, "never", records[2][6])
}

func TestComplianceJSON(t *testing.T) {
	exporter := NewExporter(nil)
	refDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	data, err := exporter.ComplianceJSON(sampleEntries(), refDate)
	require.NoError(t, err)

	var payload struct {
		ReferenceDate string                      `json:"reference_date"`
		Total         int                         `json:"total"`
		Buildings     []*database.ComplianceEntry `json:"buildings"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "2026-08-28", payload.ReferenceDate)
	assert.Equal(t, 2, payload.Total)
	require.Len(t, payload.Buildings, 2)
	assert.Equal(t, compliance.StatusOverdue, payload.Buildings[0].Status)
}

func TestFinanceExcel(t *testing.T) {
	exporter := NewExporter(nil)

	summary := &finance.Summary{
		TotalContractValue:  60000,
		TotalCollected:      10000,
		TotalOutstanding:    50000,
		OutstandingInvoiced: 20000,
		TotalOverdue:        10000,
		CollectionPct:       16.67,
	}
	breakdown := []*database.ClientFinanceRow{
		{ClientName: "Farnek Services LLC", ContractValue: 40000, Paid: 10000, Outstanding: 30000, Status: finance.StatusPartiallyPaid},
		{ClientName: "Khidmah LLC", ContractValue: 20000, Paid: 0, Outstanding: 20000, Status: finance.StatusPaymentOverdue},
	}

	data, err := exporter.FinanceExcel(summary, breakdown)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Finance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Total Contract Value (AED)", label)

	client, err := f.GetCellValue("Finance", "A9")
	require.NoError(t, err)
	assert.Equal(t, "Farnek Services LLC", client)

	status, err := f.GetCellValue("Finance", "E10")
	require.NoError(t, err)
	assert.Equal(t, string(finance.StatusPaymentOverdue), status)
}
