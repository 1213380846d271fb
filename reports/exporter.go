package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"ttsguard/database"
	"ttsguard/internal/finance"
)

// Exporter готовит отчеты по соответствию графику и финансам
type Exporter struct {
	db *database.DB
}

// NewExporter создает экспортер отчетов
func NewExporter(db *database.DB) *Exporter {
	return &Exporter{db: db}
}

var complianceHeaders = []string{
	"Building", "Area", "Client", "Contract Value (AED)", "Visits/Year",
	"Equipment", "Last Inspection", "Days Since Last", "Days Until Next", "Status",
}

// ComplianceExcel формирует Excel-отчет по статусам зданий
func (e *Exporter) ComplianceExcel(entries []*database.ComplianceEntry, referenceDate time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Compliance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range complianceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(complianceHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for i, entry := range entries {
		row := i + 2
		lastInspection := "never"
		if entry.LastInspectionDate != nil {
			lastInspection = *entry.LastInspectionDate
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.BuildingName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.Area)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.ClientName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), entry.AnnualValue)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), entry.VisitsPerYear)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), entry.EquipmentCount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), lastInspection)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), entry.DaysSinceLast)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), entry.DaysUntilNext)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), string(entry.Status))
	}

	for i := range complianceHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", len(entries)+3),
		fmt.Sprintf("Generated for %s", referenceDate.Format("2006-01-02")))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FinanceExcel формирует Excel-отчет: сводка портфеля и разбивка по клиентам
func (e *Exporter) FinanceExcel(summary *finance.Summary, breakdown []*database.ClientFinanceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Finance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summaryRows := [][2]interface{}{
		{"Total Contract Value (AED)", summary.TotalContractValue},
		{"Total Collected (AED)", summary.TotalCollected},
		{"Outstanding (AED)", summary.TotalOutstanding},
		{"Invoiced Outstanding (AED)", summary.OutstandingInvoiced},
		{"Overdue (AED)", summary.TotalOverdue},
		{"Collection %", summary.CollectionPct},
	}
	for i, row := range summaryRows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+1), row[1])
	}

	headerRow := len(summaryRows) + 2
	headers := []string{"Client", "Contract Value (AED)", "Paid (AED)", "Outstanding (AED)", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}
	startCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	endCell, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	f.SetCellStyle(sheetName, startCell, endCell, headerStyle)

	for i, row := range breakdown {
		r := headerRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.ClientName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), row.ContractValue)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), row.Paid)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), row.Outstanding)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", r), string(row.Status))
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ComplianceCSV формирует CSV-отчет по статусам зданий
func (e *Exporter) ComplianceCSV(entries []*database.ComplianceEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(complianceHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range entries {
		lastInspection := "never"
		if entry.LastInspectionDate != nil {
			lastInspection = *entry.LastInspectionDate
		}

		record := []string{
			entry.BuildingName,
			entry.Area,
			entry.ClientName,
			fmt.Sprintf("%.2f", entry.AnnualValue),
			fmt.Sprintf("%d", entry.VisitsPerYear),
			fmt.Sprintf("%d", entry.EquipmentCount),
			lastInspection,
			fmt.Sprintf("%d", entry.DaysSinceLast),
			fmt.Sprintf("%d", entry.DaysUntilNext),
			string(entry.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ComplianceJSON формирует JSON-отчет по статусам зданий
func (e *Exporter) ComplianceJSON(entries []*database.ComplianceEntry, referenceDate time.Time) ([]byte, error) {
	payload := map[string]interface{}{
		"reference_date": referenceDate.Format("2006-01-02"),
		"total":          len(entries),
		"buildings":      entries,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}
