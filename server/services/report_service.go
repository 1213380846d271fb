package services

import (
	"fmt"
	"time"

	"ttsguard/database"
	"ttsguard/reports"
	apperrors "ttsguard/server/errors"
)

// ReportService готовит выгрузки отчетов
type ReportService struct {
	db         *database.DB
	compliance *ComplianceService
	finance    *FinanceService
	exporter   *reports.Exporter
}

// NewReportService создает сервис отчетов
func NewReportService(db *database.DB, compliance *ComplianceService, finance *FinanceService) *ReportService {
	return &ReportService{
		db:         db,
		compliance: compliance,
		finance:    finance,
		exporter:   reports.NewExporter(db),
	}
}

// Report готовая выгрузка: содержимое, имя файла и content type
type Report struct {
	Content     []byte
	Filename    string
	ContentType string
}

const (
	contentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV   = "text/csv"
	contentTypeJSON  = "application/json"
)

// ComplianceReport формирует отчет по статусам зданий в заданном формате
func (s *ReportService) ComplianceReport(referenceDate time.Time, format string) (*Report, error) {
	entries, err := s.compliance.List(referenceDate)
	if err != nil {
		return nil, err
	}

	datePart := referenceDate.Format("2006-01-02")

	switch format {
	case "", "xlsx":
		content, err := s.exporter.ComplianceExcel(entries, referenceDate)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build compliance workbook", err)
		}
		return &Report{
			Content:     content,
			Filename:    fmt.Sprintf("compliance_%s.xlsx", datePart),
			ContentType: contentTypeExcel,
		}, nil

	case "csv":
		content, err := s.exporter.ComplianceCSV(entries)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build compliance CSV", err)
		}
		return &Report{
			Content:     content,
			Filename:    fmt.Sprintf("compliance_%s.csv", datePart),
			ContentType: contentTypeCSV,
		}, nil

	case "json":
		content, err := s.exporter.ComplianceJSON(entries, referenceDate)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build compliance JSON", err)
		}
		return &Report{
			Content:     content,
			Filename:    fmt.Sprintf("compliance_%s.json", datePart),
			ContentType: contentTypeJSON,
		}, nil

	default:
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unsupported report format %q, expected xlsx, csv or json", format), nil)
	}
}

// FinanceReport формирует финансовый Excel-отчет
func (s *ReportService) FinanceReport() (*Report, error) {
	summary, err := s.finance.Summary()
	if err != nil {
		return nil, err
	}
	breakdown, err := s.finance.Breakdown()
	if err != nil {
		return nil, err
	}

	content, err := s.exporter.FinanceExcel(summary, breakdown)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build finance workbook", err)
	}

	return &Report{
		Content:     content,
		Filename:    fmt.Sprintf("finance_%s.xlsx", time.Now().Format("2006-01-02")),
		ContentType: contentTypeExcel,
	}, nil
}
