package services

import (
	"time"

	"ttsguard/database"
	"ttsguard/internal/finance"
	apperrors "ttsguard/server/errors"
)

// FinanceService сервис финансовых сводок и платежей
type FinanceService struct {
	db *database.DB
}

// NewFinanceService создает финансовый сервис
func NewFinanceService(db *database.DB) *FinanceService {
	return &FinanceService{db: db}
}

// RecordPaymentRequest данные платежа
type RecordPaymentRequest struct {
	ContractID      int     `json:"contract_id" binding:"required"`
	PaymentDate     string  `json:"payment_date" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	Method          string  `json:"method"`
	ReferenceNumber string  `json:"reference_number"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes"`
}

// Summary возвращает сводные показатели портфеля
func (s *FinanceService) Summary() (*finance.Summary, error) {
	summary, err := s.db.GetFinancialSummary()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build financial summary", err)
	}
	return summary, nil
}

// Breakdown возвращает финансовую разбивку по клиентам
func (s *FinanceService) Breakdown() ([]*database.ClientFinanceRow, error) {
	rows, err := s.db.GetClientFinancialBreakdown()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build client breakdown", err)
	}
	return rows, nil
}

// Outstanding возвращает неоплаченные счета по активным договорам
func (s *FinanceService) Outstanding(referenceDate time.Time) ([]*database.OutstandingInvoice, error) {
	invoices, err := s.db.GetOutstandingInvoices(referenceDate)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list outstanding invoices", err)
	}
	return invoices, nil
}

// ClientDetail возвращает финансовую сводку клиента
func (s *FinanceService) ClientDetail(clientID int) (*database.ClientFinancialDetail, error) {
	detail, err := s.db.GetClientFinancialDetail(clientID)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get client finances")
	}
	return detail, nil
}

// RecordPayment регистрирует платеж по договору
func (s *FinanceService) RecordPayment(req RecordPaymentRequest) (*database.Payment, error) {
	payment, err := s.db.InsertPayment(req.ContractID, req.PaymentDate, req.Amount,
		req.Method, req.ReferenceNumber, req.Status, req.Notes)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to record payment")
	}
	return payment, nil
}

// Payment возвращает платеж по ID
func (s *FinanceService) Payment(id int) (*database.Payment, error) {
	payment, err := s.db.GetPayment(id)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get payment")
	}
	return payment, nil
}

// PaymentHistoryвозвращает последние платежи
func (s *FinanceService) PaymentHistory(limit int) ([]*database.PaymentHistoryEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	history, err := s.db.GetPaymentHistory(limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list payment history", err)
	}
	return history, nil
}

// MonthlyRevenue возвращает выручку по месяцам
func (s *FinanceService) MonthlyRevenue(referenceDate time.Time, months int) ([]*database.MonthlyRevenue, error) {
	if months < 1 || months > 36 {
		months = 6
	}

	revenue, err := s.db.GetMonthlyRevenue(referenceDate, months)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build monthly revenue", err)
	}
	return revenue, nil
}
