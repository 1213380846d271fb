package finance

// ClientStatus платежный статус клиента
type ClientStatus string

const (
	// StatusFullyPaid оплачено не меньше стоимости активных договоров
	StatusFullyPaid ClientStatus = "fully_paid"
	// StatusPaymentOverdue по договорам клиента есть просроченные платежи
	StatusPaymentOverdue ClientStatus = "payment_overdue"
	// StatusPartiallyPaid оплачено частично, просрочек нет
	StatusPartiallyPaid ClientStatus = "partially_paid"
)

// Summary сводные финансовые показатели по портфелю активных договоров.
// TotalOutstanding — остаток от стоимости портфеля (contract value - collected).
// OutstandingInvoiced — сумма выставленных pending/overdue платежей.
// Показатели считаются по-разному и могут расходиться (платежи по неактивным
// договорам, частичные суммы), поэтому выдаются оба.
type Summary struct {
	TotalContractValue  float64 `json:"total_contract_value"`
	TotalCollected      float64 `json:"total_collected"`
	TotalOutstanding    float64 `json:"total_outstanding"`
	OutstandingInvoiced float64 `json:"outstanding_invoiced"`
	TotalOverdue        float64 `json:"total_overdue"`
	OutstandingCount    int     `json:"outstanding_count"`
	OverdueCount        int     `json:"overdue_count"`
	CollectionPct       float64 `json:"collection_pct"`
}

// ClassifyClient определяет платежный статус клиента.
// Порядок проверок фиксирован: полная оплата побеждает, затем просрочка,
// затем частичная оплата.
func ClassifyClient(contractValue, paid float64, hasOverduePayment bool) ClientStatus {
	switch {
	case paid >= contractValue:
		return StatusFullyPaid
	case hasOverduePayment:
		return StatusPaymentOverdue
	default:
		return StatusPartiallyPaid
	}
}

// CollectionPct процент собранных средств от стоимости портфеля.
// Пустой портфель дает 0, а не ошибку деления.
func CollectionPct(collected, contractValue float64) float64 {
	if contractValue <= 0 {
		return 0
	}
	return collected / contractValue * 100
}
