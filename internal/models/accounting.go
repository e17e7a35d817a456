package models

// Accounting record types.
const (
	RecordIncome  = "income"
	RecordExpense = "expense"
)

type AccountingRecord struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	RecordType  string  `json:"record_type"`
	Category    string  `json:"category,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}
