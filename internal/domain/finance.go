package domain

type EntryType string

const (
	EntryTypeFlight  EntryType = "flight"
	EntryTypeBooking EntryType = "booking"
	EntryTypeOther   EntryType = "other"
)

type EntryCategory string

const (
	CategoryIncome  EntryCategory = "income"
	CategoryExpense EntryCategory = "expense"
)

// FinanceEntry is one income or expense line. Entries are append-only:
// deletion removes a line, but amount and category are never edited once
// written by the refund workflow.
type FinanceEntry struct {
	ID          string        `json:"id"`
	Type        EntryType     `json:"type"`
	RefID       string        `json:"refId,omitempty"`
	Description string        `json:"description"`
	Amount      int64         `json:"amount"`
	Date        string        `json:"date"`
	Category    EntryCategory `json:"category"`
}

// FinanceSummary holds the derived aggregates over bookings and entries.
type FinanceSummary struct {
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpense"`
	NetRevenue   int64 `json:"netRevenue"`
}
