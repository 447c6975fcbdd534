package models

import "time"

// Transaction represents a single financial event loaded from the
// operations spreadsheet
type Transaction struct {
	OperationDate time.Time  `json:"operation_date"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"` // May differ from the operation date
	Amount        float64    `json:"amount"`                 // Negative for expense, positive for income/refund
	Category      string     `json:"category"`
	CardID        string     `json:"card_id"`
	Description   string     `json:"description"`
	Cashback      float64    `json:"cashback"`
}

// DateField selects which transaction date a window filter applies to
type DateField int

const (
	OperationDateField DateField = iota
	PaymentDateField
)

// Date returns the transaction date selected by field. The second
// return is false when the field is absent (nil payment date).
func (t Transaction) Date(field DateField) (time.Time, bool) {
	switch field {
	case PaymentDateField:
		if t.PaymentDate == nil {
			return time.Time{}, false
		}
		return *t.PaymentDate, true
	default:
		if t.OperationDate.IsZero() {
			return time.Time{}, false
		}
		return t.OperationDate, true
	}
}

// SheetSchema defines the header names a transaction spreadsheet is
// expected to carry. Operation date and amount are required; the rest
// default to empty/zero when the column is absent.
type SheetSchema struct {
	OperationDateColumn string
	PaymentDateColumn   string
	AmountColumn        string
	CategoryColumn      string
	CardColumn          string
	DescriptionColumn   string
	CashbackColumn      string
}

// DefaultSheetSchema matches the operations workbook layout
func DefaultSheetSchema() SheetSchema {
	return SheetSchema{
		OperationDateColumn: "Operation Date",
		PaymentDateColumn:   "Payment Date",
		AmountColumn:        "Amount",
		CategoryColumn:      "Category",
		CardColumn:          "Card Number",
		DescriptionColumn:   "Description",
		CashbackColumn:      "Cashback",
	}
}
