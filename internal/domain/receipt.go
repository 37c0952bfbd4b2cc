package domain

import (
	"cloud.google.com/go/civil"
)

// ReceiptItem is one line item read off a receipt photo.
type ReceiptItem struct {
	Description string  // item name as printed
	Quantity    float64 // defaults to 1 when the receipt omits it
	UnitPrice   float64
	Amount      float64 // line total
	Category    string
}

// ReceiptExtraction is the structured result of reading a receipt photo.
type ReceiptExtraction struct {
	StoreName            string
	Date                 civil.Date
	Time                 string // "HH:MM" as printed, empty when unreadable
	TotalAmount          float64
	PaymentMethod        string
	Items                []ReceiptItem
	Tax                  float64
	Discount             float64
	Type                 TransactionType // receipts are always expenses
	SuggestedDescription string          // e.g. "Belanja Indomaret"
}

// ItemsTotal sums the line items plus tax minus discount. It backs the
// total when the receipt's printed total is unreadable.
func (r ReceiptExtraction) ItemsTotal() float64 {
	var sum float64
	for _, it := range r.Items {
		sum += it.Amount
	}
	return sum + r.Tax - r.Discount
}
