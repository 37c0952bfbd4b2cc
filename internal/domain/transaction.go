package domain

import (
	"cloud.google.com/go/civil"
)

// TransactionType tells whether money came in or went out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Label returns the Indonesian display name used in bot replies.
func (t TransactionType) Label() string {
	if t == TypeIncome {
		return "Pemasukan"
	}
	return "Pengeluaran"
}

// Signed applies the sign convention to an absolute amount: income is
// positive, expense is negative.
func (t TransactionType) Signed(abs float64) float64 {
	if abs < 0 {
		abs = -abs
	}
	if t == TypeExpense {
		return -abs
	}
	return abs
}

// TypeForAmount derives the type from a signed amount. Zero counts as
// income, mirroring how summaries label it.
func TypeForAmount(amount float64) TransactionType {
	if amount >= 0 {
		return TypeIncome
	}
	return TypeExpense
}

// ParseTransactionType maps a model or user supplied string onto a type.
// Anything that is not recognizably income counts as expense.
func ParseTransactionType(s string) TransactionType {
	switch s {
	case "income", "pemasukan", "Pemasukan":
		return TypeIncome
	default:
		return TypeExpense
	}
}

// Transaction is one ledger entry, confirmed or pending confirmation.
type Transaction struct {
	Date        civil.Date      // transaction date in the bot's timezone
	Amount      float64         // signed: income positive, expense negative
	Type        TransactionType // income or expense
	Category    string          // display category, e.g. "Makanan"
	Description string          // short free-text description
	OwnerID     int64           // Telegram user the entry belongs to
}
