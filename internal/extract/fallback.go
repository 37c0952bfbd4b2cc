package extract

import (
	"cloud.google.com/go/civil"

	"duitbot/internal/classify"
	"duitbot/internal/dates"
	"duitbot/internal/domain"
	"duitbot/internal/money"
)

// ParseLocal extracts a best-effort transaction without the model. It never
// fails: a missing amount is represented in HasAmount, every other field is
// always filled.
func ParseLocal(cls *classify.Classifier, text string, today civil.Date) Candidate {
	amount, hasAmount := money.Parse(text)
	txType := cls.Type(text)

	description := text
	if hasAmount {
		if stripped := money.StripAmountTokens(text); stripped != "" {
			description = stripped
		}
	}

	c := Candidate{
		Transaction: domain.Transaction{
			Date:        dates.Relative(text, today),
			Type:        txType,
			Category:    cls.Category(text),
			Description: description,
		},
		HasAmount: hasAmount,
	}
	if hasAmount {
		c.Amount = txType.Signed(amount)
	}
	return c
}
