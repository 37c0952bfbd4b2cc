package extract

import "duitbot/internal/domain"

// Candidate is a parsed-but-unconfirmed transaction. Every field except the
// amount is always filled; HasAmount is false when neither the model nor
// the fallback parser could find one, in which case the conversation flow
// asks the user for it.
type Candidate struct {
	domain.Transaction
	HasAmount bool
}
