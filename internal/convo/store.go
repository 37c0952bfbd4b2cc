// Package convo tracks per-user conversation state between Telegram
// updates and drives the record-transaction flow.
package convo

import (
	"sync"

	"cloud.google.com/go/civil"

	"duitbot/internal/domain"
	"duitbot/internal/ledger"
)

// State marks where a user is in the record-transaction flow.
type State string

const (
	StateNone           State = ""
	StateWaitingType    State = "waiting_type"
	StateWaitingAmount  State = "waiting_amount"
	StatePendingConfirm State = "pending_confirmation"
)

// DeletePhase marks where a user is in the delete-by-date flow.
type DeletePhase string

const (
	DeleteIdle          DeletePhase = ""
	DeleteAwaitingStart DeletePhase = "awaiting_start_date"
	DeleteAwaitingEnd   DeletePhase = "awaiting_end_date"
)

// Context is everything pending for one user. It is replaced wholesale on
// every transition and cleared in one step on terminal transitions, so a
// flow can never leak fields into the next one.
type Context struct {
	State   State
	RawText string // original message text, kept for the edit flow

	// filled when extraction ran but found no amount
	DetectedDate     civil.Date
	DetectedCategory string
	PendingType      domain.TransactionType

	Pending        *domain.Transaction       // single candidate awaiting confirmation
	PendingBatch   []domain.Transaction      // multi-line candidates awaiting confirmation
	PendingReceipt *domain.ReceiptExtraction // scanned receipt awaiting a recording mode

	// delete flows
	DeletePhase   DeletePhase
	DeleteStart   civil.Date
	DeleteChoices []ledger.Row // recent rows offered for single-row deletion
	DeleteMatches []ledger.Row // rows in a date range awaiting confirmation
}

// Store keeps conversation contexts in memory, keyed by Telegram user ID.
// It is safe for concurrent use. State is lost on restart; users simply
// start their flow over.
type Store struct {
	mu       sync.RWMutex
	contexts map[int64]Context
}

// NewStore creates an empty context store.
func NewStore() *Store {
	return &Store{contexts: make(map[int64]Context)}
}

// Load returns the user's context, zero when none exists. The returned
// value is a copy; mutations only take effect through Save.
func (s *Store) Load(userID int64) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contexts[userID]
}

// Save replaces the user's context wholesale.
func (s *Store) Save(userID int64, c Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[userID] = c
}

// Clear drops every pending flow for the user in one step.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, userID)
}
