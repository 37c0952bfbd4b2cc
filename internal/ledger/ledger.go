// Package ledger persists confirmed transactions as rows of a Google
// Sheets worksheet, one row per transaction.
package ledger

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"duitbot/internal/domain"
)

// ErrUnavailable signals that the sheets integration is not configured.
// Callers surface it to users as "contact the administrator".
var ErrUnavailable = errors.New("ledger unavailable")

// TimestampFormat is the recording-time format stored in the Timestamp
// column. It sorts chronologically as a plain string.
const TimestampFormat = "2006-01-02 15:04:05"

// Header is the first worksheet row.
var Header = []string{"Date", "Amount", "Category", "Description", "User ID", "Timestamp", "Record ID"}

// Row is one ledger entry as stored in the worksheet.
type Row struct {
	ID          string // uuid; empty on rows written before record IDs existed
	Date        civil.Date
	Amount      float64 // signed: income positive, expense negative
	Category    string
	Description string
	OwnerID     int64
	Timestamp   time.Time // wall-clock recording time
}

// NewRow stamps a transaction with a fresh record ID and the recording time.
func NewRow(tx domain.Transaction, owner int64, now time.Time) Row {
	return Row{
		ID:          uuid.NewString(),
		Date:        tx.Date,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		OwnerID:     owner,
		Timestamp:   now,
	}
}

// Store is the ledger persistence interface.
type Store interface {
	// Append adds one row at the bottom of the sheet.
	Append(ctx context.Context, row Row) error
	// ListAll returns every data row in sheet order, including rows
	// belonging to other users.
	ListAll(ctx context.Context) ([]Row, error)
	// DeleteAt removes the data row at the given 0-based position in
	// ListAll order.
	DeleteAt(ctx context.Context, index int) error
}

// Unavailable is the Store wired in when sheets credentials are missing.
// Every call fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Append(context.Context, Row) error      { return ErrUnavailable }
func (Unavailable) ListAll(context.Context) ([]Row, error) { return nil, ErrUnavailable }
func (Unavailable) DeleteAt(context.Context, int) error    { return ErrUnavailable }

var _ Store = Unavailable{}

// SpreadsheetURL returns the browser link for a spreadsheet ID.
func SpreadsheetURL(spreadsheetID string) string {
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID
}
