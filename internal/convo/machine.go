package convo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"duitbot/internal/domain"
	"duitbot/internal/extract"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/money"
	"duitbot/internal/summary"
)

// Extractor produces transaction candidates from free text.
type Extractor interface {
	ExtractOne(ctx context.Context, text string) extract.Candidate
	ExtractAll(ctx context.Context, text string) []extract.Candidate
	Today() civil.Date
}

// Write pacing for the sheets backend. Tests zero these out.
var (
	// BatchAppendPace spaces out multi-transaction appends to stay under
	// the Sheets API write quota.
	BatchAppendPace = 500 * time.Millisecond
	// ConfirmSettleDelay gives an append time to land before the day's
	// rows are re-read for the summary.
	ConfirmSettleDelay = 3 * time.Second
)

// Machine drives the record-transaction conversation. All methods are
// keyed by user ID; one user's flow never touches another's.
type Machine struct {
	contexts  *Store
	extractor Extractor
	store     ledger.Store
	now       func() time.Time
}

// NewMachine wires the conversation flow to its extractor and ledger.
func NewMachine(contexts *Store, ex Extractor, st ledger.Store) *Machine {
	return &Machine{contexts: contexts, extractor: ex, store: st, now: time.Now}
}

// HandleText processes a free-text message: an amount reply when the flow
// is waiting for one, otherwise a fresh single- or multi-line extraction.
// Starting a new flow implicitly abandons whatever was pending.
func (m *Machine) HandleText(ctx context.Context, userID int64, text string) Reply {
	uc := m.contexts.Load(userID)
	if uc.State == StateWaitingAmount {
		return m.handleAmountReply(userID, uc, text)
	}

	if len(splitLines(text)) > 1 {
		return m.handleBatch(ctx, userID, text)
	}
	return m.handleSingle(ctx, userID, text)
}

func (m *Machine) handleSingle(ctx context.Context, userID int64, text string) Reply {
	c := m.extractor.ExtractOne(ctx, text)

	if !c.HasAmount {
		m.contexts.Save(userID, Context{
			State:            StateWaitingType,
			RawText:          text,
			DetectedDate:     c.Date,
			DetectedCategory: c.Category,
		})
		return Reply{Text: askTypeText, Choices: TypeChoices()}
	}

	tx := c.Transaction
	tx.OwnerID = userID
	m.contexts.Save(userID, Context{
		State:        StatePendingConfirm,
		RawText:      text,
		DetectedDate: c.Date,
		Pending:      &tx,
	})
	return Reply{Text: confirmText(tx), Markdown: true, Choices: ConfirmChoices()}
}

func (m *Machine) handleBatch(ctx context.Context, userID int64, text string) Reply {
	cands := m.extractor.ExtractAll(ctx, text)
	if len(cands) == 0 {
		// No new flow started; any pending confirmation stays live.
		return Reply{Text: unrecognizedBatchText}
	}

	txs := make([]domain.Transaction, len(cands))
	for i, c := range cands {
		txs[i] = c.Transaction
		txs[i].OwnerID = userID
	}
	m.contexts.Save(userID, Context{State: StatePendingConfirm, PendingBatch: txs})
	return Reply{Text: batchConfirmText(txs), Markdown: true, Choices: batchChoices()}
}

func (m *Machine) handleAmountReply(userID int64, uc Context, text string) Reply {
	abs, ok := money.Parse(text)
	if !ok {
		// State unchanged; the user can just try again.
		return Reply{Text: invalidAmountText}
	}

	category := uc.DetectedCategory
	if category == "" {
		category = "Lainnya"
	}
	tx := domain.Transaction{
		Date:        uc.DetectedDate,
		Amount:      uc.PendingType.Signed(abs),
		Type:        uc.PendingType,
		Category:    category,
		Description: uc.RawText,
		OwnerID:     userID,
	}

	uc.State = StatePendingConfirm
	uc.Pending = &tx
	m.contexts.Save(userID, uc)
	return Reply{Text: confirmText(tx), Markdown: true, Choices: ConfirmChoices()}
}

// ChooseType resolves the income/expense picker shown when no amount was
// found, then asks for the amount.
func (m *Machine) ChooseType(userID int64, t domain.TransactionType) Reply {
	uc := m.contexts.Load(userID)
	if uc.State != StateWaitingType {
		return Reply{Text: editResendText}
	}

	uc.PendingType = t
	uc.State = StateWaitingAmount
	if uc.DetectedDate == (civil.Date{}) {
		uc.DetectedDate = m.extractor.Today()
	}
	m.contexts.Save(userID, uc)
	return Reply{Text: amountPromptText(uc), Markdown: true}
}

// StagePending installs an externally assembled candidate, used by the
// receipt flow when only a total is recorded. Confirm picks it up like any
// other single transaction.
func (m *Machine) StagePending(userID int64, tx domain.Transaction) Reply {
	tx.OwnerID = userID
	m.contexts.Save(userID, Context{State: StatePendingConfirm, Pending: &tx})
	return Reply{Text: confirmText(tx), Markdown: true, Choices: ConfirmChoices()}
}

// Confirm writes whatever is pending to the ledger. The context survives a
// failed write so the user can press the button again once the problem is
// fixed; on success it is cleared before the reply is built.
func (m *Machine) Confirm(ctx context.Context, userID int64) Reply {
	uc := m.contexts.Load(userID)
	switch {
	case len(uc.PendingBatch) > 0:
		return m.confirmBatch(ctx, userID, uc)
	case uc.Pending != nil:
		return m.confirmSingle(ctx, userID, uc)
	default:
		return Reply{Text: nothingPendingText}
	}
}

func (m *Machine) confirmSingle(ctx context.Context, userID int64, uc Context) Reply {
	log := logger.FromContext(ctx)
	tx := *uc.Pending

	row := ledger.NewRow(tx, userID, m.now())
	if err := m.store.Append(ctx, row); err != nil {
		if errors.Is(err, ledger.ErrUnavailable) {
			return Reply{Text: storeUnavailableText}
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("appending transaction failed")
		return Reply{Text: appendFailedText}
	}
	m.contexts.Clear(userID)

	text := recordedText(tx)

	// Let the write land before re-reading the day's rows.
	sleepCtx(ctx, ConfirmSettleDelay)
	rows, err := m.store.ListAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reading back day summary failed")
		return Reply{Text: text, Markdown: true, Recorded: true}
	}
	day := ledger.RowsOn(ledger.OwnerRows(rows, userID), tx.Date)
	if items := summary.FromRows(day); len(items) > 0 {
		text += summary.Render("📋 RINGKASAN HARI INI", items)
		text += "\n\n💡 Gunakan /laporan untuk detail lengkap."
	}
	return Reply{Text: text, Markdown: true, Recorded: true}
}

func (m *Machine) confirmBatch(ctx context.Context, userID int64, uc Context) Reply {
	log := logger.FromContext(ctx)

	rows := make([]ledger.Row, len(uc.PendingBatch))
	for i, tx := range uc.PendingBatch {
		rows[i] = ledger.NewRow(tx, userID, m.now())
	}
	recorded, err := ledger.AppendBatch(ctx, m.store, rows, BatchAppendPace)
	if err != nil {
		if errors.Is(err, ledger.ErrUnavailable) && recorded == 0 {
			return Reply{Text: batchUnavailableText, Markdown: true}
		}
		log.Error().Err(err).Int("recorded", recorded).Int("total", len(rows)).
			Msg("batch append failed partway")
	}
	m.contexts.Clear(userID)

	items := make([]summary.Item, 0, len(uc.PendingBatch))
	for _, tx := range uc.PendingBatch {
		items = append(items, summary.Item{Category: tx.Category, Amount: tx.Amount, Description: tx.Description})
	}
	text := fmt.Sprintf("✅ %d dari %d transaksi berhasil dicatat!\n\n", recorded, len(rows)) +
		summary.Render("💰 RINGKASAN KATEGORI", items) +
		"\n\nGunakan /laporan untuk melihat ringkasan keuangan Anda."
	return Reply{Text: text, Markdown: true, Recorded: recorded > 0}
}

// Edit restarts the flow from the type picker when the original text is
// still around, otherwise asks the user to resend.
func (m *Machine) Edit(userID int64) Reply {
	uc := m.contexts.Load(userID)
	if uc.RawText == "" {
		m.contexts.Clear(userID)
		return Reply{Text: editResendText}
	}

	m.contexts.Save(userID, Context{
		State:            StateWaitingType,
		RawText:          uc.RawText,
		DetectedDate:     uc.DetectedDate,
		DetectedCategory: uc.DetectedCategory,
	})
	return Reply{Text: "Silakan pilih jenis transaksi:", Choices: TypeChoices()}
}

// Cancel aborts a single-transaction flow.
func (m *Machine) Cancel(userID int64) Reply {
	m.contexts.Clear(userID)
	return Reply{Text: canceledText}
}

// CancelBatch aborts a multi-transaction flow.
func (m *Machine) CancelBatch(userID int64) Reply {
	m.contexts.Clear(userID)
	return Reply{Text: batchCanceledText}
}

// Abort drops any pending flow without a reply. Commands call it so a /
// prefix always wins over whatever the conversation was waiting for.
func (m *Machine) Abort(userID int64) {
	m.contexts.Clear(userID)
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
