package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"duitbot/internal/convo"
	"duitbot/internal/dates"
	"duitbot/internal/domain"
	"duitbot/internal/extract"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/money"
	"duitbot/internal/summary"
)

// ReceiptAppendPace spaces out the per-item and per-category appends of one
// receipt. Tests zero it out.
var ReceiptAppendPace = 300 * time.Millisecond

const receiptMIMEType = "image/jpeg"

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	log := logger.FromContext(ctx)
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.flows.add(userID, chatID, msg.MessageID)

	status, ok := b.send(ctx, chatID, convo.Reply{Text: analyzingText})
	if !ok {
		return
	}

	// Telegram orders PhotoSize ascending; the last entry is the largest.
	photo := msg.Photo[len(msg.Photo)-1]
	url, err := b.api.GetFileDirectURL(photo.FileID)
	if err != nil {
		log.Error().Err(err).Msg("resolving photo url failed")
		b.edit(ctx, chatID, status.MessageID, convo.Reply{Text: photoErrorText})
		return
	}
	image, err := b.fetch(ctx, url)
	if err != nil {
		log.Error().Err(err).Msg("downloading photo failed")
		b.edit(ctx, chatID, status.MessageID, convo.Reply{Text: photoErrorText})
		return
	}

	if uri, err := b.archiver.Put(ctx, userID, image, receiptMIMEType); err != nil {
		log.Warn().Err(err).Msg("archiving receipt photo failed")
	} else if uri != "" {
		log.Debug().Str("uri", uri).Msg("receipt photo archived")
	}

	receipt, err := b.receipts.ExtractReceipt(ctx, image, receiptMIMEType)
	if err != nil {
		if errors.Is(err, extract.ErrBusy) {
			b.edit(ctx, chatID, status.MessageID, convo.Reply{Text: receiptBusyText})
		} else {
			b.edit(ctx, chatID, status.MessageID, convo.Reply{Text: receiptFailedText})
		}
		return
	}

	switch {
	case len(receipt.Items) > 0:
		b.contexts.Save(userID, convo.Context{PendingReceipt: receipt})
		b.edit(ctx, chatID, status.MessageID, convo.Reply{
			Text:     receiptSummaryText(receipt),
			Markdown: true,
			Choices:  receiptModeChoices(),
		})
	case receipt.TotalAmount > 0:
		reply := b.machine.StagePending(userID, receiptTotalTransaction(receipt))
		b.edit(ctx, chatID, status.MessageID, reply)
	default:
		b.edit(ctx, chatID, status.MessageID, convo.Reply{Text: receiptUnreadableText})
	}
}

func (b *Bot) handleReceiptCallback(ctx context.Context, chatID int64, messageID int, userID int64, data string) {
	if data == callbackReceiptCancel {
		b.contexts.Clear(userID)
		b.flows.drain(userID)
		b.edit(ctx, chatID, messageID, convo.Reply{Text: receiptCanceledText})
		return
	}

	receipt := b.contexts.Load(userID).PendingReceipt
	if receipt == nil {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: receiptGoneText})
		return
	}
	b.contexts.Clear(userID)

	switch data {
	case callbackReceiptTotal:
		b.recordReceiptTotal(ctx, chatID, messageID, userID, receipt)
	case callbackReceiptItems:
		b.recordReceiptItems(ctx, chatID, messageID, userID, receipt)
	case callbackReceiptCategories:
		b.recordReceiptCategories(ctx, chatID, messageID, userID, receipt)
	}
}

func (b *Bot) recordReceiptTotal(ctx context.Context, chatID int64, messageID int, userID int64, r *domain.ReceiptExtraction) {
	log := logger.FromContext(ctx)
	b.edit(ctx, chatID, messageID, convo.Reply{Text: "⏳ Mencatat transaksi..."})

	tx := receiptTotalTransaction(r)
	row := ledger.NewRow(tx, userID, time.Now())
	if err := b.store.Append(ctx, row); err != nil {
		if errors.Is(err, ledger.ErrUnavailable) {
			b.edit(ctx, chatID, messageID, convo.Reply{Text: sheetsDisabledText, Markdown: true})
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Msg("recording receipt total failed")
		b.edit(ctx, chatID, messageID, convo.Reply{Text: "❌ Gagal mencatat transaksi. Silakan coba lagi."})
		return
	}

	text := fmt.Sprintf(
		"✅ Transaksi dari struk berhasil dicatat!\n\n"+
			"Total: Rp %s\n"+
			"Toko: %s\n"+
			"Tanggal: %s",
		money.FormatRupiah(math.Abs(tx.Amount)), storeNameOf(r), tx.Date.String(),
	)
	if rows, err := b.store.ListAll(ctx); err == nil {
		day := ledger.RowsOn(ledger.OwnerRows(rows, userID), tx.Date)
		if items := summary.FromRows(day); len(items) > 0 {
			text += summary.Render("📋 RINGKASAN HARI INI", items)
			text += "\n\n💡 Gunakan /laporan untuk detail lengkap."
		}
	} else {
		log.Warn().Err(err).Msg("reading back day summary failed")
	}

	b.edit(ctx, chatID, messageID, convo.Reply{Text: text, Markdown: true})
	b.sweep(ctx, userID)
}

func (b *Bot) recordReceiptItems(ctx context.Context, chatID int64, messageID int, userID int64, r *domain.ReceiptExtraction) {
	log := logger.FromContext(ctx)
	b.edit(ctx, chatID, messageID, convo.Reply{Text: "⏳ Mencatat setiap item..."})

	store := storeNameOf(r)
	now := time.Now()
	rows := make([]ledger.Row, 0, len(r.Items))
	items := make([]summary.Item, 0, len(r.Items))
	for _, item := range r.Items {
		desc := itemDescription(item, store)
		category := item.Category
		if category == "" {
			category = "Belanja"
		}
		tx := domain.Transaction{
			Date:        r.Date,
			Amount:      -math.Abs(item.Amount),
			Type:        domain.TypeExpense,
			Category:    category,
			Description: desc,
		}
		rows = append(rows, ledger.NewRow(tx, userID, now))
		items = append(items, summary.Item{Category: category, Amount: item.Amount, Description: item.Description})
	}

	recorded, err := ledger.AppendBatch(ctx, b.store, rows, ReceiptAppendPace)
	if err != nil {
		if errors.Is(err, ledger.ErrUnavailable) && recorded == 0 {
			b.edit(ctx, chatID, messageID, convo.Reply{Text: sheetsDisabledText, Markdown: true})
			return
		}
		log.Error().Err(err).Int("recorded", recorded).Int("total", len(rows)).
			Msg("receipt item batch failed partway")
	}

	text := fmt.Sprintf(
		"✅ Berhasil mencatat %d dari %d item!\n\n🏪 Toko: %s\n📅 Tanggal: %s",
		recorded, len(rows), store, r.Date.String(),
	)
	if recorded > 0 {
		text += summary.Render("📋 RINGKASAN PER KATEGORI", items[:recorded])
	}
	text += "\n\n💡 Gunakan /laporan untuk melihat detail lengkap."

	b.edit(ctx, chatID, messageID, convo.Reply{Text: text, Markdown: true})
	if recorded > 0 {
		b.sweep(ctx, userID)
	}
}

func (b *Bot) recordReceiptCategories(ctx context.Context, chatID int64, messageID int, userID int64, r *domain.ReceiptExtraction) {
	log := logger.FromContext(ctx)
	b.edit(ctx, chatID, messageID, convo.Reply{Text: "⏳ Mengelompokkan per kategori..."})

	store := storeNameOf(r)
	now := time.Now()

	// Group items by category, first-seen order preserved.
	var order []string
	totals := make(map[string]float64)
	for _, item := range r.Items {
		category := item.Category
		if category == "" {
			category = "Belanja"
		}
		if _, ok := totals[category]; !ok {
			order = append(order, category)
		}
		totals[category] += math.Abs(item.Amount)
	}

	rows := make([]ledger.Row, 0, len(order))
	items := make([]summary.Item, 0, len(order))
	for _, category := range order {
		tx := domain.Transaction{
			Date:        r.Date,
			Amount:      -totals[category],
			Type:        domain.TypeExpense,
			Category:    category,
			Description: fmt.Sprintf("Belanja %s di %s", category, store),
		}
		rows = append(rows, ledger.NewRow(tx, userID, now))
		items = append(items, summary.Item{Category: category, Amount: totals[category], Description: "Belanja " + category})
	}

	recorded, err := ledger.AppendBatch(ctx, b.store, rows, ReceiptAppendPace)
	if err != nil {
		if errors.Is(err, ledger.ErrUnavailable) && recorded == 0 {
			b.edit(ctx, chatID, messageID, convo.Reply{Text: sheetsDisabledText, Markdown: true})
			return
		}
		log.Error().Err(err).Int("recorded", recorded).Int("total", len(rows)).
			Msg("receipt category batch failed partway")
	}

	text := fmt.Sprintf(
		"✅ Berhasil mencatat %d kategori!\n\n🏪 Toko: %s\n📅 Tanggal: %s",
		recorded, store, r.Date.String(),
	)
	if recorded > 0 {
		text += summary.Render("📋 RINGKASAN PER KATEGORI", items[:recorded])
	}
	text += "\n\n💡 Gunakan /laporan untuk melihat detail lengkap."

	b.edit(ctx, chatID, messageID, convo.Reply{Text: text, Markdown: true})
	if recorded > 0 {
		b.sweep(ctx, userID)
	}
}

// receiptTotalTransaction builds the single "Belanja" candidate for a
// receipt recorded by its total only.
func receiptTotalTransaction(r *domain.ReceiptExtraction) domain.Transaction {
	desc := r.SuggestedDescription
	if desc == "" {
		desc = "Belanja di " + storeNameOf(r)
	}
	return domain.Transaction{
		Date:        r.Date,
		Amount:      -math.Abs(r.TotalAmount),
		Type:        domain.TypeExpense,
		Category:    "Belanja",
		Description: desc,
	}
}

func receiptSummaryText(r *domain.ReceiptExtraction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧾 *Struk Terdeteksi dari %s*\n", storeNameOf(r))
	fmt.Fprintf(&b, "📅 Tanggal: %s\n", dates.Display(r.Date))
	fmt.Fprintf(&b, "💰 Total: Rp %s\n\n", money.FormatRupiah(math.Abs(r.TotalAmount)))

	b.WriteString("*Detail Barang:*\n")
	shown := r.Items
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, item := range shown {
		desc := item.Description
		if desc == "" {
			desc = "Item"
		}
		fmt.Fprintf(&b, "%d. %s", i+1, desc)
		if item.Quantity > 1 {
			fmt.Fprintf(&b, " (x%.0f)", item.Quantity)
		}
		fmt.Fprintf(&b, ": Rp %s\n", money.FormatRupiah(math.Abs(item.Amount)))
	}
	if extra := len(r.Items) - 10; extra > 0 {
		fmt.Fprintf(&b, "... dan %d item lainnya\n", extra)
	}

	if r.Tax > 0 {
		fmt.Fprintf(&b, "\n💸 Pajak: Rp %s", money.FormatRupiah(r.Tax))
	}
	if r.Discount > 0 {
		fmt.Fprintf(&b, "\n🎁 Diskon: Rp %s", money.FormatRupiah(r.Discount))
	}

	b.WriteString("\n\nPilih cara pencatatan:")
	return b.String()
}

func receiptModeChoices() [][]convo.Choice {
	return [][]convo.Choice{
		{{Label: "💵 Catat Total Saja", Data: callbackReceiptTotal}},
		{{Label: "📝 Catat Per Item", Data: callbackReceiptItems}},
		{{Label: "🏷️ Catat Per Kategori", Data: callbackReceiptCategories}},
		{{Label: "❌ Batal", Data: callbackReceiptCancel}},
	}
}

func itemDescription(item domain.ReceiptItem, store string) string {
	desc := item.Description
	if desc == "" {
		desc = "Item"
	}
	if item.Quantity > 1 {
		return fmt.Sprintf("%s (x%.0f) di %s", desc, item.Quantity, store)
	}
	return fmt.Sprintf("%s di %s", desc, store)
}

func storeNameOf(r *domain.ReceiptExtraction) string {
	if r.StoreName == "" {
		return "Toko"
	}
	return r.StoreName
}
