package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/report"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	b.dispatchCommand(ctx, msg, msg.Command())
}

func (b *Bot) dispatchCommand(ctx context.Context, msg *tgbotapi.Message, cmd string) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch cmd {
	case "start":
		b.sendWithKeyboard(ctx, chatID, startText)
	case "menu":
		b.sendWithKeyboard(ctx, chatID, menuText)
	case "help":
		b.sendMarkdown(ctx, chatID, helpText)
	case "catat":
		b.sendPlain(ctx, chatID, recordText)
	case "laporan":
		b.sendReport(ctx, chatID, userID)
	case "sheet":
		b.sendSheetLink(ctx, chatID, msg.From.FirstName)
	case "hapus":
		b.sendDeleteMenu(ctx, chatID)
	case "hapuspesan":
		b.toggleAutoDelete(ctx, chatID, userID)
	case "me":
		b.sendPlain(ctx, chatID, fmt.Sprintf("Your Telegram user ID is: %d", userID))
	default:
		b.sendPlain(ctx, chatID, "❓ Perintah tidak dikenali. Gunakan /help untuk panduan.")
	}
}

func (b *Bot) sendMarkdown(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		lg := logger.FromContext(ctx)
		lg.Warn().Err(err).Msg("markdown send rejected, retrying plain")
		msg.ParseMode = ""
		if _, err := b.api.Send(msg); err != nil {
			lg := logger.FromContext(ctx)
			lg.Error().Err(err).Msg("plain send failed")
		}
	}
}

func (b *Bot) sendWithKeyboard(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = mainKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		lg := logger.FromContext(ctx)
		lg.Warn().Err(err).Msg("markdown send rejected, retrying plain")
		msg.ParseMode = ""
		if _, err := b.api.Send(msg); err != nil {
			lg := logger.FromContext(ctx)
			lg.Error().Err(err).Msg("plain send failed")
		}
	}
}

func (b *Bot) sendReport(ctx context.Context, chatID, userID int64) {
	rows, err := b.store.ListAll(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrUnavailable) {
			b.sendMarkdown(ctx, chatID, sheetsDisabledText)
			return
		}
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Msg("reading rows for report failed")
		b.sendPlain(ctx, chatID, genericErrorText)
		return
	}

	own := ledger.OwnerRows(rows, userID)
	if len(own) == 0 {
		b.sendPlain(ctx, chatID, noReportDataText)
		return
	}

	rep := report.Build(own, b.receipts.Today())
	b.sendMarkdown(ctx, chatID, rep.RenderMarkdown())
}

func (b *Bot) sendSheetLink(ctx context.Context, chatID int64, firstName string) {
	if b.spreadsheetID == "" {
		b.sendMarkdown(ctx, chatID, sheetsDisabledText)
		return
	}

	url := ledger.SpreadsheetURL(b.spreadsheetID)
	text := fmt.Sprintf(
		"📊 *Link Google Sheet Keuangan Anda*\n\n"+
			"Halo %s, berikut adalah link untuk melihat data keuangan Anda:\n\n"+
			"[Buka Google Sheet](%s)\n\n"+
			"Anda dapat melihat semua transaksi dan mengunduh data dalam format Excel/CSV.",
		firstName, url,
	)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("Buka Google Sheet", url)),
	)
	if _, err := b.api.Send(msg); err != nil {
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Msg("sheet link send failed")
		b.sendPlain(ctx, chatID, url)
	}
}

func (b *Bot) toggleAutoDelete(ctx context.Context, chatID, userID int64) {
	on, err := b.prefs.ToggleAutoDelete(userID)
	if err != nil {
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Int64("user_id", userID).Msg("toggling auto delete failed")
		b.sendPlain(ctx, chatID, genericErrorText)
		return
	}

	status := "NONAKTIF"
	detail := "Pesan tidak akan dihapus otomatis."
	if on {
		status = "AKTIF"
		detail = "Pesan akan dihapus otomatis setelah transaksi dicatat."
	}
	b.sendPlain(ctx, chatID, fmt.Sprintf("🗑️ Penghapusan pesan otomatis: %s\n\n%s", status, detail))
}
