package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/civil"

	"duitbot/internal/convo"
	"duitbot/internal/domain"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/money"
)

const deleteChoiceLimit = 5

func (b *Bot) sendDeleteMenu(ctx context.Context, chatID int64) {
	b.send(ctx, chatID, convo.Reply{
		Text:     deleteMenuText,
		Markdown: true,
		Choices: [][]convo.Choice{
			{{Label: "Hapus Transaksi Terakhir", Data: callbackDeleteLast}},
			{{Label: "Hapus Transaksi Tertentu", Data: callbackDeleteSpecific}},
			{{Label: "Hapus Berdasarkan Tanggal", Data: callbackDeleteDate}},
			{{Label: "Hapus Semua Data", Data: callbackDeleteAll}},
			{{Label: "❌ Batal", Data: callbackDeleteCancel}},
		},
	})
}

func (b *Bot) handleDeleteCallback(ctx context.Context, chatID int64, messageID int, userID int64, data string) {
	if data == callbackDeleteCancel {
		b.contexts.Clear(userID)
		b.edit(ctx, chatID, messageID, convo.Reply{Text: deleteCanceledText})
		return
	}

	switch data {
	case callbackDeleteLast:
		b.deleteLastRow(ctx, chatID, messageID, userID)
	case callbackDeleteSpecific:
		b.offerRecentRows(ctx, chatID, messageID, userID)
	case callbackDeleteDate:
		b.contexts.Save(userID, convo.Context{DeletePhase: convo.DeleteAwaitingStart})
		b.edit(ctx, chatID, messageID, convo.Reply{Text: deleteStartDateText, Markdown: true})
	case callbackDeleteAll:
		b.edit(ctx, chatID, messageID, convo.Reply{
			Text:     deleteAllWarningText,
			Markdown: true,
			Choices: [][]convo.Choice{
				{{Label: "✅ Ya, Hapus Semua", Data: callbackConfirmDeleteAll}},
				{{Label: "❌ Tidak, Batalkan", Data: callbackDeleteCancel}},
			},
		})
	case callbackConfirmDeleteAll:
		b.deleteAllRows(ctx, chatID, messageID, userID)
	case callbackConfirmDeleteDate:
		b.deleteDateRange(ctx, chatID, messageID, userID)
	}
}

func (b *Bot) deleteLastRow(ctx context.Context, chatID int64, messageID int, userID int64) {
	rows, own, ok := b.loadOwnerRows(ctx, chatID, messageID, userID)
	if !ok {
		return
	}
	if len(own) == 0 {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: noTransactionsText})
		return
	}

	last := own[len(own)-1]
	index := ledger.IndexOf(rows, last)
	if index < 0 {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: "❌ Tidak dapat menemukan transaksi terakhir."})
		return
	}
	if err := b.store.DeleteAt(ctx, index); err != nil {
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Int("index", index).Msg("deleting last row failed")
		b.edit(ctx, chatID, messageID, convo.Reply{Text: genericErrorText})
		return
	}

	b.edit(ctx, chatID, messageID, convo.Reply{
		Text: "✅ Transaksi terakhir berhasil dihapus!\n\n" + deletedRowDetails(last),
	})
}

func (b *Bot) offerRecentRows(ctx context.Context, chatID int64, messageID int, userID int64) {
	_, own, ok := b.loadOwnerRows(ctx, chatID, messageID, userID)
	if !ok {
		return
	}
	if len(own) == 0 {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: noTransactionsText})
		return
	}

	recent := ledger.LastN(own, deleteChoiceLimit)
	choices := make([][]convo.Choice, 0, len(recent)+1)
	for i, row := range recent {
		choices = append(choices, []convo.Choice{{
			Label: rowButtonLabel(row),
			Data:  fmt.Sprintf("%s%d", callbackDeleteRowPrefix, i),
		}})
	}
	choices = append(choices, []convo.Choice{{Label: "❌ Batal", Data: callbackDeleteCancel}})

	b.contexts.Save(userID, convo.Context{DeleteChoices: recent})
	b.edit(ctx, chatID, messageID, convo.Reply{
		Text:    "Pilih transaksi yang ingin dihapus:",
		Choices: choices,
	})
}

func (b *Bot) deleteChosenRow(ctx context.Context, chatID int64, messageID int, userID int64, index int) {
	choices := b.contexts.Load(userID).DeleteChoices
	if index < 0 || index >= len(choices) {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: genericErrorText})
		return
	}
	target := choices[index]
	b.contexts.Clear(userID)

	rows, _, ok := b.loadOwnerRows(ctx, chatID, messageID, userID)
	if !ok {
		return
	}
	rowIndex := ledger.IndexOf(rows, target)
	if rowIndex < 0 {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: "❌ Tidak dapat menemukan transaksi yang dipilih."})
		return
	}
	if err := b.store.DeleteAt(ctx, rowIndex); err != nil {
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Int("index", rowIndex).Msg("deleting chosen row failed")
		b.edit(ctx, chatID, messageID, convo.Reply{Text: genericErrorText})
		return
	}

	b.edit(ctx, chatID, messageID, convo.Reply{
		Text: "✅ Transaksi berhasil dihapus!\n\n" + deletedRowDetails(target),
	})
}

func (b *Bot) deleteAllRows(ctx context.Context, chatID int64, messageID int, userID int64) {
	rows, own, ok := b.loadOwnerRows(ctx, chatID, messageID, userID)
	if !ok {
		return
	}
	if len(own) == 0 {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: noTransactionsText})
		return
	}

	deleted, err := ledger.DeleteRows(ctx, b.store, rows, own)
	if err != nil {
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Int("deleted", deleted).Msg("delete all failed partway")
	}
	b.edit(ctx, chatID, messageID, convo.Reply{
		Text: fmt.Sprintf("✅ Semua transaksi Anda telah dihapus.\n\nTotal %d transaksi telah dihapus.", deleted),
	})
}

// handleDeleteDate consumes text replies while the date-range delete flow
// is waiting for its start or end date.
func (b *Bot) handleDeleteDate(ctx context.Context, chatID, userID int64, text string) {
	uc := b.contexts.Load(userID)

	switch strings.ToLower(text) {
	case "batal", "cancel", "batalkan":
		b.contexts.Clear(userID)
		b.sendPlain(ctx, chatID, dateDeleteCanceledText)
		return
	}

	date, err := parseISODate(text)
	if err != nil {
		b.sendPlain(ctx, chatID, invalidDateText)
		return
	}

	switch uc.DeletePhase {
	case convo.DeleteAwaitingStart:
		uc.DeletePhase = convo.DeleteAwaitingEnd
		uc.DeleteStart = date
		b.contexts.Save(userID, uc)
		b.sendPlain(ctx, chatID, deleteEndDateText)

	case convo.DeleteAwaitingEnd:
		if date.Before(uc.DeleteStart) {
			b.sendPlain(ctx, chatID, endBeforeStartText)
			return
		}

		rows, err := b.store.ListAll(ctx)
		if err != nil {
			b.contexts.Clear(userID)
			if errors.Is(err, ledger.ErrUnavailable) {
				b.send(ctx, chatID, convo.Reply{Text: sheetsDisabledText, Markdown: true})
				return
			}
			lg := logger.FromContext(ctx)
			lg.Error().Err(err).Msg("reading rows for date delete failed")
			b.sendPlain(ctx, chatID, genericErrorText)
			return
		}

		matches := ledger.RowsBetween(ledger.OwnerRows(rows, userID), uc.DeleteStart, date)
		if len(matches) == 0 {
			b.contexts.Clear(userID)
			b.sendPlain(ctx, chatID, noRowsInRangeText)
			return
		}

		uc.DeletePhase = convo.DeleteIdle
		uc.DeleteMatches = matches
		b.contexts.Save(userID, uc)
		b.send(ctx, chatID, convo.Reply{
			Text: fmt.Sprintf(
				"🗑️ *Konfirmasi Penghapusan*\n\n"+
					"Anda akan menghapus %d transaksi dari %s hingga %s.\n\n"+
					"Apakah Anda yakin ingin melanjutkan?",
				len(matches), uc.DeleteStart, date,
			),
			Markdown: true,
			Choices: [][]convo.Choice{
				{{Label: "✅ Ya, Hapus", Data: callbackConfirmDeleteDate}},
				{{Label: "❌ Tidak, Batalkan", Data: callbackDeleteCancel}},
			},
		})
	}
}

func (b *Bot) deleteDateRange(ctx context.Context, chatID int64, messageID int, userID int64) {
	matches := b.contexts.Load(userID).DeleteMatches
	b.contexts.Clear(userID)
	if len(matches) == 0 {
		b.edit(ctx, chatID, messageID, convo.Reply{Text: genericErrorText})
		return
	}

	rows, _, ok := b.loadOwnerRows(ctx, chatID, messageID, userID)
	if !ok {
		return
	}
	deleted, err := ledger.DeleteRows(ctx, b.store, rows, matches)
	if err != nil {
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Int("deleted", deleted).Msg("date range delete failed partway")
	}
	b.edit(ctx, chatID, messageID, convo.Reply{
		Text: fmt.Sprintf("✅ Transaksi dalam rentang tanggal telah dihapus.\n\nTotal %d transaksi telah dihapus.", deleted),
	})
}

// loadOwnerRows reads the sheet once and filters the caller's rows,
// rendering the unavailable and failure cases itself. ok is false when a
// reply was already sent.
func (b *Bot) loadOwnerRows(ctx context.Context, chatID int64, messageID int, userID int64) (all, own []ledger.Row, ok bool) {
	rows, err := b.store.ListAll(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrUnavailable) {
			b.edit(ctx, chatID, messageID, convo.Reply{Text: sheetsDisabledText, Markdown: true})
			return nil, nil, false
		}
		lg := logger.FromContext(ctx)
		lg.Error().Err(err).Msg("reading ledger rows failed")
		b.edit(ctx, chatID, messageID, convo.Reply{Text: genericErrorText})
		return nil, nil, false
	}
	return rows, ledger.OwnerRows(rows, userID), true
}

func deletedRowDetails(row ledger.Row) string {
	return fmt.Sprintf(
		"Jenis: %s\nJumlah: Rp %s\nKategori: %s\nDeskripsi: %s\nTanggal: %s",
		domain.TypeForAmount(row.Amount).Label(),
		money.FormatRupiah(math.Abs(row.Amount)),
		row.Category, row.Description, row.Date,
	)
}

// rowButtonLabel renders one delete choice inside Telegram's 64-character
// button limit.
func rowButtonLabel(row ledger.Row) string {
	symbol := "➖"
	if row.Amount > 0 {
		symbol = "➕"
	}
	desc := row.Description
	if r := []rune(desc); len(r) > 20 {
		desc = string(r[:17]) + "..."
	}
	label := fmt.Sprintf("%s: %s Rp%s - %s", row.Date, symbol, money.FormatRupiah(math.Abs(row.Amount)), desc)
	if r := []rune(label); len(r) > 64 {
		label = string(r[:61]) + "..."
	}
	return label
}

// parseISODate accepts strictly YYYY-MM-DD.
func parseISODate(text string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(text))
	if err != nil {
		return civil.Date{}, err
	}
	return d, nil
}
