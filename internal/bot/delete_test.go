package bot

import (
	"context"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"duitbot/internal/convo"
	"duitbot/internal/ledger"
)

func seedLedger(f *fixture) {
	f.rows.rows = []ledger.Row{
		seedRow("r1", civil.Date{Year: 2025, Month: 8, Day: 1}, -50000, "Makanan", "Makan siang", testUserID),
		seedRow("r2", civil.Date{Year: 2025, Month: 8, Day: 10}, -350000, "Tagihan", "Bayar listrik", testUserID),
		seedRow("r3", civil.Date{Year: 2025, Month: 8, Day: 10}, -75000, "Transportasi", "Punya orang lain", 42),
		seedRow("r4", civil.Date{Year: 2025, Month: 8, Day: 20}, 5000000, "Gaji", "Gaji bulanan", testUserID),
	}
}

func TestHapusCommandShowsMenu(t *testing.T) {
	f := newFixture(t, nil)

	f.bot.HandleUpdate(context.Background(), tgbotapi.Update{Message: commandMsg(testUserID, "hapus")})

	mc, ok := f.api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T, want MessageConfig", f.api.sent[0])
	}
	if !strings.Contains(mc.Text, "Hapus Data Keuangan") {
		t.Errorf("menu text missing, got:\n%s", mc.Text)
	}
	kb, ok := mc.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("menu keyboard is %T, want InlineKeyboardMarkup", mc.ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != 5 {
		t.Errorf("menu has %d rows, want 5 options", len(kb.InlineKeyboard))
	}
}

func TestDeleteLastRow(t *testing.T) {
	f := newFixture(t, nil)
	seedLedger(f)

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteLast))

	if len(f.rows.rows) != 3 {
		t.Fatalf("ledger has %d rows, want 3 after deleting the last one", len(f.rows.rows))
	}
	for _, r := range f.rows.rows {
		if r.ID == "r4" {
			t.Error("the caller's newest row should be gone")
		}
	}
	got := f.api.lastText(t)
	if !strings.Contains(got, "Transaksi terakhir berhasil dihapus") {
		t.Errorf("success text missing, got:\n%s", got)
	}
	if !strings.Contains(got, "Gaji bulanan") {
		t.Errorf("deleted row details missing, got:\n%s", got)
	}
}

func TestDeleteLastRowWithNoRows(t *testing.T) {
	f := newFixture(t, nil)

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteLast))

	if got := f.api.lastText(t); got != noTransactionsText {
		t.Errorf("reply = %q, want no-transactions text", got)
	}
}

func TestDeleteSpecificFlow(t *testing.T) {
	f := newFixture(t, nil)
	seedLedger(f)

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteSpecific))

	edit, ok := f.api.sent[0].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("sent %T, want EditMessageTextConfig", f.api.sent[0])
	}
	if edit.ReplyMarkup == nil {
		t.Fatal("row picker keyboard missing")
	}
	// Three own rows fit the limit, plus the cancel row.
	if got := len(edit.ReplyMarkup.InlineKeyboard); got != 4 {
		t.Fatalf("picker has %d rows, want 4", got)
	}
	if choices := f.contexts.Load(testUserID).DeleteChoices; len(choices) != 3 {
		t.Fatalf("saved %d delete choices, want 3", len(choices))
	}

	// Choice 0 is the oldest of the offered rows.
	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteRowPrefix+"0"))

	if len(f.rows.rows) != 3 {
		t.Fatalf("ledger has %d rows, want 3", len(f.rows.rows))
	}
	for _, r := range f.rows.rows {
		if r.ID == "r1" {
			t.Error("chosen row should be gone")
		}
	}
	if got := f.api.lastText(t); !strings.Contains(got, "Transaksi berhasil dihapus") {
		t.Errorf("success text missing, got:\n%s", got)
	}
	if uc := f.contexts.Load(testUserID); len(uc.DeleteChoices) != 0 {
		t.Error("delete choices should be cleared after the deletion")
	}
}

func TestDeleteChosenRowOutOfRange(t *testing.T) {
	f := newFixture(t, nil)
	seedLedger(f)
	f.contexts.Save(testUserID, convo.Context{DeleteChoices: ledger.LastN(f.rows.rows, 2)})

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteRowPrefix+"9"))

	if len(f.rows.rows) != 4 {
		t.Error("nothing should be deleted for a stale index")
	}
	if got := f.api.lastText(t); got != genericErrorText {
		t.Errorf("reply = %q, want generic error", got)
	}
}

func TestDeleteAllAsksThenDeletes(t *testing.T) {
	f := newFixture(t, nil)
	seedLedger(f)

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteAll))

	warn := f.api.lastText(t)
	if !strings.Contains(warn, "PERINGATAN") {
		t.Fatalf("warning missing, got:\n%s", warn)
	}
	if len(f.rows.rows) != 4 {
		t.Fatal("nothing should be deleted before confirmation")
	}

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackConfirmDeleteAll))

	if len(f.rows.rows) != 1 {
		t.Fatalf("ledger has %d rows, want only the other user's row", len(f.rows.rows))
	}
	if f.rows.rows[0].OwnerID != 42 {
		t.Error("other users' rows must survive a delete-all")
	}
	if got := f.api.lastText(t); !strings.Contains(got, "Total 3 transaksi telah dihapus") {
		t.Errorf("summary missing, got:\n%s", got)
	}
}

func TestDeleteMenuCancel(t *testing.T) {
	f := newFixture(t, nil)
	f.contexts.Save(testUserID, convo.Context{DeletePhase: convo.DeleteAwaitingStart})

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteCancel))

	if got := f.api.lastText(t); got != deleteCanceledText {
		t.Errorf("reply = %q, want cancel text", got)
	}
	if uc := f.contexts.Load(testUserID); uc.DeletePhase != convo.DeleteIdle {
		t.Error("cancel should clear the delete flow")
	}
}

func TestDeleteByDateFlow(t *testing.T) {
	f := newFixture(t, nil)
	seedLedger(f)

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackDeleteDate))
	if got := f.api.lastText(t); !strings.Contains(got, "Masukkan tanggal awal") {
		t.Fatalf("start prompt missing, got:\n%s", got)
	}
	if f.contexts.Load(testUserID).DeletePhase != convo.DeleteAwaitingStart {
		t.Fatal("phase should wait for the start date")
	}

	handleText(f, testUserID, 2, "bukan tanggal")
	if got := f.api.lastText(t); got != invalidDateText {
		t.Errorf("reply = %q, want invalid date text", got)
	}
	if f.contexts.Load(testUserID).DeletePhase != convo.DeleteAwaitingStart {
		t.Error("invalid input should keep waiting for the start date")
	}

	handleText(f, testUserID, 3, "2025-08-05")
	if got := f.api.lastText(t); got != deleteEndDateText {
		t.Errorf("reply = %q, want end date prompt", got)
	}
	uc := f.contexts.Load(testUserID)
	if uc.DeletePhase != convo.DeleteAwaitingEnd {
		t.Fatal("phase should wait for the end date")
	}
	if uc.DeleteStart != (civil.Date{Year: 2025, Month: 8, Day: 5}) {
		t.Errorf("DeleteStart = %v", uc.DeleteStart)
	}

	handleText(f, testUserID, 4, "2025-08-01")
	if got := f.api.lastText(t); got != endBeforeStartText {
		t.Errorf("reply = %q, want end-before-start text", got)
	}

	handleText(f, testUserID, 5, "2025-08-15")
	confirm := f.api.lastText(t)
	if !strings.Contains(confirm, "Anda akan menghapus 1 transaksi") {
		t.Fatalf("confirmation missing, got:\n%s", confirm)
	}
	uc = f.contexts.Load(testUserID)
	if uc.DeletePhase != convo.DeleteIdle || len(uc.DeleteMatches) != 1 {
		t.Fatalf("context = %+v, want one match staged", uc)
	}

	f.bot.HandleUpdate(context.Background(), callbackUpdate(testUserID, callbackConfirmDeleteDate))

	if len(f.rows.rows) != 3 {
		t.Fatalf("ledger has %d rows, want 3", len(f.rows.rows))
	}
	for _, r := range f.rows.rows {
		if r.ID == "r2" {
			t.Error("the in-range row should be gone")
		}
	}
	for _, want := range []string{"r1", "r3", "r4"} {
		found := false
		for _, r := range f.rows.rows {
			if r.ID == want {
				found = true
			}
		}
		if !found {
			t.Errorf("row %s should survive: out of range or another owner", want)
		}
	}
	if got := f.api.lastText(t); !strings.Contains(got, "Total 1 transaksi telah dihapus") {
		t.Errorf("summary missing, got:\n%s", got)
	}
	if uc := f.contexts.Load(testUserID); len(uc.DeleteMatches) != 0 {
		t.Error("matches should be cleared after the deletion")
	}
}

func TestDeleteByDateCancelWord(t *testing.T) {
	for _, word := range []string{"batal", "Cancel", "BATALKAN"} {
		t.Run(word, func(t *testing.T) {
			f := newFixture(t, nil)
			f.contexts.Save(testUserID, convo.Context{DeletePhase: convo.DeleteAwaitingStart})

			handleText(f, testUserID, 2, word)

			if got := f.api.lastText(t); got != dateDeleteCanceledText {
				t.Errorf("reply = %q, want cancel text", got)
			}
			if uc := f.contexts.Load(testUserID); uc.DeletePhase != convo.DeleteIdle {
				t.Error("cancel word should clear the delete flow")
			}
		})
	}
}

func TestDeleteByDateNoMatches(t *testing.T) {
	f := newFixture(t, nil)
	seedLedger(f)
	f.contexts.Save(testUserID, convo.Context{
		DeletePhase: convo.DeleteAwaitingEnd,
		DeleteStart: civil.Date{Year: 2023, Month: 1, Day: 1},
	})

	handleText(f, testUserID, 2, "2023-12-31")

	if got := f.api.lastText(t); got != noRowsInRangeText {
		t.Errorf("reply = %q, want no-rows text", got)
	}
	if uc := f.contexts.Load(testUserID); uc.DeletePhase != convo.DeleteIdle {
		t.Error("empty range should end the flow")
	}
	if len(f.rows.rows) != 4 {
		t.Error("nothing should be deleted")
	}
}

func TestRowButtonLabelTruncates(t *testing.T) {
	row := seedRow("r1", civil.Date{Year: 2025, Month: 8, Day: 20}, -1234567,
		"Belanja", strings.Repeat("panjang sekali ", 10), testUserID)

	label := rowButtonLabel(row)

	if got := len([]rune(label)); got > 64 {
		t.Errorf("label is %d runes, must fit Telegram's 64-rune limit", got)
	}
	if !strings.Contains(label, "...") {
		t.Error("long descriptions should be truncated with an ellipsis")
	}
	if !strings.Contains(label, "1.234.567") {
		t.Errorf("amount missing from label %q", label)
	}
}
