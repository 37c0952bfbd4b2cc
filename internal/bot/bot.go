// Package bot adapts the transaction pipeline to Telegram: one long-poll
// loop dispatching messages, photos and inline-button callbacks onto the
// conversation machine, the receipt flow and the delete flows.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"duitbot/internal/archive"
	"duitbot/internal/convo"
	"duitbot/internal/domain"
	"duitbot/internal/housekeep"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
)

// API is the slice of the Telegram client the bot uses. Satisfied by
// *tgbotapi.BotAPI; tests substitute a recording mock.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// ReceiptReader turns a receipt photo into a structured extraction.
type ReceiptReader interface {
	ExtractReceipt(ctx context.Context, image []byte, mimeType string) (*domain.ReceiptExtraction, error)
	Today() civil.Date
}

// Prefs exposes the per-user settings the bot reads and toggles.
type Prefs interface {
	AutoDelete(userID int64) bool
	ToggleAutoDelete(userID int64) (bool, error)
}

// Sweeper schedules recorded chat messages for deferred deletion.
type Sweeper interface {
	Enqueue(ctx context.Context, req housekeep.Request) error
}

// Options wires a Bot to its collaborators.
type Options struct {
	API           API
	Machine       *convo.Machine
	Contexts      *convo.Store
	Receipts      ReceiptReader
	Store         ledger.Store
	Prefs         Prefs
	Sweeper       Sweeper
	Archiver      archive.Archiver
	SpreadsheetID string
	// AllowedUsers is the authorization allow-list. Empty allows everyone.
	AllowedUsers []int64
}

// Bot routes Telegram updates. Updates are handled sequentially from one
// loop, so per-user conversation state is never mutated concurrently.
type Bot struct {
	api      API
	machine  *convo.Machine
	contexts *convo.Store
	receipts ReceiptReader
	store    ledger.Store
	prefs    Prefs
	sweeper  Sweeper
	archiver archive.Archiver

	spreadsheetID string
	allowed       map[int64]bool

	// fetch downloads a Telegram file URL. Replaced in tests.
	fetch func(ctx context.Context, url string) ([]byte, error)

	flows *tracker
}

// New builds a bot. Nil Archiver defaults to the no-op archiver.
func New(opts Options) *Bot {
	allowed := make(map[int64]bool, len(opts.AllowedUsers))
	for _, id := range opts.AllowedUsers {
		allowed[id] = true
	}
	archiver := opts.Archiver
	if archiver == nil {
		archiver = archive.Nop{}
	}
	return &Bot{
		api:           opts.API,
		machine:       opts.Machine,
		contexts:      opts.Contexts,
		receipts:      opts.Receipts,
		store:         opts.Store,
		prefs:         opts.Prefs,
		sweeper:       opts.Sweeper,
		archiver:      archiver,
		spreadsheetID: opts.SpreadsheetID,
		allowed:       allowed,
		fetch:         fetchURL,
		flows:         newTracker(),
	}
}

// Commands returns the command list registered with Telegram at startup.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Mulai bot dan lihat menu utama"},
		{Command: "catat", Description: "Catat transaksi baru"},
		{Command: "laporan", Description: "Lihat laporan keuangan"},
		{Command: "sheet", Description: "Dapatkan link Google Sheet"},
		{Command: "hapus", Description: "Hapus data keuangan"},
		{Command: "menu", Description: "Tampilkan menu utama"},
		{Command: "help", Description: "Panduan penggunaan bot"},
		{Command: "hapuspesan", Description: "Toggle auto-delete pesan"},
		{Command: "me", Description: "Tampilkan user ID Anda"},
	}
}

// Run consumes updates until ctx ends or the channel closes. Each update is
// handled to completion before the next one is read.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	log := logger.FromContext(ctx)
	log.Info().Msg("bot update loop started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("bot update loop stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				log.Warn().Msg("update channel closed")
				return
			}
			b.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate routes one update. It never panics out to the loop; handler
// failures are logged and answered with the generic error text.
func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("update handler panicked")
		}
	}()

	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if !b.authorized(userID) {
		b.sendPlain(ctx, chatID, unauthorizedText)
		return
	}

	if msg.IsCommand() {
		// Commands always win over pending conversational state.
		b.machine.Abort(userID)
		b.flows.drain(userID)
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	// Reply-keyboard shortcuts behave like their commands, including the
	// abort of whatever the conversation was waiting for.
	if cmd, ok := keyboardShortcuts[text]; ok {
		b.machine.Abort(userID)
		b.flows.drain(userID)
		b.dispatchCommand(ctx, msg, cmd)
		return
	}

	if phase := b.contexts.Load(userID).DeletePhase; phase != convo.DeleteIdle {
		b.handleDeleteDate(ctx, chatID, userID, text)
		return
	}

	b.flows.add(userID, chatID, msg.MessageID)
	reply := b.machine.HandleText(ctx, userID, text)
	b.sendReply(ctx, chatID, userID, reply)
}

var keyboardShortcuts = map[string]string{
	"📝 Catat":   "catat",
	"📊 Laporan": "laporan",
	"📋 Sheet":   "sheet",
	"🗑️ Hapus":  "hapus",
}

func (b *Bot) authorized(userID int64) bool {
	return len(b.allowed) == 0 || b.allowed[userID]
}

// sweep schedules the flow's intermediate messages for deletion after a
// successful recording. The confirmation message itself is never included,
// so the user keeps the category summary.
func (b *Bot) sweep(ctx context.Context, userID int64) {
	chatID, ids := b.flows.drain(userID)
	if len(ids) == 0 || b.sweeper == nil {
		return
	}
	req := housekeep.Request{
		ChatID:     chatID,
		UserID:     userID,
		MessageIDs: ids,
		Delay:      housekeep.DefaultDelay,
	}
	if err := b.sweeper.Enqueue(ctx, req); err != nil {
		lg := logger.FromContext(ctx)
		lg.Warn().Err(err).Int64("user_id", userID).Msg("enqueue message sweep failed")
	}
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file body: %w", err)
	}
	return data, nil
}
