package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"duitbot/internal/convo"
	"duitbot/internal/logger"
)

// sendReply renders a machine reply into the chat, sweeping the flow's
// intermediate messages when the reply reports a recorded transaction.
// Prompt messages without buttons are tracked so a later sweep removes
// them; button messages are edited in place and must survive.
func (b *Bot) sendReply(ctx context.Context, chatID, userID int64, r convo.Reply) {
	sent, ok := b.send(ctx, chatID, r)
	if ok && len(r.Choices) == 0 && !r.Recorded {
		b.flows.add(userID, chatID, sent.MessageID)
	}
	if r.Recorded {
		b.sweep(ctx, userID)
	}
}

// send delivers a reply, degrading Markdown to plain text and finally to a
// minimal fixed message so the user is never left without a response.
func (b *Bot) send(ctx context.Context, chatID int64, r convo.Reply) (tgbotapi.Message, bool) {
	log := logger.FromContext(ctx)

	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if kb, ok := inlineKeyboard(r.Choices); ok {
		msg.ReplyMarkup = kb
	}

	sent, err := b.api.Send(msg)
	if err == nil {
		return sent, true
	}
	if r.Markdown {
		log.Warn().Err(err).Msg("markdown send rejected, retrying plain")
		msg.ParseMode = ""
		if sent, err = b.api.Send(msg); err == nil {
			return sent, true
		}
	}

	log.Error().Err(err).Int64("chat_id", chatID).Msg("send failed, falling back to minimal message")
	sent, err = b.api.Send(tgbotapi.NewMessage(chatID, minimalFallbackText))
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("minimal message send failed")
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) sendPlain(ctx context.Context, chatID int64, text string) {
	b.send(ctx, chatID, convo.Reply{Text: text})
}

// edit rewrites a previously sent message in place, with the same Markdown
// degradation as send.
func (b *Bot) edit(ctx context.Context, chatID int64, messageID int, r convo.Reply) {
	log := logger.FromContext(ctx)

	cfg := tgbotapi.NewEditMessageText(chatID, messageID, r.Text)
	if r.Markdown {
		cfg.ParseMode = tgbotapi.ModeMarkdown
	}
	if kb, ok := inlineKeyboard(r.Choices); ok {
		cfg.ReplyMarkup = &kb
	}

	_, err := b.api.Send(cfg)
	if err == nil {
		return
	}
	if r.Markdown {
		log.Warn().Err(err).Msg("markdown edit rejected, retrying plain")
		cfg.ParseMode = ""
		if _, err = b.api.Send(cfg); err == nil {
			return
		}
	}

	log.Error().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).
		Msg("edit failed, falling back to minimal message")
	cfg = tgbotapi.NewEditMessageText(chatID, messageID, minimalFallbackText)
	if _, err = b.api.Send(cfg); err != nil {
		log.Error().Err(err).Msg("minimal edit failed")
	}
}

func inlineKeyboard(choices [][]convo.Choice) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(choices) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, row := range choices {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, c := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📝 Catat"),
			tgbotapi.NewKeyboardButton("📊 Laporan"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📋 Sheet"),
			tgbotapi.NewKeyboardButton("🗑️ Hapus"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// tracker remembers the message IDs of an in-flight recording flow per
// user, so a successful recording can sweep its inputs and prompts away.
type tracker struct {
	mu    sync.Mutex
	flows map[int64]*flow
}

type flow struct {
	chatID int64
	ids    []int
}

func newTracker() *tracker {
	return &tracker{flows: make(map[int64]*flow)}
}

func (t *tracker) add(userID, chatID int64, messageID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.flows[userID]
	if !ok || f.chatID != chatID {
		f = &flow{chatID: chatID}
		t.flows[userID] = f
	}
	f.ids = append(f.ids, messageID)
}

func (t *tracker) drain(userID int64) (chatID int64, ids []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.flows[userID]
	if !ok {
		return 0, nil
	}
	delete(t.flows, userID)
	return f.chatID, f.ids
}

// MessageDeleter adapts the Telegram API to housekeep.Deleter.
type MessageDeleter struct {
	API API
}

func (d MessageDeleter) DeleteMessage(chatID int64, messageID int) error {
	if _, err := d.API.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}
