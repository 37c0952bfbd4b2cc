package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"duitbot/internal/convo"
	"duitbot/internal/domain"
	"duitbot/internal/logger"
)

// Callback payloads owned by the bot layer. The conversation machine's own
// payloads live in convo.
const (
	callbackReceiptTotal      = "receipt_total"
	callbackReceiptItems      = "receipt_items"
	callbackReceiptCategories = "receipt_categories"
	callbackReceiptCancel     = "receipt_cancel"

	callbackDeleteLast     = "delete_last"
	callbackDeleteSpecific = "delete_specific"
	callbackDeleteDate     = "delete_date"
	callbackDeleteAll      = "delete_all"
	callbackDeleteCancel   = "delete_cancel"

	callbackConfirmDeleteAll  = "confirm_delete_all"
	callbackConfirmDeleteDate = "confirm_delete_date"

	// del_specific_<i> selects row i of the stored delete choices.
	callbackDeleteRowPrefix = "del_specific_"
)

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	log := logger.FromContext(ctx)
	userID := q.From.ID

	if !b.authorized(userID) {
		alert := tgbotapi.NewCallbackWithAlert(q.ID, unauthorizedText)
		if _, err := b.api.Request(alert); err != nil {
			log.Debug().Err(err).Msg("answer callback failed")
		}
		return
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		log.Debug().Err(err).Msg("answer callback failed")
	}

	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	messageID := q.Message.MessageID

	switch q.Data {
	case convo.CallbackTypeIncome:
		b.editReply(ctx, chatID, messageID, userID, b.machine.ChooseType(userID, domain.TypeIncome))
	case convo.CallbackTypeExpense:
		b.editReply(ctx, chatID, messageID, userID, b.machine.ChooseType(userID, domain.TypeExpense))
	case convo.CallbackConfirmYes, convo.CallbackConfirmAllYes:
		b.editReply(ctx, chatID, messageID, userID, b.machine.Confirm(ctx, userID))
	case convo.CallbackConfirmEdit:
		b.editReply(ctx, chatID, messageID, userID, b.machine.Edit(userID))
	case convo.CallbackConfirmCancel:
		b.editReply(ctx, chatID, messageID, userID, b.machine.Cancel(userID))
	case convo.CallbackConfirmAllNo:
		b.editReply(ctx, chatID, messageID, userID, b.machine.CancelBatch(userID))

	case callbackReceiptTotal, callbackReceiptItems, callbackReceiptCategories, callbackReceiptCancel:
		b.handleReceiptCallback(ctx, chatID, messageID, userID, q.Data)

	case callbackDeleteLast, callbackDeleteSpecific, callbackDeleteDate, callbackDeleteAll, callbackDeleteCancel,
		callbackConfirmDeleteAll, callbackConfirmDeleteDate:
		b.handleDeleteCallback(ctx, chatID, messageID, userID, q.Data)

	default:
		if strings.HasPrefix(q.Data, callbackDeleteRowPrefix) {
			index, err := strconv.Atoi(strings.TrimPrefix(q.Data, callbackDeleteRowPrefix))
			if err != nil {
				log.Warn().Str("data", q.Data).Msg("malformed delete-row callback")
				return
			}
			b.deleteChosenRow(ctx, chatID, messageID, userID, index)
			return
		}
		log.Debug().Str("data", q.Data).Msg("ignoring unknown callback")
	}
}

// editReply rewrites the button message with a machine reply, sweeping the
// flow when the reply reports a recorded transaction.
func (b *Bot) editReply(ctx context.Context, chatID int64, messageID int, userID int64, r convo.Reply) {
	b.edit(ctx, chatID, messageID, r)
	if r.Recorded {
		b.sweep(ctx, userID)
	}
}
