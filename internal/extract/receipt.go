package extract

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"duitbot/internal/dates"
	"duitbot/internal/domain"
	"duitbot/internal/logger"
)

// ErrBusy reports that the vision service exhausted its retries on rate
// limits. Callers show a try-again-later message with a manual-entry hint
// instead of a generic failure.
var ErrBusy = errors.New("vision service busy")

// ExtractReceipt reads a receipt photo into a structured extraction.
func (e *Extractor) ExtractReceipt(ctx context.Context, image []byte, mimeType string) (*domain.ReceiptExtraction, error) {
	log := logger.FromContext(ctx)
	today := dates.Today(e.loc)

	prompt := buildReceiptPrompt(today)
	res := CallWithRetry(ctx, log, VisionRetryPolicy, func(ctx context.Context) (string, error) {
		return e.completer.CompleteVision(ctx, prompt, image, mimeType)
	})
	switch res.Outcome {
	case Succeeded:
	case ExhaustedTransient:
		return nil, fmt.Errorf("analyzing receipt: %w", ErrBusy)
	default:
		return nil, fmt.Errorf("analyzing receipt: %w", res.Err)
	}

	payload, err := decodeObject(res.Text)
	if err != nil {
		log.Error().Err(err).Msg("receipt response was not valid JSON")
		return nil, fmt.Errorf("analyzing receipt: %w", err)
	}

	return receiptFromPayload(payload, today), nil
}

// receiptFromPayload coerces the model's receipt JSON into the typed form,
// filling in the date and the total when the model left them out.
func receiptFromPayload(payload map[string]interface{}, today civil.Date) *domain.ReceiptExtraction {
	r := &domain.ReceiptExtraction{
		StoreName:            getStringField(payload, "store_name"),
		Time:                 getStringField(payload, "receipt_time"),
		PaymentMethod:        getStringField(payload, "payment_method"),
		SuggestedDescription: getStringField(payload, "suggested_description"),
		Type:                 domain.TypeExpense,
	}

	if d, ok := getDateField(payload, "receipt_date"); ok {
		r.Date = d
	} else {
		r.Date = today
	}

	if items, ok := payload["items"].([]interface{}); ok {
		for _, raw := range items {
			obj, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			item := domain.ReceiptItem{
				Description: getStringField(obj, "description"),
				Category:    getStringField(obj, "category"),
				Quantity:    1,
			}
			if q, ok := getFloat64Field(obj, "quantity"); ok && q > 0 {
				item.Quantity = q
			}
			if v, ok := getFloat64Field(obj, "unit_price"); ok {
				item.UnitPrice = v
			}
			if v, ok := getFloat64Field(obj, "amount"); ok {
				item.Amount = v
			}
			r.Items = append(r.Items, item)
		}
	}

	if tax, ok := getFloat64Field(payload, "tax"); ok {
		r.Tax = tax
	}
	if disc, ok := getFloat64Field(payload, "discount"); ok {
		r.Discount = disc
	}

	if total, ok := getFloat64Field(payload, "total_amount"); ok && total != 0 {
		r.TotalAmount = total
	} else if len(r.Items) > 0 {
		r.TotalAmount = r.ItemsTotal()
	}

	return r
}
