package notionsync

import (
	"strconv"
	"time"

	"github.com/jomei/notionapi"

	"duitbot/internal/domain"
	"duitbot/internal/ledger"
)

// Property names of the Notion transactions database. The Record ID column
// carries the sheet row's ID and keeps the mirror idempotent.
const (
	propTitle      = "Description"
	propRecordID   = "Record ID"
	propDate       = "Date"
	propAmount     = "Amount"
	propCategory   = "Category"
	propType       = "Type"
	propOwner      = "Owner"
	propRecordedAt = "Recorded At"
)

// RowProperties converts one ledger row into Notion page properties.
// Optional columns are omitted rather than written empty: Notion rejects
// select options with blank names.
func RowProperties(row ledger.Row) notionapi.Properties {
	props := notionapi.Properties{
		propTitle: notionapi.TitleProperty{
			Title: richText(row.Description),
		},
		propRecordID: notionapi.RichTextProperty{
			RichText: richText(row.ID),
		},
		propAmount: notionapi.NumberProperty{
			Number: row.Amount,
		},
		propType: notionapi.SelectProperty{
			Select: notionapi.Option{Name: domain.TypeForAmount(row.Amount).Label()},
		},
		propOwner: notionapi.RichTextProperty{
			RichText: richText(strconv.FormatInt(row.OwnerID, 10)),
		},
	}

	if row.Date.IsValid() {
		start := notionapi.Date(row.Date.In(time.UTC))
		props[propDate] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &start},
		}
	}
	if row.Category != "" {
		props[propCategory] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: row.Category},
		}
	}
	if !row.Timestamp.IsZero() {
		recorded := notionapi.Date(row.Timestamp)
		props[propRecordedAt] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &recorded},
		}
	}
	return props
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: content},
		},
	}
}

// recordID reads the Record ID property off a queried page. Empty when the
// page predates the mirror or the column is missing.
func recordID(page notionapi.Page) string {
	if prop, ok := page.Properties[propRecordID]; ok {
		if rt, ok := prop.(*notionapi.RichTextProperty); ok && len(rt.RichText) > 0 {
			return rt.RichText[0].PlainText
		}
	}
	return ""
}
