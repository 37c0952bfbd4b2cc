package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// rowValues flattens a row into the worksheet column order. Values are
// written RAW so strings stay literal strings and round-trip unchanged.
func rowValues(r Row) []interface{} {
	return []interface{}{
		r.Date.String(),
		r.Amount,
		r.Category,
		r.Description,
		strconv.FormatInt(r.OwnerID, 10),
		r.Timestamp.Format(TimestampFormat),
		r.ID,
	}
}

// parseRow decodes one worksheet row. Decoding is best-effort: malformed
// cells become zero values instead of dropping the row, so positions stay
// aligned with the sheet. DeleteAt depends on that alignment.
func parseRow(values []interface{}) Row {
	var r Row
	if d, err := civil.ParseDate(cellString(values, 0)); err == nil {
		r.Date = d
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cellString(values, 1), ",", ""), 64); err == nil {
		r.Amount = f
	}
	r.Category = cellString(values, 2)
	r.Description = cellString(values, 3)
	if id, err := strconv.ParseInt(cellString(values, 4), 10, 64); err == nil {
		r.OwnerID = id
	} else if f, err := strconv.ParseFloat(cellString(values, 4), 64); err == nil {
		r.OwnerID = int64(f)
	}
	if ts, err := time.Parse(TimestampFormat, cellString(values, 5)); err == nil {
		r.Timestamp = ts
	}
	// Rows from before record IDs have only six columns.
	r.ID = cellString(values, 6)
	return r
}

func cellString(values []interface{}, i int) string {
	if i >= len(values) || values[i] == nil {
		return ""
	}
	if s, ok := values[i].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(values[i]))
}
