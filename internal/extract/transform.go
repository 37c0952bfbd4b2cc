package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"duitbot/internal/dates"
	"duitbot/internal/domain"
)

// decodeObject parses cleaned model output into a generic map.
func decodeObject(raw string) (map[string]interface{}, error) {
	clean := CleanModelJSON(raw)
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal model JSON: %w", err)
	}
	return payload, nil
}

// reconcile merges the model payload with the local parse into a complete
// candidate. Model values win where present; gaps are filled from the local
// result so the candidate is never half-empty.
func reconcile(payload map[string]interface{}, local Candidate, today civil.Date) Candidate {
	var c Candidate

	// Date: the model's resolved date, else its free-text time context
	// resolved locally, else today.
	date, hasDate := getDateField(payload, "date")
	if !hasDate {
		if tc := getStringField(payload, "time_context"); tc != "" {
			date, hasDate = dates.ResolveContext(tc, today)
		}
	}
	if !hasDate {
		date = today
	}
	c.Date = date

	typeStr := getStringField(payload, "transaction_type")

	// Amount: the model's value when present. When the model found none,
	// borrow the local parse and its type if the model omitted that too.
	if amt, ok := getFloat64Field(payload, "amount"); ok {
		c.Amount = amt
		c.HasAmount = true
	} else if local.HasAmount {
		c.Amount = local.Amount
		c.HasAmount = true
		if typeStr == "" {
			typeStr = string(local.Type)
		}
	}

	// Final sign follows the final type: negative for expense, positive
	// for income, whichever path the amount came from.
	c.Type = domain.ParseTransactionType(typeStr)
	if c.HasAmount {
		c.Amount = c.Type.Signed(c.Amount)
	}

	c.Category = getStringField(payload, "category")
	if c.Category == "" {
		c.Category = local.Category
	}

	c.Description = getStringField(payload, "description")
	if c.Description == "" {
		c.Description = local.Description
	}

	return c
}

// Model fields may be absent, null, or carry numbers as strings. These
// helpers coerce them before anything enters the typed model.

func getStringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func getFloat64Field(m map[string]interface{}, key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int: // unlikely from encoding/json, but harmless to support
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// getDateField reads a YYYY-MM-DD string field. An unparseable value counts
// as absent rather than poisoning the candidate.
func getDateField(m map[string]interface{}, key string) (civil.Date, bool) {
	s := getStringField(m, key)
	if s == "" {
		return civil.Date{}, false
	}
	t, err := time.Parse(dates.Format, s)
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}
