package extract

import (
	"testing"

	"cloud.google.com/go/civil"

	"duitbot/internal/domain"
)

var today = civil.Date{Year: 2025, Month: 8, Day: 20}

func localCandidate() Candidate {
	return Candidate{
		Transaction: domain.Transaction{
			Date:        today,
			Amount:      -25000,
			Type:        domain.TypeExpense,
			Category:    "Makanan",
			Description: "beli kopi",
		},
		HasAmount: true,
	}
}

func TestReconcile_ModelComplete(t *testing.T) {
	payload := map[string]interface{}{
		"amount":           50000.0,
		"category":         "Makanan",
		"description":      "Makan siang",
		"transaction_type": "expense",
		"date":             "2025-08-19",
	}

	c := reconcile(payload, localCandidate(), today)

	if !c.HasAmount {
		t.Fatal("HasAmount = false")
	}
	if c.Amount != -50000 {
		t.Errorf("Amount = %v, want -50000", c.Amount)
	}
	if c.Type != domain.TypeExpense {
		t.Errorf("Type = %v, want expense", c.Type)
	}
	if c.Date != (civil.Date{Year: 2025, Month: 8, Day: 19}) {
		t.Errorf("Date = %v, want 2025-08-19", c.Date)
	}
	if c.Description != "Makan siang" {
		t.Errorf("Description = %q", c.Description)
	}
}

func TestReconcile_IncomeSignPositive(t *testing.T) {
	payload := map[string]interface{}{
		"amount":           -5000000.0,
		"transaction_type": "income",
		"category":         "Gaji",
		"description":      "Gaji Agustus",
		"date":             "2025-08-01",
	}

	c := reconcile(payload, localCandidate(), today)
	if c.Amount != 5000000 {
		t.Errorf("Amount = %v, want 5000000", c.Amount)
	}
	if c.Type != domain.TypeIncome {
		t.Errorf("Type = %v, want income", c.Type)
	}
}

func TestReconcile_BorrowsLocalAmountAndType(t *testing.T) {
	payload := map[string]interface{}{
		"category":    "Makanan",
		"description": "Kopi susu",
	}

	c := reconcile(payload, localCandidate(), today)

	if !c.HasAmount {
		t.Fatal("HasAmount = false, want local amount borrowed")
	}
	if c.Amount != -25000 {
		t.Errorf("Amount = %v, want -25000", c.Amount)
	}
	if c.Type != domain.TypeExpense {
		t.Errorf("Type = %v, want expense borrowed from local parse", c.Type)
	}
	if c.Date != today {
		t.Errorf("Date = %v, want today", c.Date)
	}
}

func TestReconcile_NoAmountAnywhere(t *testing.T) {
	local := localCandidate()
	local.HasAmount = false
	local.Amount = 0

	c := reconcile(map[string]interface{}{}, local, today)
	if c.HasAmount {
		t.Errorf("HasAmount = true, want false (Amount %v)", c.Amount)
	}
}

func TestReconcile_TimeContextResolution(t *testing.T) {
	tests := []struct {
		name    string
		context string
		want    civil.Date
	}{
		{"yesterday", "kemarin", civil.Date{Year: 2025, Month: 8, Day: 19}},
		{"last monday", "senin lalu", civil.Date{Year: 2025, Month: 8, Day: 18}},
		{"unresolvable falls back to today", "tadi pagi", today},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := map[string]interface{}{
				"amount":           10000.0,
				"transaction_type": "expense",
				"time_context":     tt.context,
			}
			c := reconcile(payload, localCandidate(), today)
			if c.Date != tt.want {
				t.Errorf("Date = %v, want %v", c.Date, tt.want)
			}
		})
	}
}

func TestReconcile_GarbageDateTreatedAsAbsent(t *testing.T) {
	payload := map[string]interface{}{
		"amount":           10000.0,
		"transaction_type": "expense",
		"date":             "thirtieth of February",
	}
	c := reconcile(payload, localCandidate(), today)
	if c.Date != today {
		t.Errorf("Date = %v, want today", c.Date)
	}
}

func TestReconcile_DescriptionFallsBackToLocal(t *testing.T) {
	payload := map[string]interface{}{
		"amount":           10000.0,
		"transaction_type": "expense",
	}
	c := reconcile(payload, localCandidate(), today)
	if c.Description != "beli kopi" {
		t.Errorf("Description = %q, want local description", c.Description)
	}
	if c.Category != "Makanan" {
		t.Errorf("Category = %q, want local category", c.Category)
	}
}

func TestGetFloat64Field(t *testing.T) {
	m := map[string]interface{}{
		"float":  70000.0,
		"string": "70000",
		"texty":  "tujuh puluh ribu",
		"null":   nil,
	}

	if v, ok := getFloat64Field(m, "float"); !ok || v != 70000 {
		t.Errorf("float: got %v %v", v, ok)
	}
	if v, ok := getFloat64Field(m, "string"); !ok || v != 70000 {
		t.Errorf("numeric string: got %v %v, want coerced 70000", v, ok)
	}
	if _, ok := getFloat64Field(m, "texty"); ok {
		t.Error("non-numeric string: ok = true, want false")
	}
	if _, ok := getFloat64Field(m, "null"); ok {
		t.Error("null: ok = true, want false")
	}
	if _, ok := getFloat64Field(m, "absent"); ok {
		t.Error("absent: ok = true, want false")
	}
}

func TestGetStringField(t *testing.T) {
	m := map[string]interface{}{
		"s":      "  hello  ",
		"number": 5.0,
		"null":   nil,
	}
	if got := getStringField(m, "s"); got != "hello" {
		t.Errorf("s = %q, want trimmed hello", got)
	}
	if got := getStringField(m, "number"); got != "" {
		t.Errorf("number = %q, want empty", got)
	}
	if got := getStringField(m, "null"); got != "" {
		t.Errorf("null = %q, want empty", got)
	}
}
