package extract

import (
	"testing"

	"cloud.google.com/go/civil"

	"duitbot/internal/classify"
	"duitbot/internal/domain"
)

func TestParseLocal(t *testing.T) {
	cls := classify.New()
	anchor := civil.Date{Year: 2025, Month: 8, Day: 20}

	tests := []struct {
		name          string
		text          string
		wantAmount    float64
		wantHasAmount bool
		wantType      domain.TransactionType
		wantCategory  string
		wantDesc      string
		wantDate      civil.Date
	}{
		{
			name:          "expense with suffix amount",
			text:          "beli kopi 25rb",
			wantAmount:    -25000,
			wantHasAmount: true,
			wantType:      domain.TypeExpense,
			wantCategory:  "Makanan",
			wantDesc:      "beli kopi",
			wantDate:      anchor,
		},
		{
			name:          "income keeps positive sign",
			text:          "terima gaji 5jt",
			wantAmount:    5000000,
			wantHasAmount: true,
			wantType:      domain.TypeIncome,
			wantCategory:  "Gaji",
			wantDesc:      "terima gaji",
			wantDate:      anchor,
		},
		{
			name:          "yesterday moves the date",
			text:          "makan siang 50000 kemarin",
			wantAmount:    -50000,
			wantHasAmount: true,
			wantType:      domain.TypeExpense,
			wantCategory:  "Makanan",
			wantDesc:      "makan siang kemarin",
			wantDate:      civil.Date{Year: 2025, Month: 8, Day: 19},
		},
		{
			name:          "no amount",
			text:          "makan siang",
			wantHasAmount: false,
			wantType:      domain.TypeExpense,
			wantCategory:  "Makanan",
			wantDesc:      "makan siang",
			wantDate:      anchor,
		},
		{
			name:          "amount only falls back to original text",
			text:          "25rb",
			wantAmount:    -25000,
			wantHasAmount: true,
			wantType:      domain.TypeExpense,
			wantCategory:  "Lainnya",
			wantDesc:      "25rb",
			wantDate:      anchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseLocal(cls, tt.text, anchor)

			if c.HasAmount != tt.wantHasAmount {
				t.Fatalf("HasAmount = %v, want %v", c.HasAmount, tt.wantHasAmount)
			}
			if c.HasAmount && c.Amount != tt.wantAmount {
				t.Errorf("Amount = %v, want %v", c.Amount, tt.wantAmount)
			}
			if c.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", c.Type, tt.wantType)
			}
			if c.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", c.Category, tt.wantCategory)
			}
			if c.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", c.Description, tt.wantDesc)
			}
			if c.Date != tt.wantDate {
				t.Errorf("Date = %v, want %v", c.Date, tt.wantDate)
			}
		})
	}
}

// ParseLocal must fill every non-amount field for any non-empty input.
func TestParseLocalNeverEmpty(t *testing.T) {
	cls := classify.New()
	anchor := civil.Date{Year: 2025, Month: 8, Day: 20}

	inputs := []string{"x", "???", "beli", "kemarin", "70k", "sarapan bubur ayam 15 ribu"}
	for _, text := range inputs {
		c := ParseLocal(cls, text, anchor)
		if c.Category == "" {
			t.Errorf("ParseLocal(%q): empty category", text)
		}
		if c.Description == "" {
			t.Errorf("ParseLocal(%q): empty description", text)
		}
		if !c.Date.IsValid() {
			t.Errorf("ParseLocal(%q): invalid date %v", text, c.Date)
		}
		if c.Type != domain.TypeIncome && c.Type != domain.TypeExpense {
			t.Errorf("ParseLocal(%q): bad type %q", text, c.Type)
		}
	}
}
