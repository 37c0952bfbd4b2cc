package classify

import (
	"os"
	"path/filepath"
	"testing"

	"duitbot/internal/domain"
)

func TestType(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want domain.TransactionType
	}{
		{"plain purchase", "beli kopi 25rb", domain.TypeExpense},
		{"salary", "terima gaji 5 juta", domain.TypeIncome},
		{"bonus", "dapat bonus thr", domain.TypeIncome},
		{"bill", "bayar listrik 200rb", domain.TypeExpense},
		{"refund", "refund dari tokopedia 150k", domain.TypeIncome},
		{"no cue defaults to expense", "makan siang 25rb", domain.TypeExpense},
		{"mixed cues default to expense", "dapat uang buat beli buku", domain.TypeExpense},
		{"transfer in", "transfer dari ibu 500rb", domain.TypeIncome},
		{"transfer out", "transfer ke adik 500rb", domain.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Type(tt.text); got != tt.want {
				t.Errorf("Type(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"food", "makan siang di warung", "Makanan"},
		{"ride hailing", "naik grab ke kantor 30rb", "Transportasi"},
		{"minimart", "belanja di indomaret 150.000", "Belanja"},
		{"electricity", "bayar listrik 200rb", "Tagihan"},
		{"medicine loses to earlier shopping rule", "beli obat 50rb", "Belanja"},
		{"movie", "nonton film 45k", "Hiburan"},
		{"tuition", "bayar spp sekolah", "Tagihan"},
		{"donation", "donasi masjid 100rb", "Iuran"},
		{"salary", "gaji bulan agustus", "Gaji"},
		{"holiday bonus", "thr lebaran", "Bonus"},
		{"unmatched", "sedekah subuh", "Lainnya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Category(tt.text); got != tt.want {
				t.Errorf("Category(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCategoryMatchesCaseInsensitively(t *testing.T) {
	c := New()
	if got := c.Category("Beli Kopi Di INDOMARET"); got != "Makanan" {
		t.Errorf("Category = %q, want Makanan (kopi rule fires first)", got)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
rules:
  - category: langganan
    keywords: [netflix, spotify, icloud]
  - category: makanan
    keywords: [makan, kopi]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}

	if got := c.Category("bayar netflix 54rb"); got != "Langganan" {
		t.Errorf("Category = %q, want Langganan", got)
	}
	// Cue lists were not overridden, so the defaults still apply.
	if got := c.Type("terima gaji"); got != domain.TypeIncome {
		t.Errorf("Type = %v, want income", got)
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("FromFile on missing path: expected error, got nil")
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"makanan", "Makanan"},
		{"GAJI", "Gaji"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
