package classify

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"duitbot/internal/domain"
)

// DefaultCategory is returned when no rule matches.
const DefaultCategory = "Lainnya"

// Rule maps a category name onto the cue words that select it. Rules are
// tested in declaration order and the first hit wins, so broader rules
// belong later in the list.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Classifier decides transaction type and category from free text.
type Classifier struct {
	incomeCues  []string
	expenseCues []string
	rules       []Rule
}

var defaultIncomeCues = []string{
	"terima", "dapat", "pemasukan", "masuk", "diterima",
	"gaji", "bonus", "komisi", "dividen", "bunga", "hadiah",
	"warisan", "penjualan", "refund", "kembalian", "cashback",
	"dibayar oleh", "transfer dari", "kiriman dari", "diberi", "dikasih",
}

var defaultExpenseCues = []string{
	"beli", "bayar", "belanja", "pengeluaran", "keluar", "dibayar",
	"membeli", "memesan", "berlangganan", "sewa", "booking",
	"makanan", "transportasi", "bensin", "pulsa", "tagihan", "biaya", "iuran",
	"transfer ke", "kirim ke", "buat", "untuk",
}

var defaultRules = []Rule{
	{Category: "makanan", Keywords: []string{"makan", "food", "resto", "warung", "cafe", "kopi", "snack", "jajan"}},
	{Category: "transportasi", Keywords: []string{"bensin", "parkir", "tol", "ojek", "grab", "gojek", "taxi", "bus", "kereta"}},
	{Category: "belanja", Keywords: []string{"belanja", "beli", "shopping", "toko", "mart", "alfamart", "indomaret"}},
	{Category: "tagihan", Keywords: []string{"tagihan", "listrik", "air", "pdam", "internet", "wifi", "pulsa", "paket data"}},
	{Category: "kesehatan", Keywords: []string{"obat", "dokter", "rumah sakit", "klinik", "apotek", "vitamin"}},
	{Category: "hiburan", Keywords: []string{"film", "bioskop", "game", "streaming", "netflix", "spotify"}},
	{Category: "pendidikan", Keywords: []string{"buku", "kursus", "les", "sekolah", "kuliah", "spp"}},
	{Category: "iuran", Keywords: []string{"iuran", "arisan", "sumbangan", "donasi", "zakat", "infaq"}},
	{Category: "gaji", Keywords: []string{"gaji", "salary", "upah"}},
	{Category: "bonus", Keywords: []string{"bonus", "thr", "insentif"}},
}

// New creates a classifier with the built-in Indonesian vocabulary.
func New() *Classifier {
	return build(defaultIncomeCues, defaultExpenseCues, defaultRules)
}

// rulesFile is the YAML shape accepted by FromFile. Sections left empty
// fall back to the built-in vocabulary.
type rulesFile struct {
	IncomeCues  []string `yaml:"income_cues"`
	ExpenseCues []string `yaml:"expense_cues"`
	Rules       []Rule   `yaml:"rules"`
}

// FromFile creates a classifier from a YAML rules file.
func FromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	income := f.IncomeCues
	if len(income) == 0 {
		income = defaultIncomeCues
	}
	expense := f.ExpenseCues
	if len(expense) == 0 {
		expense = defaultExpenseCues
	}
	rules := f.Rules
	if len(rules) == 0 {
		rules = defaultRules
	}
	return build(income, expense, rules), nil
}

// build normalizes all cue words to lowercase so matching is
// case-insensitive regardless of how the rules were written.
func build(income, expense []string, rules []Rule) *Classifier {
	c := &Classifier{
		incomeCues:  lowerAll(income),
		expenseCues: lowerAll(expense),
		rules:       make([]Rule, len(rules)),
	}
	for i, r := range rules {
		c.rules[i] = Rule{Category: r.Category, Keywords: lowerAll(r.Keywords)}
	}
	return c
}

// Type classifies text as income or expense. Income is chosen only when an
// income cue is present and no expense cue is, so ambiguous text is
// recorded as an expense rather than inflating income.
func (c *Classifier) Type(text string) domain.TransactionType {
	lower := strings.ToLower(text)
	if containsAny(lower, c.incomeCues) && !containsAny(lower, c.expenseCues) {
		return domain.TypeIncome
	}
	return domain.TypeExpense
}

// Category returns the display name of the first rule whose keywords match,
// or DefaultCategory when none do.
func (c *Classifier) Category(text string) string {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if containsAny(lower, r.Keywords) {
			return Capitalize(r.Category)
		}
	}
	return DefaultCategory
}

// Capitalize uppercases the first rune and lowercases the rest, turning a
// rule name like "makanan" into the display form "Makanan".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
