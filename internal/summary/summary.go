// Package summary renders the per-category breakdowns the bot appends to
// confirmation messages after recording transactions.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"duitbot/internal/ledger"
	"duitbot/internal/money"
)

// Item is one recorded transaction feeding a summary. The amount's sign is
// ignored; summaries always show magnitudes.
type Item struct {
	Category    string
	Amount      float64
	Description string
}

// FromRows converts ledger rows into summary items, dropping rows whose
// amount failed to parse.
func FromRows(rows []ledger.Row) []Item {
	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		if r.Amount == 0 {
			continue
		}
		items = append(items, Item{Category: r.Category, Amount: r.Amount, Description: r.Description})
	}
	return items
}

const (
	fallbackCategory    = "Lainnya"
	fallbackDescription = "Item"
	maxItemsPerCategory = 10
	defaultEmoji        = "🍜"
)

var categoryEmojis = map[string]string{
	// food
	"Makanan": "🍽️",
	"Protein": "🍗",
	"Sayur":   "🥬",
	"Buah":    "🍍",
	"Minuman": "🥤",
	"Snack":   "🍿",
	"Bumbu":   "🧄",
	"Roti":    "🍞",
	"Nasi":    "🍚",
	"Mie":     "🍜",
	"Daging":  "🥩",
	"Seafood": "🦐",
	"Susu":    "🥛",

	// transport
	"Transportasi": "🚗",
	"Bensin":       "⛽",
	"Parkir":       "🅿️",
	"Ojek":         "🏍️",
	"Bus":          "🚌",
	"Kereta":       "🚊",

	// shopping
	"Belanja":    "🛒",
	"Pakaian":    "👕",
	"Elektronik": "📱",
	"Kosmetik":   "💄",
	"Obat":       "💊",
	"Vitamin":    "💊",

	// bills and services
	"Tagihan":  "🧾",
	"Listrik":  "💡",
	"Air":      "💧",
	"Internet": "📶",
	"Pulsa":    "📞",
	"Gas":      "🔥",

	// entertainment
	"Hiburan":  "🎬",
	"Bioskop":  "🎭",
	"Game":     "🎮",
	"Musik":    "🎵",
	"Olahraga": "⚽",

	// health
	"Kesehatan":   "🏥",
	"Dokter":      "👨‍⚕️",
	"Rumah Sakit": "🏥",

	// education
	"Pendidikan": "📚",
	"Buku":       "📖",
	"Kursus":     "🎓",

	// income
	"Gaji":      "💰",
	"Bonus":     "🎁",
	"Investasi": "📈",
	"Hadiah":    "🎉",
	"Penjualan": "💸",
	"Bisnis":    "💼",

	"Lainnya": "🍜",
}

// Emoji returns the marker shown next to a category heading.
func Emoji(category string) string {
	if e, ok := categoryEmojis[category]; ok {
		return e
	}
	return defaultEmoji
}

type group struct {
	category string
	total    float64
	items    []Item
}

// Render builds the Markdown category summary under the given title.
// Categories are ordered by descending subtotal, items within a category by
// descending amount, capped at ten bullets per category. Returns "" when
// there is nothing to summarize.
func Render(title string, items []Item) string {
	if len(items) == 0 {
		return ""
	}

	var groups []*group
	index := make(map[string]*group)
	for _, it := range items {
		category := it.Category
		if category == "" {
			category = fallbackCategory
		}
		g, ok := index[category]
		if !ok {
			g = &group{category: category}
			index[category] = g
			groups = append(groups, g)
		}
		desc := it.Description
		if desc == "" {
			desc = fallbackDescription
		}
		amount := math.Abs(it.Amount)
		g.total += amount
		g.items = append(g.items, Item{Category: category, Amount: amount, Description: desc})
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].total > groups[j].total })

	// Embedded newlines produce the blank lines between sections once the
	// slice is joined.
	lines := []string{"\n" + title + "\n"}
	var grand float64

	for _, g := range groups {
		lines = append(lines, Emoji(g.category)+" *"+g.category+"*")

		sorted := make([]Item, len(g.items))
		copy(sorted, g.items)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })

		shown := sorted
		if len(shown) > maxItemsPerCategory {
			shown = shown[:maxItemsPerCategory]
		}
		for _, it := range shown {
			lines = append(lines, " • "+cleanDescription(it.Description, g.category)+" = "+money.FormatRupiah(it.Amount))
		}
		if extra := len(g.items) - maxItemsPerCategory; extra > 0 {
			lines = append(lines, fmt.Sprintf(" • ... dan %d item lainnya", extra))
		}

		lines = append(lines, "*Subtotal "+g.category+" = "+money.FormatRupiah(g.total)+"*\n")
		grand += g.total
	}

	lines = append(lines,
		"⸻\n",
		"💰 *Total Keseluruhan*\n",
		"*"+money.FormatRupiah(grand)+" rupiah*",
	)
	return strings.Join(lines, "\n")
}

// cleanDescription trims store suffixes and category repetition so each
// bullet stays readable on one line.
func cleanDescription(desc, category string) string {
	if i := strings.Index(desc, " di "); i >= 0 {
		desc = desc[:i]
	}
	if strings.Contains(strings.ToLower(desc), strings.ToLower(category)) {
		desc = strings.TrimSpace(strings.ReplaceAll(desc, category, ""))
	}
	if strings.HasPrefix(desc, "Belanja ") {
		desc = strings.ReplaceAll(desc, "Belanja ", "")
	}
	if r := []rune(desc); len(r) > 30 {
		desc = string(r[:27]) + "..."
	}
	return desc
}
