// Package report aggregates one user's ledger rows into the full
// financial overview behind the /laporan command.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"cloud.google.com/go/civil"

	"duitbot/internal/dates"
	"duitbot/internal/ledger"
	"duitbot/internal/money"
)

const recentLimit = 5

// CategoryAmount is one category bucket with its accumulated magnitude.
type CategoryAmount struct {
	Category string
	Amount   float64
}

// PeriodStats holds income and expense magnitudes for one time window.
type PeriodStats struct {
	Income  float64
	Expense float64
}

func (p PeriodStats) Balance() float64 { return p.Income - p.Expense }

func (p *PeriodStats) tally(amount float64) {
	if amount > 0 {
		p.Income += amount
	} else {
		p.Expense += -amount
	}
}

// Report is the aggregated view of a single owner's rows.
type Report struct {
	Today civil.Date

	TotalIncome  float64
	TotalExpense float64

	Month PeriodStats
	Week  PeriodStats
	Day   PeriodStats

	TotalCount   int
	IncomeCount  int
	ExpenseCount int

	HighestIncome  float64
	HighestExpense float64

	// Sorted by amount descending; ties keep first-seen order.
	ExpenseByCategory []CategoryAmount
	IncomeByCategory  []CategoryAmount

	// Newest first, at most five rows.
	Recent []ledger.Row
}

func (r *Report) Balance() float64 { return r.TotalIncome - r.TotalExpense }

// SavingsRate reports the share of income left unspent. ok is false when
// there is no income to measure against.
func (r *Report) SavingsRate() (rate float64, ok bool) {
	if r.TotalIncome <= 0 {
		return 0, false
	}
	return (r.TotalIncome - r.TotalExpense) / r.TotalIncome * 100, true
}

// ExpenseRatio reports expenses as a share of income.
func (r *Report) ExpenseRatio() (ratio float64, ok bool) {
	if r.TotalIncome <= 0 {
		return 0, false
	}
	return r.TotalExpense / r.TotalIncome * 100, true
}

// Build aggregates rows relative to today. Rows are expected to belong to
// one owner already; filter with ledger.OwnerRows first.
func Build(rows []ledger.Row, today civil.Date) *Report {
	r := &Report{Today: today, TotalCount: len(rows)}
	weekStart := today.AddDays(-7)

	expense := newCategoryTally()
	income := newCategoryTally()

	for _, row := range rows {
		amount := row.Amount
		if amount > 0 {
			r.TotalIncome += amount
			r.IncomeCount++
			if amount > r.HighestIncome {
				r.HighestIncome = amount
			}
		} else if amount < 0 {
			r.TotalExpense += -amount
			r.ExpenseCount++
			if -amount > r.HighestExpense {
				r.HighestExpense = -amount
			}
		}

		if amount < 0 {
			expense.add(row.Category, -amount)
		} else {
			income.add(row.Category, amount)
		}

		if row.Date.Year == today.Year && row.Date.Month == today.Month {
			r.Month.tally(amount)
		}
		if !row.Date.Before(weekStart) {
			r.Week.tally(amount)
		}
		if row.Date == today {
			r.Day.tally(amount)
		}
	}

	r.ExpenseByCategory = expense.sorted()
	r.IncomeByCategory = income.sorted()
	r.Recent = recentRows(rows, recentLimit)
	return r
}

// Tip picks one contextual piece of advice for the report footer.
func (r *Report) Tip() string {
	if r.Balance() < 0 {
		return "Pengeluaran melebihi pemasukan. Pertimbangkan untuk mengurangi pengeluaran tidak penting."
	}
	if rate, ok := r.SavingsRate(); !ok || rate < 10 {
		return "Tingkatkan tabungan Anda hingga minimal 10-20% dari pemasukan."
	}
	if len(r.ExpenseByCategory) > 0 {
		top := r.ExpenseByCategory[0]
		if top.Amount > r.TotalExpense*0.4 {
			return fmt.Sprintf(
				"Kategori %s menghabiskan %.0f%% pengeluaran. Pertimbangkan untuk mengontrol kategori ini.",
				top.Category, top.Amount/r.TotalExpense*100,
			)
		}
	}
	return "Keuangan Anda terlihat sehat! Pertahankan pola ini."
}

const divider = "=============================="

// RenderMarkdown renders the report in the Telegram Markdown layout.
func (r *Report) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 *LAPORAN KEUANGAN LENGKAP*\n_Per tanggal %s_\n", dates.Display(r.Today))
	b.WriteString(divider + "\n\n")

	b.WriteString("💰 *RINGKASAN TOTAL*\n")
	fmt.Fprintf(&b, "├ Total Pemasukan: Rp %s\n", money.FormatRupiah(r.TotalIncome))
	fmt.Fprintf(&b, "├ Total Pengeluaran: Rp %s\n", money.FormatRupiah(r.TotalExpense))
	balanceEmoji := "🟢"
	if r.Balance() < 0 {
		balanceEmoji = "🔴"
	}
	fmt.Fprintf(&b, "└ Saldo: %s Rp %s\n\n", balanceEmoji, money.FormatRupiah(r.Balance()))

	b.WriteString("📅 *INSIGHTS PERIODE*\n\n")
	fmt.Fprintf(&b, "*Bulan Ini (%s %d):*\n", r.Today.Month, r.Today.Year)
	writePeriod(&b, r.Month)
	b.WriteString("*7 Hari Terakhir:*\n")
	writePeriod(&b, r.Week)
	if r.Day.Income > 0 || r.Day.Expense > 0 {
		b.WriteString("*Hari Ini:*\n")
		writePeriod(&b, r.Day)
	}

	b.WriteString("📈 *ANALISIS & STATISTIK*\n\n")
	b.WriteString("*Jumlah Transaksi:*\n")
	fmt.Fprintf(&b, "├ Total: %d transaksi\n", r.TotalCount)
	fmt.Fprintf(&b, "├ Pemasukan: %d transaksi\n", r.IncomeCount)
	fmt.Fprintf(&b, "└ Pengeluaran: %d transaksi\n\n", r.ExpenseCount)

	b.WriteString("*Rata-rata per Transaksi:*\n")
	if r.IncomeCount > 0 {
		fmt.Fprintf(&b, "├ Pemasukan: Rp %s\n", money.FormatRupiah(r.TotalIncome/float64(r.IncomeCount)))
	}
	if r.ExpenseCount > 0 {
		fmt.Fprintf(&b, "└ Pengeluaran: Rp %s\n\n", money.FormatRupiah(r.TotalExpense/float64(r.ExpenseCount)))
	}

	if r.HighestIncome > 0 || r.HighestExpense > 0 {
		b.WriteString("*Transaksi Terbesar:*\n")
		if r.HighestIncome > 0 {
			fmt.Fprintf(&b, "├ Pemasukan: Rp %s\n", money.FormatRupiah(r.HighestIncome))
		}
		if r.HighestExpense > 0 {
			fmt.Fprintf(&b, "└ Pengeluaran: Rp %s\n\n", money.FormatRupiah(r.HighestExpense))
		}
	}

	if len(r.ExpenseByCategory) > 0 {
		b.WriteString("🏷️ *PENGELUARAN PER KATEGORI*\n")
		for i, c := range r.ExpenseByCategory {
			bullet := "•"
			if i == 0 {
				bullet = "🔥"
			}
			fmt.Fprintf(&b, "%s %s: Rp %s (%.1f%%)\n",
				bullet, c.Category, money.FormatRupiah(c.Amount), percent(c.Amount, r.TotalExpense))
		}
		b.WriteString("\n")
	}

	if len(r.IncomeByCategory) > 0 {
		b.WriteString("💵 *PEMASUKAN PER KATEGORI*\n")
		for _, c := range r.IncomeByCategory {
			fmt.Fprintf(&b, "• %s: Rp %s (%.1f%%)\n",
				c.Category, money.FormatRupiah(c.Amount), percent(c.Amount, r.TotalIncome))
		}
		b.WriteString("\n")
	}

	b.WriteString("🏥 *INDIKATOR KESEHATAN KEUANGAN*\n")
	if rate, ok := r.SavingsRate(); ok {
		fmt.Fprintf(&b, "├ Tingkat Tabungan: %.1f%% %s\n", rate, savingsLabel(rate))
	}
	if ratio, ok := r.ExpenseRatio(); ok {
		fmt.Fprintf(&b, "└ Rasio Pengeluaran: %.1f%% %s\n\n", ratio, ratioEmoji(ratio))
	}

	b.WriteString("📝 *5 TRANSAKSI TERAKHIR*\n")
	for i, row := range r.Recent {
		symbol := "➕"
		if row.Amount < 0 {
			symbol = "➖"
		}
		fmt.Fprintf(&b, "%d. %02d/%02d %s Rp %s\n",
			i+1, row.Date.Day, row.Date.Month, symbol, money.FormatRupiah(math.Abs(row.Amount)))
		fmt.Fprintf(&b, "   %s: %s\n", row.Category, shorten(row.Description, 25))
	}

	b.WriteString("\n" + divider + "\n")
	b.WriteString("💡 *TIPS:* " + r.Tip())
	return b.String()
}

func writePeriod(b *strings.Builder, p PeriodStats) {
	fmt.Fprintf(b, "├ Pemasukan: Rp %s\n", money.FormatRupiah(p.Income))
	fmt.Fprintf(b, "├ Pengeluaran: Rp %s\n", money.FormatRupiah(p.Expense))
	sign := "➕"
	if p.Balance() < 0 {
		sign = "➖"
	}
	fmt.Fprintf(b, "└ Selisih: %s Rp %s\n\n", sign, money.FormatRupiah(math.Abs(p.Balance())))
}

func savingsLabel(rate float64) string {
	switch {
	case rate >= 20:
		return "🟢 Sangat Baik"
	case rate >= 10:
		return "🟡 Baik"
	case rate >= 0:
		return "🟠 Cukup"
	default:
		return "🔴 Perlu Perbaikan"
	}
}

func ratioEmoji(ratio float64) string {
	switch {
	case ratio <= 70:
		return "🟢"
	case ratio <= 90:
		return "🟡"
	default:
		return "🔴"
	}
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func shorten(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

type categoryTally struct {
	order  []string
	totals map[string]float64
}

func newCategoryTally() *categoryTally {
	return &categoryTally{totals: make(map[string]float64)}
}

func (t *categoryTally) add(category string, amount float64) {
	if _, ok := t.totals[category]; !ok {
		t.order = append(t.order, category)
	}
	t.totals[category] += amount
}

func (t *categoryTally) sorted() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, CategoryAmount{Category: c, Amount: t.totals[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

func recentRows(rows []ledger.Row, limit int) []ledger.Row {
	sorted := append([]ledger.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
