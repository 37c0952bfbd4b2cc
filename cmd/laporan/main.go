// Command laporan renders a user's financial report to the terminal,
// reading the same spreadsheet the bot writes.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/fatih/color"

	"duitbot/internal/config"
	"duitbot/internal/dates"
	"duitbot/internal/ledger"
	"duitbot/internal/logger"
	"duitbot/internal/money"
	"duitbot/internal/report"
)

func main() {
	userID := flag.Int64("user", 0, "Telegram user ID to report on (required)")
	flag.Parse()

	log := logger.NewConsole(os.Getenv("LOG_LEVEL"))
	if *userID == 0 {
		log.Fatal().Msg("--user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration failed")
	}
	if cfg.Sheets.SpreadsheetID == "" {
		log.Fatal().Msg("no spreadsheet configured; set SPREADSHEET_ID")
	}

	ctx := logger.WithContext(context.Background(), log)
	store, err := ledger.NewSheetsStore(ctx, ledger.Options{
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SheetName:       cfg.Sheets.SheetName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to sheets failed")
	}

	rows, err := store.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reading ledger rows failed")
	}
	own := ledger.OwnerRows(rows, *userID)
	if len(own) == 0 {
		fmt.Println("Belum ada transaksi yang tercatat.")
		return
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	printReport(report.Build(own, dates.Today(loc)))
}

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.FgWhite)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	faint   = color.New(color.Faint)
)

func printReport(r *report.Report) {
	heading.Printf("LAPORAN KEUANGAN LENGKAP\n")
	faint.Printf("Per tanggal %s\n\n", dates.Display(r.Today))

	heading.Println("RINGKASAN TOTAL")
	label.Printf("  Pemasukan   : Rp %s\n", money.FormatRupiah(r.TotalIncome))
	label.Printf("  Pengeluaran : Rp %s\n", money.FormatRupiah(r.TotalExpense))
	balanceColor(r.Balance()).Printf("  Saldo       : Rp %s\n\n", money.FormatRupiah(r.Balance()))

	heading.Println("PERIODE")
	printPeriod("Bulan ini", r.Month)
	printPeriod("7 hari terakhir", r.Week)
	if r.Day.Income > 0 || r.Day.Expense > 0 {
		printPeriod("Hari ini", r.Day)
	}
	fmt.Println()

	heading.Println("STATISTIK")
	label.Printf("  Transaksi   : %d total, %d pemasukan, %d pengeluaran\n", r.TotalCount, r.IncomeCount, r.ExpenseCount)
	if r.HighestIncome > 0 {
		label.Printf("  Terbesar masuk  : Rp %s\n", money.FormatRupiah(r.HighestIncome))
	}
	if r.HighestExpense > 0 {
		label.Printf("  Terbesar keluar : Rp %s\n", money.FormatRupiah(r.HighestExpense))
	}
	if rate, ok := r.SavingsRate(); ok {
		label.Printf("  Tingkat tabungan: %.1f%%\n", rate)
	}
	fmt.Println()

	if len(r.ExpenseByCategory) > 0 {
		heading.Println("PENGELUARAN PER KATEGORI")
		for _, c := range r.ExpenseByCategory {
			share := 0.0
			if r.TotalExpense > 0 {
				share = c.Amount / r.TotalExpense * 100
			}
			bad.Printf("  %-15s Rp %12s", c.Category, money.FormatRupiah(c.Amount))
			faint.Printf("  (%.1f%%)\n", share)
		}
		fmt.Println()
	}

	if len(r.IncomeByCategory) > 0 {
		heading.Println("PEMASUKAN PER KATEGORI")
		for _, c := range r.IncomeByCategory {
			share := 0.0
			if r.TotalIncome > 0 {
				share = c.Amount / r.TotalIncome * 100
			}
			good.Printf("  %-15s Rp %12s", c.Category, money.FormatRupiah(c.Amount))
			faint.Printf("  (%.1f%%)\n", share)
		}
		fmt.Println()
	}

	heading.Println("TRANSAKSI TERAKHIR")
	for i, row := range r.Recent {
		c := bad
		symbol := "-"
		if row.Amount > 0 {
			c = good
			symbol = "+"
		}
		c.Printf("  %d. %02d/%02d %s Rp %s", i+1, row.Date.Day, row.Date.Month, symbol, money.FormatRupiah(math.Abs(row.Amount)))
		faint.Printf("  %s: %s\n", row.Category, row.Description)
	}

	fmt.Println()
	faint.Printf("Tips: %s\n", r.Tip())
}

func printPeriod(name string, p report.PeriodStats) {
	label.Printf("  %-16s masuk Rp %s, keluar Rp %s, selisih ", name,
		money.FormatRupiah(p.Income), money.FormatRupiah(p.Expense))
	balanceColor(p.Balance()).Printf("Rp %s\n", money.FormatRupiah(p.Balance()))
}

func balanceColor(v float64) *color.Color {
	if v < 0 {
		return bad
	}
	return good
}
