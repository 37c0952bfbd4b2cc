package extract

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// referenceDate renders today for the prompts, e.g.
// "2025-08-20 (Wednesday, 20 August 2025)".
func referenceDate(today civil.Date) string {
	t := today.In(time.UTC)
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02"), t.Format("Monday, 02 January 2006"))
}

// buildTransactionPrompt constructs the extraction prompt for one line of
// Indonesian text. It embeds today's date and spells out the relative-date
// and income-vs-expense rules so the model resolves them itself where it
// can; what it cannot resolve comes back in time_context for local
// resolution.
func buildTransactionPrompt(text string, today civil.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Extract financial information from this Indonesian text: %q\n", text)
	fmt.Fprintf(&b, "Today's date is %s.\n\n", referenceDate(today))

	b.WriteString("Return a JSON object with these fields:\n")
	b.WriteString("- amount: the monetary amount (numeric value only, without currency symbols). For Indonesian formats like \"70k\" or \"70rb\" convert to 70000, \"1jt\" to 1000000.\n")
	b.WriteString("- category: the spending/income category\n")
	b.WriteString("- description: brief description of the transaction\n")
	b.WriteString("- transaction_type: \"income\" if this is money received, or \"expense\" if this is money spent\n")
	b.WriteString("- date: the date of the transaction in YYYY-MM-DD format\n")
	b.WriteString("- time_context: any time-related information found in the text (e.g., \"yesterday\", \"last Monday\", \"2 days ago\")\n\n")

	b.WriteString("For the date field, analyze time expressions carefully:\n\n")
	b.WriteString("1. Specific dates:\n")
	b.WriteString("   - \"5 Mei 2023\", \"05/05/2023\", \"5 May 2023\" → use that exact date\n")
	b.WriteString("   - \"5 Mei\", \"05/05\" → use that date in the current year\n\n")
	b.WriteString("2. Relative days:\n")
	fmt.Fprintf(&b, "   - \"kemarin\", \"yesterday\" → use yesterday's date (%s)\n", today.AddDays(-1))
	fmt.Fprintf(&b, "   - \"hari ini\", \"today\", \"sekarang\" → use today's date (%s)\n", today)
	fmt.Fprintf(&b, "   - \"besok\", \"tomorrow\" → use tomorrow's date (%s)\n", today.AddDays(1))
	fmt.Fprintf(&b, "   - \"lusa\", \"day after tomorrow\" → use the day after tomorrow (%s)\n", today.AddDays(2))
	b.WriteString("   - \"2 hari yang lalu\", \"2 days ago\" → subtract the specified number of days\n")
	b.WriteString("   - \"minggu lalu\", \"last week\" → subtract 7 days\n")
	b.WriteString("   - \"bulan lalu\", \"last month\" → use the same day in the previous month\n\n")
	b.WriteString("3. Day names:\n")
	b.WriteString("   - \"Senin\", \"Monday\" → use the date of the most recent Monday\n")
	b.WriteString("   - \"Senin lalu\", \"last Monday\" → use the date of the previous Monday (not today if today is Monday)\n")
	b.WriteString("   - \"Senin depan\", \"next Monday\" → use the date of the next Monday (not today if today is Monday)\n\n")
	b.WriteString("4. Month references:\n")
	b.WriteString("   - \"awal bulan\", \"beginning of the month\" → use the 1st day of the current month\n")
	b.WriteString("   - \"akhir bulan\", \"end of the month\" → use the last day of the current month\n")
	b.WriteString("   - \"pertengahan bulan\", \"middle of the month\" → use the 15th day of the current month\n")
	b.WriteString("   - \"awal bulan lalu\", \"beginning of last month\" → use the 1st day of the previous month\n\n")
	fmt.Fprintf(&b, "If no date is mentioned, use today's date (%s).\n\n", today)

	b.WriteString("For transaction_type, analyze the context carefully using these rules:\n\n")
	b.WriteString("INCOME indicators (set transaction_type to \"income\"):\n")
	b.WriteString("- Words about receiving money: \"terima\", \"dapat\", \"pemasukan\", \"masuk\", \"diterima\"\n")
	b.WriteString("- Income sources: \"gaji\", \"bonus\", \"komisi\", \"dividen\", \"bunga\", \"hadiah\", \"warisan\", \"penjualan\", \"refund\", \"kembalian\", \"cashback\"\n")
	b.WriteString("- Phrases like: \"dibayar oleh\", \"transfer dari\", \"kiriman dari\", \"diberi\", \"dikasih\"\n\n")
	b.WriteString("EXPENSE indicators (set transaction_type to \"expense\"):\n")
	b.WriteString("- Words about spending: \"beli\", \"bayar\", \"belanja\", \"pengeluaran\", \"keluar\", \"dibayar\"\n")
	b.WriteString("- Purchase verbs: \"membeli\", \"memesan\", \"berlangganan\", \"sewa\", \"booking\"\n")
	b.WriteString("- Expense categories: \"makanan\", \"transportasi\", \"bensin\", \"pulsa\", \"tagihan\", \"biaya\", \"iuran\"\n")
	b.WriteString("- Phrases like: \"dibayarkan untuk\", \"transfer ke\", \"kirim ke\"\n\n")
	b.WriteString("If the text doesn't clearly indicate transaction type, look at the context:\n")
	b.WriteString("- If it mentions purchasing an item or service, it's likely an expense\n")
	b.WriteString("- If it mentions receiving money or payment, it's likely income\n\n")
	b.WriteString("If still unclear, default to \"expense\".\n\n")

	b.WriteString("For category, try to identify specific categories like:\n")
	b.WriteString("- Income categories: \"Gaji\", \"Bonus\", \"Investasi\", \"Hadiah\", \"Penjualan\", \"Bisnis\"\n")
	b.WriteString("- Expense categories: \"Makanan\", \"Transportasi\", \"Belanja\", \"Hiburan\", \"Tagihan\", \"Kesehatan\", \"Pendidikan\"\n\n")
	b.WriteString("If any field is unclear, set it to null.\n")

	return b.String()
}

// buildReceiptPrompt constructs the vision prompt for receipt photos.
func buildReceiptPrompt(today civil.Date) string {
	var b strings.Builder

	b.WriteString("Analyze this receipt/invoice image and extract ALL financial transactions found.\n")
	fmt.Fprintf(&b, "Today's date is %s.\n\n", referenceDate(today))

	b.WriteString("For each item/transaction found in the receipt, provide:\n")
	b.WriteString("1. The item name or description\n")
	b.WriteString("2. The amount/price\n")
	b.WriteString("3. The quantity (if applicable)\n")
	b.WriteString("4. The subtotal for that item\n\n")

	b.WriteString("Return a JSON object with:\n")
	b.WriteString("- \"store_name\": name of the store/merchant (if visible)\n")
	b.WriteString("- \"receipt_date\": date on the receipt in YYYY-MM-DD format (if visible, otherwise use today's date)\n")
	b.WriteString("- \"receipt_time\": time on the receipt (if visible)\n")
	b.WriteString("- \"total_amount\": the grand total amount on the receipt\n")
	b.WriteString("- \"payment_method\": cash/card/transfer/etc (if visible)\n")
	b.WriteString("- \"items\": array of items, each containing:\n")
	b.WriteString("    - \"description\": item name/description\n")
	b.WriteString("    - \"quantity\": quantity purchased (default 1 if not shown)\n")
	b.WriteString("    - \"unit_price\": price per unit\n")
	b.WriteString("    - \"amount\": total price for this item\n")
	b.WriteString("    - \"category\": suggested category (Makanan/Minuman/Belanja/etc)\n")
	b.WriteString("- \"tax\": tax amount (if shown)\n")
	b.WriteString("- \"discount\": discount amount (if shown)\n")
	b.WriteString("- \"transaction_type\": always \"expense\" for receipts\n")
	b.WriteString("- \"suggested_description\": a brief summary of the purchase for record keeping\n\n")

	b.WriteString("Important instructions:\n")
	b.WriteString("- Extract ALL items listed on the receipt, not just the total\n")
	b.WriteString("- If the receipt is not clear, still try to extract what you can see\n")
	b.WriteString("- For Indonesian receipts, handle both \"Rp\" and numeric formats\n")
	b.WriteString("- Convert all amounts to numeric values only (no currency symbols)\n")
	b.WriteString("- If you cannot read the receipt clearly, return null for unclear fields\n")
	b.WriteString("- Common Indonesian store names: Indomaret, Alfamart, Transmart, Hypermart, etc.\n")
	b.WriteString("- Common categories: Makanan, Minuman, Snack, Kebutuhan Harian, Obat, etc.\n")

	return b.String()
}
