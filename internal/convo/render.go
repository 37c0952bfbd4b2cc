package convo

import (
	"fmt"
	"math"
	"strings"

	"duitbot/internal/dates"
	"duitbot/internal/domain"
	"duitbot/internal/money"
)

const (
	askTypeText = "Saya tidak dapat menentukan jumlah transaksi. Apakah ini pemasukan atau pengeluaran?"

	invalidAmountText = "❌ Format jumlah tidak valid.\n\n" +
		"Contoh format yang benar:\n" +
		"• 50000\n" +
		"• 50k atau 50rb (untuk 50.000)\n" +
		"• 1jt atau 1juta (untuk 1.000.000)\n" +
		"• 1.500.000\n\n" +
		"Silakan masukkan jumlah lagi:"

	unrecognizedBatchText = "❌ Saya tidak dapat mengenali transaksi dari pesan Anda.\n" +
		"Pastikan setiap baris berisi informasi transaksi yang lengkap."

	storeUnavailableText = "❌ Google Sheets tidak terhubung.\n" +
		"Silakan hubungi administrator untuk mengaktifkan integrasi Google Sheets."

	batchUnavailableText = "❌ *Google Sheets Tidak Aktif*\n\n" +
		"Tidak dapat menyimpan transaksi karena Google Sheets tidak terhubung.\n\n" +
		"📞 Hubungi administrator untuk setup credentials."

	appendFailedText = "❌ Gagal mencatat transaksi. Silakan coba lagi."

	nothingPendingText = "❌ Terjadi kesalahan. Tidak ada transaksi untuk disimpan."

	editResendText = "✏️ Pencatatan dibatalkan. Silakan kirim ulang detail transaksi atau foto struk baru."

	canceledText = "✅ Pencatatan dibatalkan. Tidak ada data yang disimpan."

	batchCanceledText = "❌ Pencatatan transaksi dibatalkan."
)

// typeLabel derives the display label from the amount's sign, so a manually
// staged candidate renders correctly even without an explicit type.
func typeLabel(amount float64) string {
	if amount > 0 {
		return domain.TypeIncome.Label()
	}
	return domain.TypeExpense.Label()
}

func amountPromptText(c Context) string {
	return fmt.Sprintf(
		"📅 Tanggal: %s\n"+
			"📝 Deskripsi: %s\n"+
			"📊 Jenis: %s\n\n"+
			"💰 Berapa jumlahnya?\n\n"+
			"_Contoh: 50000, 50k, 50rb, 1jt_",
		dates.Display(c.DetectedDate), c.RawText, c.PendingType.Label(),
	)
}

func confirmText(tx domain.Transaction) string {
	var b strings.Builder
	b.WriteString("📝 *Detail Transaksi*\n\n")
	fmt.Fprintf(&b, "Tanggal: %s\n", dates.Display(tx.Date))
	fmt.Fprintf(&b, "Jenis: %s\n", typeLabel(tx.Amount))
	fmt.Fprintf(&b, "Jumlah: Rp %s\n", money.FormatRupiah(math.Abs(tx.Amount)))
	fmt.Fprintf(&b, "Kategori: %s\n", tx.Category)
	fmt.Fprintf(&b, "Deskripsi: %s\n\n", tx.Description)
	b.WriteString("Apakah data ini benar?")
	return b.String()
}

func batchConfirmText(txs []domain.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 *%d Transaksi Terdeteksi*\n\n", len(txs))
	for i, tx := range txs {
		fmt.Fprintf(&b, "*Transaksi %d:*\n", i+1)
		fmt.Fprintf(&b, "Tanggal: %s\n", dates.Display(tx.Date))
		fmt.Fprintf(&b, "Jenis: %s\n", typeLabel(tx.Amount))
		fmt.Fprintf(&b, "Jumlah: Rp %s\n", money.FormatRupiah(math.Abs(tx.Amount)))
		fmt.Fprintf(&b, "Kategori: %s\n", tx.Category)
		fmt.Fprintf(&b, "Deskripsi: %s\n\n", tx.Description)
	}
	b.WriteString("Apakah semua transaksi ini benar?")
	return b.String()
}

// recordedText is the header of the post-confirmation message; the day's
// category summary is appended behind it when the re-read succeeds.
func recordedText(tx domain.Transaction) string {
	return fmt.Sprintf(
		"✅ Transaksi berhasil dicatat!\n\n"+
			"Tanggal: %s\n"+
			"Jenis: %s\n"+
			"Jumlah: Rp %s\n"+
			"Kategori: %s\n"+
			"Deskripsi: %s",
		tx.Date.String(), typeLabel(tx.Amount), money.FormatRupiah(math.Abs(tx.Amount)),
		tx.Category, tx.Description,
	)
}
