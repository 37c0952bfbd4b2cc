package bot

const (
	unauthorizedText = "⛔ Maaf, Anda tidak memiliki akses untuk menggunakan bot ini."

	// minimalFallbackText is the last resort when both the Markdown and the
	// plain rendering of a reply are rejected by Telegram.
	minimalFallbackText = "⚠️ Pesan tidak dapat ditampilkan. Gunakan /laporan untuk melihat data Anda."

	startText = "👋 Selamat datang di Bot Pencatatan Keuangan!\n\n" +
		"Gunakan tombol di bawah ini untuk mengakses fitur utama tanpa perlu mengetik perintah manual.\n\n" +
		"📸 *FITUR BARU: Scan Struk Otomatis!*\n" +
		"Kirim foto struk belanja untuk otomatis mencatat transaksi.\n\n" +
		"Perintah manual masih tersedia bila dibutuhkan:\n" +
		"/catat - Catat transaksi baru\n" +
		"/laporan - Lihat laporan keuangan\n" +
		"/sheet - Dapatkan link Google Sheet\n" +
		"/hapus - Hapus data keuangan\n" +
		"/menu - Tampilkan menu tombol\n" +
		"/help - Panduan lengkap\n\n" +
		"Atau cukup kirim pesan seperti:\n" +
		"• 'Beli makan siang 50000' (pengeluaran)\n" +
		"• 'Terima gaji bulan ini 5000000' (pemasukan)\n" +
		"• 📸 Kirim foto struk untuk scan otomatis\n\n" +
		"Bot akan otomatis mendeteksi apakah itu pemasukan atau pengeluaran."

	menuText = "📋 *Menu Utama Bot Keuangan*\n\n" +
		"Pilih salah satu opsi di bawah ini dengan menekan tombol:"

	helpText = "🔍 *Cara Menggunakan Bot Keuangan*\n\n" +
		"*📝 Mencatat Transaksi:*\n" +
		"Cukup kirim pesan yang menjelaskan transaksi Anda. Bot akan otomatis mendeteksi apakah itu pemasukan atau pengeluaran.\n\n" +
		"*Contoh Pemasukan:*\n" +
		"• Terima gaji bulan ini 5000000\n" +
		"• Dapat bonus kerja 1500000\n" +
		"• Penjualan barang 250000\n" +
		"• Kiriman dari ibu 500000\n\n" +
		"*Contoh Pengeluaran:*\n" +
		"• Beli makan siang 50000\n" +
		"• Bayar tagihan listrik 350000\n" +
		"• Belanja bulanan di supermarket 750000\n" +
		"• Isi bensin motor 25000\n\n" +
		"*📸 Scan Struk (BARU!):*\n" +
		"Kirim foto struk belanja untuk otomatis mencatat transaksi!\n" +
		"• Bot akan membaca total belanja\n" +
		"• Mendeteksi nama toko dan tanggal\n" +
		"• Bisa catat per item atau per kategori\n" +
		"• Support struk Indomaret, Alfamart, dll\n\n" +
		"*📋 Input Multi-Transaksi:*\n" +
		"Anda dapat mencatat beberapa transaksi sekaligus dengan mengirimkan pesan dengan format:\n\n" +
		"Transaksi 1\n" +
		"Transaksi 2\n" +
		"Transaksi 3\n\n" +
		"Contoh:\n" +
		"Beli makan siang kemarin 50000\n" +
		"Bayar listrik hari ini 350000\n" +
		"Terima gaji 5000000\n\n" +
		"Bot akan menganalisis setiap baris sebagai transaksi terpisah.\n\n" +
		"*⚙️ Perintah Lain:*\n" +
		"/catat - Mulai mencatat transaksi baru\n" +
		"/laporan - Lihat laporan keuangan lengkap\n" +
		"/sheet - Dapatkan link Google Sheet\n" +
		"/hapus - Hapus transaksi\n" +
		"/hapuspesan - Aktifkan/nonaktifkan penghapusan pesan otomatis\n" +
		"/help - Tampilkan bantuan ini\n\n" +
		"*💡 Tips:*\n" +
		"• Foto struk harus jelas dan terang\n" +
		"• Bot bisa deteksi tanggal dari struk\n" +
		"• Semua data otomatis tersimpan di Google Sheets"

	recordText = "Silakan kirim detail transaksi Anda.\n" +
		"Format: [deskripsi] [jumlah]\n" +
		"Contoh: 'Beli makan siang 50000' atau 'Gaji bulan ini 5000000'"

	noReportDataText = "📊 Belum ada transaksi yang tercatat.\n\n" +
		"Mulai catat transaksi dengan mengirim pesan seperti:\n" +
		"'Beli makan siang 50000'"

	sheetsDisabledText = "❌ *Google Sheets Tidak Aktif*\n\n" +
		"Fitur ini memerlukan Google Sheets yang tidak terhubung.\n\n" +
		"📞 Hubungi administrator untuk setup credentials."

	analyzingText = "🔍 Sedang menganalisis struk/foto...\n" +
		"Mohon tunggu sebentar..."

	receiptBusyText = "⏳ Layanan analisis gambar sedang sibuk.\n" +
		"Silakan coba lagi dalam beberapa menit.\n\n" +
		"💡 Atau catat manual dengan format:\n" +
		"'Belanja Indomaret 150000'"

	receiptFailedText = "❌ Gagal menganalisis struk.\n\n" +
		"Tips: Pastikan foto struk jelas dan tidak buram."

	receiptUnreadableText = "❌ Tidak dapat mendeteksi informasi transaksi dari foto.\n\n" +
		"Tips:\n" +
		"• Pastikan foto struk terlihat jelas\n" +
		"• Foto tidak buram atau terpotong\n" +
		"• Pencahayaan cukup terang"

	photoErrorText = "❌ Terjadi kesalahan saat memproses foto.\n" +
		"Silakan coba lagi atau ketik transaksi secara manual."

	receiptCanceledText = "❌ Pencatatan struk dibatalkan."

	receiptGoneText = "❌ Data struk tidak ditemukan. Silakan foto ulang."

	deleteMenuText = "🗑️ *Hapus Data Keuangan*\n\n" +
		"Pilih opsi penghapusan data:\n\n" +
		"⚠️ *Perhatian:* Data yang dihapus tidak dapat dikembalikan!"

	deleteCanceledText = "❌ Penghapusan data dibatalkan."

	noTransactionsText = "❌ Tidak ada transaksi untuk dihapus."

	deleteStartDateText = "📅 *Hapus Berdasarkan Tanggal*\n\n" +
		"Masukkan tanggal awal (format: YYYY-MM-DD):\n" +
		"Contoh: 2023-05-01\n\n" +
		"💡 Ketik 'batal' untuk membatalkan atau gunakan /hapus untuk command lain"

	deleteEndDateText = "📅 Masukkan tanggal akhir (format: YYYY-MM-DD):\n" +
		"Contoh: 2023-05-31"

	invalidDateText = "❌ Format tanggal tidak valid. Gunakan format YYYY-MM-DD.\n" +
		"Contoh: 2023-05-01\n\n" +
		"Silakan coba lagi atau ketik 'batal' untuk membatalkan:"

	endBeforeStartText = "❌ Tanggal akhir harus setelah tanggal awal.\n" +
		"Silakan masukkan tanggal akhir yang valid:"

	noRowsInRangeText = "❌ Tidak ada transaksi dalam rentang tanggal tersebut."

	dateDeleteCanceledText = "❌ Proses hapus berdasarkan tanggal dibatalkan."

	deleteAllWarningText = "⚠️ *PERINGATAN*\n\n" +
		"Anda akan menghapus SEMUA data keuangan Anda.\n" +
		"Tindakan ini TIDAK DAPAT DIBATALKAN.\n\n" +
		"Apakah Anda yakin ingin melanjutkan?"

	genericErrorText = "❌ Terjadi kesalahan. Silakan coba lagi."
)
