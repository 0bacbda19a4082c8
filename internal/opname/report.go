package opname

import (
	"math"

	"opname-backend/internal/models"
)

// Proyeksi laporan: fungsi murni atas state sesi, tidak menyentuh store.

// Discrepancies mengembalikan baris yang sudah dihitung dan selisihnya tidak
// nol, dalam urutan katalog.
func Discrepancies(session models.OpnameSession) []models.OpnameItem {
	out := make([]models.OpnameItem, 0)
	for _, oi := range session.Items {
		if oi.Counted() && oi.Difference != 0 {
			out = append(out, oi)
		}
	}
	return out
}

// AccuracyRate: persentase baris terhitung yang cocok dengan stok sistem,
// dibulatkan. Baris belum dihitung tidak masuk penyebut; 0 kalau belum ada
// yang dihitung sama sekali.
func AccuracyRate(session models.OpnameSession) int {
	counted := 0
	correct := 0
	for _, oi := range session.Items {
		if !oi.Counted() {
			continue
		}
		counted++
		if oi.Difference == 0 {
			correct++
		}
	}
	if counted == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(counted) * 100))
}

// Progress: jumlah baris terhitung dan total baris sesi.
func Progress(session models.OpnameSession) (counted, total int) {
	for _, oi := range session.Items {
		if oi.Counted() {
			counted++
		}
	}
	return counted, len(session.Items)
}
