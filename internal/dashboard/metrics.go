package dashboard

import (
	"time"

	"opname-backend/internal/models"
)

type Metrics struct {
	TotalItems        int `json:"totalItems"`
	LowStockCount     int `json:"lowStockCount"`
	TotalTransactions int `json:"totalTransactions"`
	PendingOpnames    int `json:"pendingOpnames"`
}

type TrendPoint struct {
	Label string `json:"label"` // tanggal (YYYY-MM-DD)
	Total int    `json:"total"`
}

type CategorySlice struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Stock    int    `json:"stock"`
}

func ComputeMetrics(items []models.Item, txs []models.Transaction, sessions []models.OpnameSession) Metrics {
	m := Metrics{
		TotalItems:        len(items),
		TotalTransactions: len(txs),
	}
	for _, it := range items {
		if it.IsLowStock() {
			m.LowStockCount++
		}
	}
	for _, s := range sessions {
		if s.Status == models.OpnameOpen {
			m.PendingOpnames++
		}
	}
	return m
}

// UsageTrend menjumlahkan transaksi OUT per hari untuk `days` hari terakhir
// (termasuk hari ini). Hari tanpa pemakaian tetap muncul dengan total 0.
func UsageTrend(txs []models.Transaction, now time.Time, days int) []TrendPoint {
	if days <= 0 {
		days = 7
	}

	totals := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != models.TransactionOut {
			continue
		}
		totals[tx.Date] += tx.Quantity
	}

	points := make([]TrendPoint, 0, days)
	start := now.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		label := start.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, TrendPoint{Label: label, Total: totals[label]})
	}
	return points
}

// CategoryDistribution mengelompokkan barang per nama kategori,
// urut sesuai urutan katalog.
func CategoryDistribution(items []models.Item) []CategorySlice {
	index := make(map[string]int)
	slices := make([]CategorySlice, 0)

	for _, it := range items {
		name := it.Category
		if name == "" {
			name = "Tanpa Kategori"
		}
		i, ok := index[name]
		if !ok {
			i = len(slices)
			index[name] = i
			slices = append(slices, CategorySlice{Category: name})
		}
		slices[i].Count++
		slices[i].Stock += it.CurrentStock
	}
	return slices
}
