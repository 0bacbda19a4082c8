package models

import "time"

// Item: barang habis pakai yang dilacak stoknya.
// CurrentStock adalah satu-satunya sumber kebenaran stok sistem dan hanya
// diubah lewat ledger (IN/OUT) atau finalisasi opname, tidak pernah lewat
// edit katalog biasa.
type Item struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SKU          string    `gorm:"size:50;not null;index" json:"sku"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Category     string    `gorm:"size:100;index" json:"category"` // referensi lemah ke Category.Name
	Location     string    `gorm:"size:100" json:"location"`
	Unit         string    `gorm:"size:20;not null" json:"unit"` // Pcs, Rim, Kg, dst.
	CurrentStock int       `gorm:"not null" json:"currentStock"`
	MinStock     int       `gorm:"not null" json:"minStock"`
	LastUpdated  time.Time `json:"lastUpdated"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// IsLowStock: stok saat ini sudah menyentuh batas minimum.
func (i Item) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}
