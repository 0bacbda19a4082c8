package models

import "time"

type OpnameStatus string

const (
	OpnameOpen      OpnameStatus = "OPEN"
	OpnameCompleted OpnameStatus = "COMPLETED" // terminal
)

// OpnameSession: sesi hitung fisik stok. Dibuat OPEN dengan snapshot seluruh
// katalog; snapshot dibekukan, barang baru tidak ikut sesi yang sudah berjalan.
type OpnameSession struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	Date      time.Time    `gorm:"not null" json:"date"`
	Status    OpnameStatus `gorm:"size:20;not null" json:"status"`
	Notes     string       `gorm:"size:100" json:"notes"` // label sesi, mis. "SO-20260829"
	Items     []OpnameItem `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

// OpnameItem: satu baris lembar kerja opname.
// PhysicalStock nil berarti belum dihitung; baris belum dihitung tidak ikut
// perhitungan selisih maupun akurasi.
type OpnameItem struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	SessionID     string `gorm:"size:36;index;not null" json:"-"`
	ItemID        string `gorm:"size:36;index;not null" json:"itemId"`
	SystemStock   int    `gorm:"not null" json:"systemStock"`
	PhysicalStock *int   `json:"physicalStock"`
	Difference    int    `gorm:"not null" json:"difference"`
}

// Counted: baris sudah diisi stok fisik.
func (oi OpnameItem) Counted() bool {
	return oi.PhysicalStock != nil
}
