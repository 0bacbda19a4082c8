package models

import "time"

type TransactionType string

const (
	TransactionIn               TransactionType = "IN"
	TransactionOut              TransactionType = "OUT"
	TransactionAdjustment       TransactionType = "ADJUSTMENT"
	TransactionOpnameAdjustment TransactionType = "OPNAME_ADJUSTMENT"
)

// Valid: tipe termasuk salah satu dari empat jenis transaksi.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionAdjustment, TransactionOpnameAdjustment:
		return true
	}
	return false
}

// Transaction: catatan ledger yang tidak pernah diubah setelah dibuat.
// Quantity selalu positif; arah perubahan stok ditentukan oleh Type.
type Transaction struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	ItemID          string          `gorm:"size:36;index;not null" json:"itemId"`
	Type            TransactionType `gorm:"size:20;not null" json:"type"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Date            string          `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Notes           string          `gorm:"size:255" json:"notes,omitempty"`
	RelatedOpnameID string          `gorm:"size:36;index" json:"relatedOpnameId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// SignedQuantity: efek transaksi terhadap stok pada jalur generik.
// ADJUSTMENT dan OPNAME_ADJUSTMENT tidak mengubah stok lewat jalur ini;
// efek opname diterapkan sebagai force-set saat finalisasi.
func (t Transaction) SignedQuantity() int {
	switch t.Type {
	case TransactionIn:
		return t.Quantity
	case TransactionOut:
		return -t.Quantity
	}
	return 0
}
