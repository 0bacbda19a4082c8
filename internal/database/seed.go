package database

import (
	"context"
	"log"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/google/uuid"
)

// Seed mengisi kategori dan barang contoh saat katalog masih kosong,
// supaya instalasi baru langsung bisa dicoba.
func Seed(ctx context.Context, st store.Store) error {
	items, err := st.ListItems(ctx)
	if err != nil {
		return err
	}
	categories, err := st.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 || len(categories) > 0 {
		return nil
	}

	now := time.Now()

	seedCategories := []string{
		"ATK (Alat Tulis Kantor)",
		"Pembersih",
		"Pantry",
		"Elektronik",
	}
	for _, name := range seedCategories {
		if err := st.SaveCategory(ctx, models.Category{ID: uuid.NewString(), Name: name}); err != nil {
			return err
		}
	}

	seedItems := []models.Item{
		{SKU: "ATK-001", Name: "Kertas A4 70gr", Category: "ATK (Alat Tulis Kantor)", Location: "Rak A1", Unit: "Rim", CurrentStock: 50, MinStock: 10},
		{SKU: "ATK-002", Name: "Pulpen Hitam Standard", Category: "ATK (Alat Tulis Kantor)", Location: "Rak A2", Unit: "Pcs", CurrentStock: 120, MinStock: 24},
		{SKU: "CLN-001", Name: "Cairan Pembersih Lantai", Category: "Pembersih", Location: "Gudang B", Unit: "Jerigen 5L", CurrentStock: 4, MinStock: 5},
		{SKU: "PNT-001", Name: "Gula Pasir", Category: "Pantry", Location: "Dapur", Unit: "Kg", CurrentStock: 2, MinStock: 5},
	}
	for _, item := range seedItems {
		item.ID = uuid.NewString()
		item.LastUpdated = now
		if err := st.SaveItem(ctx, item); err != nil {
			return err
		}
	}

	log.Printf("Seed data awal dibuat: %d kategori, %d barang", len(seedCategories), len(seedItems))
	return nil
}
