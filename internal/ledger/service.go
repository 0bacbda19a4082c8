package ledger

import (
	"context"
	"errors"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("jumlah transaksi harus bilangan bulat positif")
	ErrInvalidType       = errors.New("tipe transaksi tidak dikenal")
	ErrInvalidDate       = errors.New("format tanggal harus YYYY-MM-DD")
	ErrInsufficientStock = errors.New("stok tidak mencukupi untuk transaksi keluar")
)

// Service menjalankan aturan mutasi stok lewat ledger. Semua mutasi
// (append transaksi + update stok) dieksekusi sebagai satu batch atomik.
type Service struct {
	store store.Store

	// Kebijakan stok minus. true = OUT boleh membuat stok negatif
	// (perilaku lama dengan konfirmasi di sisi klien).
	allowNegativeStock bool

	now func() time.Time
}

func NewService(st store.Store, allowNegativeStock bool) *Service {
	return &Service{
		store:              st,
		allowNegativeStock: allowNegativeStock,
		now:                time.Now,
	}
}

type RecordInput struct {
	ItemID   string
	Type     models.TransactionType
	Quantity int
	Date     string // YYYY-MM-DD, kosong = hari ini
	Notes    string
}

type RecordResult struct {
	Transaction models.Transaction
	NewStock    int
}

// RecordTransaction memvalidasi input, menambahkan transaksi ke ledger, dan
// menerapkan efeknya ke stok barang. IN menambah, OUT mengurangi;
// ADJUSTMENT dan OPNAME_ADJUSTMENT tidak mengubah stok lewat jalur ini
// (efek opname diterapkan sebagai force-set saat finalisasi sesi).
func (s *Service) RecordTransaction(ctx context.Context, in RecordInput) (RecordResult, error) {
	if in.Quantity <= 0 {
		return RecordResult{}, ErrInvalidQuantity
	}
	if !in.Type.Valid() {
		return RecordResult{}, ErrInvalidType
	}
	if in.Date == "" {
		in.Date = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return RecordResult{}, ErrInvalidDate
	}

	var res RecordResult
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		item, err := tx.GetItem(ctx, in.ItemID)
		if err != nil {
			return err
		}

		record := models.Transaction{
			ID:        uuid.NewString(),
			ItemID:    item.ID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Date:      in.Date,
			Notes:     in.Notes,
			CreatedAt: s.now(),
		}

		newStock := item.CurrentStock
		switch in.Type {
		case models.TransactionIn:
			newStock += in.Quantity
		case models.TransactionOut:
			newStock -= in.Quantity
			if newStock < 0 && !s.allowNegativeStock {
				return ErrInsufficientStock
			}
		}

		if err := tx.AppendTransactions(ctx, []models.Transaction{record}); err != nil {
			return err
		}
		if in.Type == models.TransactionIn || in.Type == models.TransactionOut {
			if err := tx.SetItemStock(ctx, item.ID, newStock, s.now()); err != nil {
				return err
			}
		}

		res = RecordResult{Transaction: record, NewStock: newStock}
		return nil
	})
	if err != nil {
		return RecordResult{}, err
	}
	return res, nil
}

// List mengembalikan seluruh ledger, terbaru dulu.
func (s *Service) List(ctx context.Context) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx)
}
