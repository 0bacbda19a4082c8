package store

import (
	"context"
	"errors"
	"time"

	"opname-backend/internal/models"
)

var (
	ErrItemNotFound     = errors.New("barang tidak ditemukan")
	ErrCategoryNotFound = errors.New("kategori tidak ditemukan")
	ErrSessionNotFound  = errors.New("sesi opname tidak ditemukan")
)

// Store adalah satu-satunya pintu akses data engine. Empat koleksi logis
// (items, transactions, opname sessions, categories) plus audit log.
// Implementasi: gormstore (PostgreSQL) dan memstore (tes / mode tanpa DSN).
type Store interface {
	// Katalog. ListItems mengembalikan urutan katalog (urutan pembuatan).
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	SaveItem(ctx context.Context, item models.Item) error
	DeleteItem(ctx context.Context, id string) error
	// SetItemStock menimpa stok ke nilai otoritatif (bukan delta) dan
	// menyegarkan LastUpdated.
	SetItemStock(ctx context.Context, id string, stock int, ts time.Time) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (models.Category, error)
	SaveCategory(ctx context.Context, cat models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Ledger append-only, terbaru dulu.
	AppendTransactions(ctx context.Context, txs []models.Transaction) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)

	CreateOpname(ctx context.Context, session models.OpnameSession) error
	GetOpname(ctx context.Context, id string) (models.OpnameSession, error)
	ListOpnames(ctx context.Context) ([]models.OpnameSession, error)
	UpdateOpname(ctx context.Context, session models.OpnameSession) error

	AppendAuditLog(ctx context.Context, entry models.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error)

	// ReplaceAll menukar isi keempat koleksi sekaligus (restore backup).
	ReplaceAll(ctx context.Context, items []models.Item, txs []models.Transaction, opnames []models.OpnameSession, categories []models.Category) error
	// Reset mengosongkan seluruh data termasuk audit log.
	Reset(ctx context.Context) error

	// Atomically menjalankan fn sebagai satu batch: kalau fn mengembalikan
	// error, seluruh mutasi di dalamnya dibatalkan. Tidak boleh ada state
	// antara yang terlihat dari luar.
	Atomically(ctx context.Context, fn func(Store) error) error
}
