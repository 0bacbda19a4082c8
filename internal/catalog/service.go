package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrItemFieldsMissing = errors.New("nama dan SKU barang wajib diisi")
	ErrCategoryRequired  = errors.New("nama kategori wajib diisi")
	ErrCategoryExists    = errors.New("kategori dengan nama tersebut sudah ada")
	ErrCategoryInUse     = errors.New("kategori masih digunakan oleh beberapa barang")
)

// Service mengelola katalog barang dan kategori. Stok barang TIDAK diubah
// lewat sini: CurrentStock hanya boleh diisi saat pembuatan barang (stok
// awal); edit selanjutnya hanya menyentuh metadata.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

type ItemInput struct {
	SKU          string
	Name         string
	Category     string
	Location     string
	Unit         string
	CurrentStock int // hanya dipakai saat create (stok awal)
	MinStock     int
}

func (s *Service) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.store.ListItems(ctx)
}

func (s *Service) GetItem(ctx context.Context, id string) (models.Item, error) {
	return s.store.GetItem(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (models.Item, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return models.Item{}, ErrItemFieldsMissing
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return models.Item{}, ErrItemFieldsMissing
	}
	if in.Unit == "" {
		in.Unit = "Pcs"
	}

	item := models.Item{
		ID:           uuid.NewString(),
		SKU:          strings.TrimSpace(in.SKU),
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		Location:     in.Location,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		LastUpdated:  s.now(),
	}
	if err := s.store.SaveItem(ctx, item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// UpdateItem memperbarui metadata barang. CurrentStock yang ada dipertahankan
// apapun isi input; penyesuaian stok harus lewat ledger atau opname.
func (s *Service) UpdateItem(ctx context.Context, id string, in ItemInput) (models.Item, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return models.Item{}, ErrItemFieldsMissing
	}

	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, err
	}

	item.SKU = strings.TrimSpace(in.SKU)
	item.Name = strings.TrimSpace(in.Name)
	item.Category = in.Category
	item.Location = in.Location
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	item.MinStock = in.MinStock

	if err := s.store.SaveItem(ctx, item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.store.GetItem(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteItem(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) AddCategory(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrCategoryRequired
	}

	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range existing {
		if strings.EqualFold(cat.Name, name) {
			return models.Category{}, ErrCategoryExists
		}
	}

	cat := models.Category{ID: uuid.NewString(), Name: name}
	if err := s.store.SaveCategory(ctx, cat); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// RenameCategory mengganti nama kategori dan meng-cascade nama baru ke setiap
// barang yang masih memakai nama lama (referensi Item.Category berbasis nama).
// Keduanya dalam satu batch atomik.
func (s *Service) RenameCategory(ctx context.Context, id, newName string) (models.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return models.Category{}, ErrCategoryRequired
	}

	var renamed models.Category
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		cat, err := tx.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		oldName := cat.Name

		if !strings.EqualFold(oldName, newName) {
			existing, err := tx.ListCategories(ctx)
			if err != nil {
				return err
			}
			for _, other := range existing {
				if other.ID != id && strings.EqualFold(other.Name, newName) {
					return ErrCategoryExists
				}
			}
		}

		cat.Name = newName
		if err := tx.SaveCategory(ctx, cat); err != nil {
			return err
		}

		if oldName != newName {
			items, err := tx.ListItems(ctx)
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.Category != oldName {
					continue
				}
				item.Category = newName
				if err := tx.SaveItem(ctx, item); err != nil {
					return err
				}
			}
		}

		renamed = cat
		return nil
	})
	if err != nil {
		return models.Category{}, err
	}
	return renamed, nil
}

// DeleteCategory menolak penghapusan kategori yang masih dipakai barang.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	cat, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		return err
	}
	used := 0
	for _, item := range items {
		if item.Category == cat.Name {
			used++
		}
	}
	if used > 0 {
		return fmt.Errorf("%w (%d barang)", ErrCategoryInUse, used)
	}

	return s.store.DeleteCategory(ctx, id)
}
