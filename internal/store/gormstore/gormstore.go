package gormstore

import (
	"context"
	"errors"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"gorm.io/gorm"
)

// Store mengimplementasikan store.Store di atas gorm/PostgreSQL.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&items).Error
	return items, err
}

func (s *Store) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Item{}, store.ErrItemNotFound
	}
	return item, err
}

func (s *Store) SaveItem(ctx context.Context, item models.Item) error {
	return s.db.WithContext(ctx).Save(&item).Error
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

func (s *Store) SetItemStock(ctx context.Context, id string, stock int, ts time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock": stock,
			"last_updated":  ts,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, err
}

func (s *Store) GetCategory(ctx context.Context, id string) (models.Category, error) {
	var cat models.Category
	err := s.db.WithContext(ctx).First(&cat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, store.ErrCategoryNotFound
	}
	return cat, err
}

func (s *Store) SaveCategory(ctx context.Context, cat models.Category) error {
	return s.db.WithContext(ctx).Save(&cat).Error
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (s *Store) AppendTransactions(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&txs).Error
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&txs).Error
	return txs, err
}

func (s *Store) CreateOpname(ctx context.Context, session models.OpnameSession) error {
	return s.db.WithContext(ctx).Create(&session).Error
}

func (s *Store) GetOpname(ctx context.Context, id string) (models.OpnameSession, error) {
	var session models.OpnameSession
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("opname_items.id asc") }).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.OpnameSession{}, store.ErrSessionNotFound
	}
	return session, err
}

func (s *Store) ListOpnames(ctx context.Context) ([]models.OpnameSession, error) {
	var sessions []models.OpnameSession
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("opname_items.id asc") }).
		Order("date desc").
		Find(&sessions).Error
	return sessions, err
}

// UpdateOpname menyimpan ulang sesi beserta barisnya. Baris lama dihapus dulu
// supaya hasil akhirnya persis sama dengan state yang dikirim pemanggil.
func (s *Store) UpdateOpname(ctx context.Context, session models.OpnameSession) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.OpnameSession{}).
			Where("id = ?", session.ID).
			Updates(map[string]interface{}{
				"date":   session.Date,
				"status": session.Status,
				"notes":  session.Notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrSessionNotFound
		}
		if err := tx.Delete(&models.OpnameItem{}, "session_id = ?", session.ID).Error; err != nil {
			return err
		}
		for i := range session.Items {
			session.Items[i].ID = 0
			session.Items[i].SessionID = session.ID
		}
		if len(session.Items) == 0 {
			return nil
		}
		return tx.Create(&session.Items).Error
	})
}

func (s *Store) AppendAuditLog(ctx context.Context, entry models.AuditLog) error {
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *Store) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	q := s.db.WithContext(ctx).Order("created_at desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

func (s *Store) ReplaceAll(ctx context.Context, items []models.Item, txs []models.Transaction, opnames []models.OpnameSession, categories []models.Category) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.OpnameItem{}, &models.OpnameSession{},
			&models.Transaction{}, &models.Item{}, &models.Category{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		if len(txs) > 0 {
			if err := tx.Create(&txs).Error; err != nil {
				return err
			}
		}
		for i := range opnames {
			if err := tx.Create(&opnames[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.OpnameItem{}, &models.OpnameSession{},
			&models.Transaction{}, &models.Item{}, &models.Category{},
			&models.AuditLog{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Atomically memetakan batch engine ke transaksi database.
func (s *Store) Atomically(ctx context.Context, fn func(store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
