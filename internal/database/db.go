package database

import (
	"fmt"

	"opname-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open membuka koneksi PostgreSQL dan menjalankan migrasi skema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal konek ke database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Item{},
		&models.Transaction{},
		&models.OpnameSession{},
		&models.OpnameItem{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate gagal: %w", err)
	}

	return db, nil
}
