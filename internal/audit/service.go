package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"opname-backend/internal/models"
	"opname-backend/internal/store"
)

type LogOptions struct {
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// WriteLog menyimpan jejak audit. Dipanggil best-effort setelah mutasi sukses;
// kegagalannya tidak membatalkan operasi utama.
func (s *Service) WriteLog(ctx context.Context, opts LogOptions) error {
	// jsonb tidak menerima string kosong, jadi default-nya "null"
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := s.store.AppendAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("audit log gagal disimpan: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return s.store.ListAuditLogs(ctx, limit)
}
