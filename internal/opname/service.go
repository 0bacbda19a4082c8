package opname

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrSessionClosed    = errors.New("sesi opname sudah selesai")
	ErrItemNotInSession = errors.New("barang tidak ada dalam sesi opname")
	ErrNegativeCount    = errors.New("stok fisik tidak boleh negatif")
)

// Service mengelola siklus hidup sesi opname: OPEN -> COMPLETED (terminal).
// Sesi yang sudah COMPLETED tidak bisa diubah lagi; finalisasi ulang ditolak.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// CreateSession membuka sesi baru dengan snapshot stok sistem seluruh katalog.
// Snapshot dibekukan: perubahan stok maupun barang baru setelah sesi dibuat
// tidak memengaruhi systemStock sesi yang sedang berjalan.
func (s *Service) CreateSession(ctx context.Context, notes string) (models.OpnameSession, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return models.OpnameSession{}, err
	}

	now := s.now()
	if notes == "" {
		notes = fmt.Sprintf("SO-%s", now.Format("20060102"))
	}

	session := models.OpnameSession{
		ID:     uuid.NewString(),
		Date:   now,
		Status: models.OpnameOpen,
		Notes:  notes,
		Items:  make([]models.OpnameItem, 0, len(items)),
	}
	for _, item := range items {
		session.Items = append(session.Items, models.OpnameItem{
			ItemID:      item.ID,
			SystemStock: item.CurrentStock,
			// PhysicalStock nil = belum dihitung
			Difference: 0,
		})
	}

	if err := s.store.CreateOpname(ctx, session); err != nil {
		return models.OpnameSession{}, err
	}
	return session, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.OpnameSession, error) {
	return s.store.GetOpname(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.OpnameSession, error) {
	return s.store.ListOpnames(ctx)
}

// RecordCount mencatat hasil hitung fisik satu barang. physical nil berarti
// input dikosongkan lagi (kembali ke "belum dihitung", bukan nol). Boleh
// dipanggil berulang untuk barang yang sama; nilai terakhir yang menang.
func (s *Service) RecordCount(ctx context.Context, sessionID, itemID string, physical *int) (models.OpnameSession, error) {
	if physical != nil && *physical < 0 {
		return models.OpnameSession{}, ErrNegativeCount
	}

	session, err := s.store.GetOpname(ctx, sessionID)
	if err != nil {
		return models.OpnameSession{}, err
	}
	if session.Status != models.OpnameOpen {
		return models.OpnameSession{}, ErrSessionClosed
	}

	found := false
	for i := range session.Items {
		if session.Items[i].ItemID != itemID {
			continue
		}
		session.Items[i].PhysicalStock = physical
		if physical != nil {
			session.Items[i].Difference = *physical - session.Items[i].SystemStock
		} else {
			session.Items[i].Difference = 0
		}
		found = true
		break
	}
	if !found {
		return models.OpnameSession{}, ErrItemNotInSession
	}

	if err := s.store.UpdateOpname(ctx, session); err != nil {
		return models.OpnameSession{}, err
	}
	return session, nil
}

type FinalizeResult struct {
	Session       models.OpnameSession
	AdjustedCount int
}

// Finalize menutup sesi dan menyelaraskan stok sistem dengan hasil hitung
// fisik dalam satu batch atomik:
//  1. status sesi jadi COMPLETED,
//  2. satu transaksi OPNAME_ADJUSTMENT per selisih (audit trail),
//  3. stok barang di-force-set ke nilai fisik (bukan delta) supaya konvergen
//     persis berapapun pergeseran yang terjadi.
//
// Barang tanpa selisih atau belum dihitung tidak disentuh. Memanggil Finalize
// pada sesi yang sudah COMPLETED ditolak dengan ErrSessionClosed.
func (s *Service) Finalize(ctx context.Context, sessionID string) (FinalizeResult, error) {
	var res FinalizeResult
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		session, err := tx.GetOpname(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.Status != models.OpnameOpen {
			return ErrSessionClosed
		}

		session.Status = models.OpnameCompleted
		if err := tx.UpdateOpname(ctx, session); err != nil {
			return err
		}

		now := s.now()
		txDate := now.Format("2006-01-02")

		adjustments := make([]models.Transaction, 0)
		adjusted := 0
		for _, d := range Discrepancies(session) {
			adjustments = append(adjustments, models.Transaction{
				ID:              uuid.NewString(),
				ItemID:          d.ItemID,
				Type:            models.TransactionOpnameAdjustment,
				Quantity:        abs(d.Difference),
				Date:            txDate,
				Notes:           fmt.Sprintf("Opname Adjustment: System(%d) -> Physical(%d)", d.SystemStock, *d.PhysicalStock),
				RelatedOpnameID: session.ID,
				CreatedAt:       now,
			})

			// Barang bisa saja sudah dihapus dari katalog setelah snapshot;
			// transaksinya tetap dicatat, force-set dilewati.
			if err := tx.SetItemStock(ctx, d.ItemID, *d.PhysicalStock, now); err != nil {
				if errors.Is(err, store.ErrItemNotFound) {
					continue
				}
				return err
			}
			adjusted++
		}

		if err := tx.AppendTransactions(ctx, adjustments); err != nil {
			return err
		}

		res = FinalizeResult{Session: session, AdjustedCount: adjusted}
		return nil
	})
	if err != nil {
		return FinalizeResult{}, err
	}
	return res, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
