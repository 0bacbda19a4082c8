package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicallyRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.SaveItem(ctx, models.Item{ID: "item-1", SKU: "A", Name: "Kertas", CurrentStock: 10}))

	boom := errors.New("gagal di tengah")
	err := st.Atomically(ctx, func(tx store.Store) error {
		if err := tx.SetItemStock(ctx, "item-1", 99, time.Now()); err != nil {
			return err
		}
		if err := tx.AppendTransactions(ctx, []models.Transaction{{ID: "tx-1", ItemID: "item-1", Type: models.TransactionIn, Quantity: 5, Date: "2026-08-29"}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// tidak ada perubahan parsial yang bocor
	item, err := st.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.CurrentStock)

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestAtomicallyCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.SaveItem(ctx, models.Item{ID: "item-1", SKU: "A", Name: "Kertas", CurrentStock: 10}))

	err := st.Atomically(ctx, func(tx store.Store) error {
		return tx.SetItemStock(ctx, "item-1", 7, time.Now())
	})
	require.NoError(t, err)

	item, err := st.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item.CurrentStock)
}

func TestTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := New()

	require.NoError(t, st.AppendTransactions(ctx, []models.Transaction{{ID: "tx-1", Type: models.TransactionIn, Quantity: 1, Date: "2026-08-27"}}))
	require.NoError(t, st.AppendTransactions(ctx, []models.Transaction{{ID: "tx-2", Type: models.TransactionOut, Quantity: 2, Date: "2026-08-28"}}))

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-2", txs[0].ID)
	assert.Equal(t, "tx-1", txs[1].ID)
}

func TestGetOpnameReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := New()
	physical := 4
	require.NoError(t, st.CreateOpname(ctx, models.OpnameSession{
		ID:     "sesi-1",
		Status: models.OpnameOpen,
		Items:  []models.OpnameItem{{ItemID: "item-1", SystemStock: 5, PhysicalStock: &physical, Difference: -1}},
	}))

	got, err := st.GetOpname(ctx, "sesi-1")
	require.NoError(t, err)

	// mutasi hasil Get tidak boleh tembus ke store
	*got.Items[0].PhysicalStock = 99
	got.Items[0].SystemStock = 99

	again, err := st.GetOpname(ctx, "sesi-1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Items[0].SystemStock)
	assert.Equal(t, 4, *again.Items[0].PhysicalStock)
}

func TestReplaceAllAndReset(t *testing.T) {
	ctx := context.Background()
	st := New()
	require.NoError(t, st.SaveItem(ctx, models.Item{ID: "lama", SKU: "L", Name: "Lama"}))
	require.NoError(t, st.AppendAuditLog(ctx, models.AuditLog{EntityType: "item", EntityID: "lama", Action: models.AuditActionCreate}))

	require.NoError(t, st.ReplaceAll(ctx,
		[]models.Item{{ID: "baru", SKU: "B", Name: "Baru"}},
		[]models.Transaction{{ID: "tx-1", ItemID: "baru", Type: models.TransactionIn, Quantity: 1, Date: "2026-08-29"}},
		nil,
		[]models.Category{{ID: "cat-1", Name: "ATK"}},
	))

	items, err := st.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "baru", items[0].ID)

	// audit log tidak ikut diganti oleh restore
	logs, err := st.ListAuditLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	require.NoError(t, st.Reset(ctx))
	items, err = st.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	logs, err = st.ListAuditLogs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAuditLogLimit(t *testing.T) {
	ctx := context.Background()
	st := New()
	for i := 0; i < 5; i++ {
		require.NoError(t, st.AppendAuditLog(ctx, models.AuditLog{EntityType: "item", Action: models.AuditActionUpdate}))
	}

	logs, err := st.ListAuditLogs(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	// terbaru dulu, ID menaik
	assert.Equal(t, uint(5), logs[0].ID)
}
