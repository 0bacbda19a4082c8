package ledger

import (
	"context"
	"testing"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"
	"opname-backend/internal/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, st *memstore.Store, stock int) models.Item {
	t.Helper()
	item := models.Item{
		ID:           "item-1",
		SKU:          "ATK-001",
		Name:         "Kertas A4 80gsm",
		Category:     "ATK",
		Unit:         "Rim",
		CurrentStock: stock,
		MinStock:     10,
	}
	require.NoError(t, st.SaveItem(context.Background(), item))
	return item
}

func TestRecordTransactionInOut(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	seedItem(t, st, 50)
	svc := NewService(st, true)

	out, err := svc.RecordTransaction(ctx, RecordInput{
		ItemID:   "item-1",
		Type:     models.TransactionOut,
		Quantity: 10,
		Notes:    "Pemakaian ruang rapat",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, out.NewStock)
	assert.Equal(t, models.TransactionOut, out.Transaction.Type)
	assert.Equal(t, 10, out.Transaction.Quantity)

	in, err := svc.RecordTransaction(ctx, RecordInput{
		ItemID:   "item-1",
		Type:     models.TransactionIn,
		Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, in.NewStock)

	item, err := st.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 45, item.CurrentStock)

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	// terbaru dulu
	assert.Equal(t, models.TransactionIn, txs[0].Type)
	assert.Equal(t, models.TransactionOut, txs[1].Type)
}

func TestRecordTransactionAdjustmentDoesNotTouchStock(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	seedItem(t, st, 50)
	svc := NewService(st, true)

	res, err := svc.RecordTransaction(ctx, RecordInput{
		ItemID:   "item-1",
		Type:     models.TransactionAdjustment,
		Quantity: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, res.NewStock)

	item, err := st.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 50, item.CurrentStock)
}

func TestRecordTransactionValidation(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	seedItem(t, st, 50)
	svc := NewService(st, true)

	_, err := svc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: models.TransactionIn, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: models.TransactionIn, Quantity: -3})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: "TRANSFER", Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: models.TransactionIn, Quantity: 1, Date: "29-08-2026"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestRecordTransactionDateDefaultsToToday(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	seedItem(t, st, 50)
	svc := NewService(st, true)

	res, err := svc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: models.TransactionIn, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), res.Transaction.Date)
}

func TestRecordTransactionNegativeStockPolicy(t *testing.T) {
	ctx := context.Background()

	// kebijakan longgar: stok boleh minus
	st := memstore.New()
	seedItem(t, st, 5)
	svc := NewService(st, true)

	res, err := svc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: models.TransactionOut, Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, -3, res.NewStock)

	// kebijakan ketat: OUT melebihi stok ditolak dan tidak meninggalkan jejak
	strict := memstore.New()
	seedItem(t, strict, 5)
	strictSvc := NewService(strict, false)

	_, err = strictSvc.RecordTransaction(ctx, RecordInput{ItemID: "item-1", Type: models.TransactionOut, Quantity: 8})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	item, err := strict.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 5, item.CurrentStock)

	txs, err := strict.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRecordTransactionUnknownItemRollsBack(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := NewService(st, true)

	_, err := svc.RecordTransaction(ctx, RecordInput{ItemID: "ghost", Type: models.TransactionIn, Quantity: 3})
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
