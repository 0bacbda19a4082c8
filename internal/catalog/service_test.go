package catalog

import (
	"context"
	"testing"

	"opname-backend/internal/models"
	"opname-backend/internal/store"
	"opname-backend/internal/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New())

	item, err := svc.CreateItem(ctx, ItemInput{SKU: "ATK-001", Name: "Kertas A4", CurrentStock: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Pcs", item.Unit)
	assert.Equal(t, 50, item.CurrentStock)

	_, err = svc.CreateItem(ctx, ItemInput{SKU: "", Name: "Tanpa SKU"})
	assert.ErrorIs(t, err, ErrItemFieldsMissing)
	_, err = svc.CreateItem(ctx, ItemInput{SKU: "X", Name: "Minus", CurrentStock: -1})
	assert.ErrorIs(t, err, ErrItemFieldsMissing)
}

func TestUpdateItemPreservesStock(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New())

	item, err := svc.CreateItem(ctx, ItemInput{SKU: "ATK-001", Name: "Kertas A4", CurrentStock: 50})
	require.NoError(t, err)

	// edit katalog mencoba menyelundupkan stok baru
	updated, err := svc.UpdateItem(ctx, item.ID, ItemInput{SKU: "ATK-001", Name: "Kertas A4 80gsm", CurrentStock: 999})
	require.NoError(t, err)
	assert.Equal(t, "Kertas A4 80gsm", updated.Name)
	assert.Equal(t, 50, updated.CurrentStock)
}

func TestAddCategoryRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New())

	_, err := svc.AddCategory(ctx, "ATK")
	require.NoError(t, err)

	// case-insensitive
	_, err = svc.AddCategory(ctx, "atk")
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, err = svc.AddCategory(ctx, "   ")
	assert.ErrorIs(t, err, ErrCategoryRequired)
}

func TestRenameCategoryCascadesToItems(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := NewService(st)

	cat, err := svc.AddCategory(ctx, "ATK")
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, "Elektronik")
	require.NoError(t, err)

	a, err := svc.CreateItem(ctx, ItemInput{SKU: "ATK-001", Name: "Kertas", Category: "ATK"})
	require.NoError(t, err)
	b, err := svc.CreateItem(ctx, ItemInput{SKU: "ELK-001", Name: "Mouse", Category: "Elektronik"})
	require.NoError(t, err)

	_, err = svc.RenameCategory(ctx, cat.ID, "Alat Tulis Kantor")
	require.NoError(t, err)

	gotA, err := st.GetItem(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alat Tulis Kantor", gotA.Category)

	// kategori lain tidak tersentuh
	gotB, err := st.GetItem(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elektronik", gotB.Category)

	// rename ke nama yang sudah dipakai kategori lain ditolak
	_, err = svc.RenameCategory(ctx, cat.ID, "elektronik")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestDeleteCategoryInUse(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memstore.New())

	cat, err := svc.AddCategory(ctx, "ATK")
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, ItemInput{SKU: "ATK-001", Name: "Kertas", Category: "ATK"})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// setelah tidak dipakai, penghapusan boleh; nama di barang lama dibiarkan
	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	require.NoError(t, svc.DeleteCategory(ctx, cat.ID))

	err = svc.DeleteCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestDeleteItemLeavesLedgerIntact(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	svc := NewService(st)

	item, err := svc.CreateItem(ctx, ItemInput{SKU: "ATK-001", Name: "Kertas"})
	require.NoError(t, err)
	require.NoError(t, st.AppendTransactions(ctx, []models.Transaction{{
		ID: "tx-1", ItemID: item.ID, Type: models.TransactionIn, Quantity: 5, Date: "2026-08-29",
	}}))

	require.NoError(t, svc.DeleteItem(ctx, item.ID))

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
