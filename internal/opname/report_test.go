package opname

import (
	"testing"

	"opname-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func sessionWith(items ...models.OpnameItem) models.OpnameSession {
	return models.OpnameSession{ID: "sesi-1", Status: models.OpnameOpen, Items: items}
}

func TestAccuracyRate(t *testing.T) {
	// belum ada yang dihitung
	s := sessionWith(
		models.OpnameItem{ItemID: "a", SystemStock: 10},
		models.OpnameItem{ItemID: "b", SystemStock: 5},
	)
	assert.Equal(t, 0, AccuracyRate(s))

	// semua cocok
	s = sessionWith(
		models.OpnameItem{ItemID: "a", SystemStock: 10, PhysicalStock: intPtr(10), Difference: 0},
		models.OpnameItem{ItemID: "b", SystemStock: 5, PhysicalStock: intPtr(5), Difference: 0},
	)
	assert.Equal(t, 100, AccuracyRate(s))

	// 2 dari 3 cocok, dibulatkan
	s = sessionWith(
		models.OpnameItem{ItemID: "a", SystemStock: 10, PhysicalStock: intPtr(10), Difference: 0},
		models.OpnameItem{ItemID: "b", SystemStock: 5, PhysicalStock: intPtr(4), Difference: -1},
		models.OpnameItem{ItemID: "c", SystemStock: 8, PhysicalStock: intPtr(8), Difference: 0},
	)
	assert.Equal(t, 67, AccuracyRate(s))
}

func TestAccuracyRateIgnoresUncounted(t *testing.T) {
	// baris belum dihitung tidak masuk penyebut: 2 terhitung, keduanya cocok
	s := sessionWith(
		models.OpnameItem{ItemID: "a", SystemStock: 10, PhysicalStock: intPtr(10), Difference: 0},
		models.OpnameItem{ItemID: "b", SystemStock: 5, PhysicalStock: intPtr(5), Difference: 0},
		models.OpnameItem{ItemID: "c", SystemStock: 8},
	)
	assert.Equal(t, 100, AccuracyRate(s))

	counted, total := Progress(s)
	assert.Equal(t, 2, counted)
	assert.Equal(t, 3, total)
}

func TestDiscrepancies(t *testing.T) {
	s := sessionWith(
		models.OpnameItem{ItemID: "a", SystemStock: 10, PhysicalStock: intPtr(8), Difference: -2},
		models.OpnameItem{ItemID: "b", SystemStock: 5, PhysicalStock: intPtr(5), Difference: 0},
		models.OpnameItem{ItemID: "c", SystemStock: 8},
		models.OpnameItem{ItemID: "d", SystemStock: 1, PhysicalStock: intPtr(4), Difference: 3},
	)

	got := Discrepancies(s)
	// urutan katalog dipertahankan
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ItemID)
	assert.Equal(t, "d", got[1].ItemID)
}
