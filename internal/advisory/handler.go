package advisory

import (
	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// POST /api/advisory/analyze
func AnalyzeHandler(svc *Service, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data stok tidak bisa dimuat")
		}
		txs, err := st.ListTransactions(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data transaksi tidak bisa dimuat")
		}

		return c.JSON(svc.Analyze(c.Context(), items, txs))
	}
}
