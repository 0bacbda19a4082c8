package dashboard

import (
	"fmt"
	"time"

	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/metrics
func MetricsHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard tidak bisa dimuat")
		}
		txs, err := st.ListTransactions(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard tidak bisa dimuat")
		}
		sessions, err := st.ListOpnames(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data dashboard tidak bisa dimuat")
		}

		return c.JSON(ComputeMetrics(items, txs, sessions))
	}
}

// GET /api/dashboard/usage-trend?days=7
func UsageTrendHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := 7
		if raw := c.Query("days", ""); raw != "" {
			if _, err := fmt.Sscan(raw, &days); err != nil || days <= 0 || days > 90 {
				return fiber.NewError(fiber.StatusBadRequest, "Parameter days tidak valid")
			}
		}

		txs, err := st.ListTransactions(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data tren tidak bisa dimuat")
		}

		return c.JSON(UsageTrend(txs, time.Now(), days))
	}
}

// GET /api/dashboard/categories
func CategoryDistributionHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data kategori tidak bisa dimuat")
		}
		return c.JSON(CategoryDistribution(items))
	}
}
