package backup

import (
	"fmt"
	"time"

	"opname-backend/internal/audit"
	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

const payloadVersion = "2.0"

// Payload adalah format berkas backup lengkap. Versi lama (1.x) tanpa
// kategori tetap bisa diimpor, field yang hilang dianggap kosong.
type Payload struct {
	Items        []models.Item          `json:"items"`
	Transactions []models.Transaction   `json:"transactions"`
	Opnames      []models.OpnameSession `json:"opnames"`
	Categories   []models.Category      `json:"categories"`
	ExportDate   string                 `json:"exportDate"`
	Version      string                 `json:"version"`
}

// GET /api/backup/export
func ExportHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export gagal")
		}
		txs, err := st.ListTransactions(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export gagal")
		}
		opnames, err := st.ListOpnames(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export gagal")
		}
		categories, err := st.ListCategories(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export gagal")
		}

		filename := fmt.Sprintf("backup_gudang_%s.json", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

		return c.JSON(Payload{
			Items:        items,
			Transactions: txs,
			Opnames:      opnames,
			Categories:   categories,
			ExportDate:   time.Now().Format(time.RFC3339),
			Version:      payloadVersion,
		})
	}
}

// POST /api/backup/import
// Mengganti SELURUH data dengan isi berkas backup. Semua-atau-tidak:
// kalau gagal di tengah, data lama tetap utuh.
func ImportHandler(st store.Store, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload Payload
		if err := c.BodyParser(&payload); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File backup tidak valid")
		}
		if payload.Items == nil || payload.Transactions == nil {
			return fiber.NewError(fiber.StatusBadRequest, "File backup tidak valid: data barang/transaksi tidak ditemukan")
		}

		err := st.Atomically(c.Context(), func(tx store.Store) error {
			return tx.ReplaceAll(c.Context(), payload.Items, payload.Transactions, payload.Opnames, payload.Categories)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Import gagal, data lama tetap dipakai")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "backup",
			EntityID:    "-",
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("Import data: %d barang, %d transaksi, %d opname", len(payload.Items), len(payload.Transactions), len(payload.Opnames)),
		})

		return c.JSON(fiber.Map{"message": "Data berhasil diimpor"})
	}
}

// POST /api/backup/reset
func ResetHandler(st store.Store, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := st.Reset(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reset data gagal")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "backup",
			EntityID:    "-",
			Action:      models.AuditActionReset,
			Description: "Seluruh data dihapus (factory reset)",
		})

		return c.JSON(fiber.Map{"message": "Seluruh data berhasil dihapus"})
	}
}
