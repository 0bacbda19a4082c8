package ledger

import (
	"errors"
	"fmt"

	"opname-backend/internal/audit"
	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateTransactionRequest struct {
	ItemID   string `json:"itemId"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Date     string `json:"date"` // "2026-08-29"
	Notes    string `json:"notes"`
}

type TransactionResponse struct {
	models.Transaction
	ItemSKU  string `json:"itemSku"`
	ItemName string `json:"itemName"`
	NewStock *int   `json:"newStock,omitempty"`
}

// POST /api/transactions
func CreateTransactionHandler(svc *Service, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		res, err := svc.RecordTransaction(c.Context(), RecordInput{
			ItemID:   body.ItemID,
			Type:     models.TransactionType(body.Type),
			Quantity: body.Quantity,
			Date:     body.Date,
			Notes:    body.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrItemNotFound):
				return fiber.NewError(fiber.StatusBadRequest, "Barang tidak ditemukan")
			case errors.Is(err, ErrInvalidQuantity),
				errors.Is(err, ErrInvalidType),
				errors.Is(err, ErrInvalidDate),
				errors.Is(err, ErrInsufficientStock):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi gagal disimpan")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "transaction",
			EntityID:    res.Transaction.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Transaksi %s %d unit", res.Transaction.Type, res.Transaction.Quantity),
			After:       res.Transaction,
		})

		newStock := res.NewStock
		return c.Status(fiber.StatusCreated).JSON(TransactionResponse{
			Transaction: res.Transaction,
			NewStock:    &newStock,
		})
	}
}

// GET /api/transactions
func ListTransactionsHandler(svc *Service, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa dimuat")
		}

		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}
		byID := make(map[string]models.Item, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}

		resp := make([]TransactionResponse, 0, len(txs))
		for _, t := range txs {
			row := TransactionResponse{Transaction: t}
			if item, ok := byID[t.ItemID]; ok {
				row.ItemSKU = item.SKU
				row.ItemName = item.Name
			} else {
				row.ItemSKU = "---"
				row.ItemName = "Barang terhapus"
			}
			resp = append(resp, row)
		}
		return c.JSON(resp)
	}
}
