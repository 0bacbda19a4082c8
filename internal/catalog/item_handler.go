package catalog

import (
	"errors"
	"fmt"
	"strings"

	"opname-backend/internal/audit"
	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type ItemRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock"`
}

func (r ItemRequest) toInput() ItemInput {
	return ItemInput{
		SKU:          r.SKU,
		Name:         r.Name,
		Category:     r.Category,
		Location:     r.Location,
		Unit:         r.Unit,
		CurrentStock: r.CurrentStock,
		MinStock:     r.MinStock,
	}
}

// GET /api/items?search=&category=
func ListItemsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}

		search := strings.ToLower(strings.TrimSpace(c.Query("search")))
		category := c.Query("category")

		filtered := make([]models.Item, 0, len(items))
		for _, item := range items {
			if search != "" &&
				!strings.Contains(strings.ToLower(item.Name), search) &&
				!strings.Contains(strings.ToLower(item.SKU), search) {
				continue
			}
			if category != "" && item.Category != category {
				continue
			}
			filtered = append(filtered, item)
		}
		return c.JSON(filtered)
	}
}

// GET /api/items/:id
func GetItemHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := svc.GetItem(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Barang tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}
		return c.JSON(item)
	}
}

// POST /api/items
func CreateItemHandler(svc *Service, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		item, err := svc.CreateItem(c.Context(), body.toInput())
		if err != nil {
			if errors.Is(err, ErrItemFieldsMissing) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barang gagal disimpan")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "item",
			EntityID:    item.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Barang baru: %s (%s)", item.Name, item.SKU),
			After:       item,
		})

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/items/:id
func UpdateItemHandler(svc *Service, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		before, err := svc.GetItem(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Barang tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}

		item, err := svc.UpdateItem(c.Context(), before.ID, body.toInput())
		if err != nil {
			if errors.Is(err, ErrItemFieldsMissing) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barang gagal diperbarui")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "item",
			EntityID:    item.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Barang diperbarui: %s", item.Name),
			Before:      before,
			After:       item,
		})

		return c.JSON(item)
	}
}

// DELETE /api/items/:id
func DeleteItemHandler(svc *Service, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		before, err := svc.GetItem(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Barang tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}

		if err := svc.DeleteItem(c.Context(), before.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Barang gagal dihapus")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "item",
			EntityID:    before.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Barang dihapus: %s", before.Name),
			Before:      before,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
