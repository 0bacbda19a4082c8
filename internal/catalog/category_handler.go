package catalog

import (
	"errors"

	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

// GET /api/categories
func ListCategoriesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := svc.ListCategories(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori tidak bisa dimuat")
		}
		return c.JSON(categories)
	}
}

// POST /api/categories
func CreateCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		cat, err := svc.AddCategory(c.Context(), body.Name)
		if err != nil {
			switch {
			case errors.Is(err, ErrCategoryRequired):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrCategoryExists):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal disimpan")
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// PUT /api/categories/:id
// Ganti nama kategori; nama baru dirambatkan ke semua barang pemakai nama lama.
func UpdateCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		cat, err := svc.RenameCategory(c.Context(), c.Params("id"), body.Name)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrCategoryNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
			case errors.Is(err, ErrCategoryRequired):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, ErrCategoryExists):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal diperbarui")
		}
		return c.JSON(cat)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteCategory(c.Context(), c.Params("id")); err != nil {
			switch {
			case errors.Is(err, store.ErrCategoryNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
			case errors.Is(err, ErrCategoryInUse):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori gagal dihapus")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
