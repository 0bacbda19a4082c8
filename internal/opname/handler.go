package opname

import (
	"errors"
	"fmt"

	"opname-backend/internal/audit"
	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateSessionRequest struct {
	Notes string `json:"notes"`
}

type RecordCountRequest struct {
	// nil = input dikosongkan, baris kembali jadi "belum dihitung"
	PhysicalStock *int `json:"physicalStock"`
}

type SessionSummary struct {
	ID               string              `json:"id"`
	Date             string              `json:"date"`
	Status           models.OpnameStatus `json:"status"`
	Notes            string              `json:"notes"`
	TotalItems       int                 `json:"totalItems"`
	CountedItems     int                 `json:"countedItems"`
	DiscrepancyCount int                 `json:"discrepancyCount"`
}

type SessionReport struct {
	SessionSummary
	AccuracyRate  int                 `json:"accuracyRate"`
	Discrepancies []models.OpnameItem `json:"discrepancies"`
}

func summarize(session models.OpnameSession) SessionSummary {
	counted, total := Progress(session)
	return SessionSummary{
		ID:               session.ID,
		Date:             session.Date.Format("2006-01-02 15:04:05"),
		Status:           session.Status,
		Notes:            session.Notes,
		TotalItems:       total,
		CountedItems:     counted,
		DiscrepancyCount: len(Discrepancies(session)),
	}
}

// POST /api/opnames
func CreateSessionHandler(svc *Service, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSessionRequest
		// body boleh kosong
		_ = c.BodyParser(&body)

		session, err := svc.CreateSession(c.Context(), body.Notes)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sesi opname gagal dibuat")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "opname_session",
			EntityID:    session.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sesi opname baru: %s (%d barang)", session.Notes, len(session.Items)),
		})

		return c.Status(fiber.StatusCreated).JSON(session)
	}
}

// GET /api/opnames
func ListSessionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessions, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sesi opname tidak bisa dimuat")
		}

		resp := make([]SessionSummary, 0, len(sessions))
		for _, session := range sessions {
			resp = append(resp, summarize(session))
		}
		return c.JSON(resp)
	}
}

// GET /api/opnames/:id
func GetSessionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sesi opname tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sesi opname tidak bisa dimuat")
		}
		return c.JSON(session)
	}
}

// PUT /api/opnames/:id/items/:itemId
// Catat hasil hitung fisik; boleh diulang, nilai terakhir yang dipakai.
func RecordCountHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordCountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		session, err := svc.RecordCount(c.Context(), c.Params("id"), c.Params("itemId"), body.PhysicalStock)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrSessionNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Sesi opname tidak ditemukan")
			case errors.Is(err, ErrSessionClosed):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			case errors.Is(err, ErrItemNotInSession), errors.Is(err, ErrNegativeCount):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Hasil hitung gagal disimpan")
		}
		return c.JSON(session)
	}
}

// POST /api/opnames/:id/finalize
func FinalizeHandler(svc *Service, auditSvc *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Finalize(c.Context(), c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, store.ErrSessionNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Sesi opname tidak ditemukan")
			case errors.Is(err, ErrSessionClosed):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Finalisasi opname gagal")
		}

		_ = auditSvc.WriteLog(c.Context(), audit.LogOptions{
			EntityType:  "opname_session",
			EntityID:    res.Session.ID,
			Action:      models.AuditActionFinalize,
			Description: fmt.Sprintf("Opname %s selesai, %d stok disesuaikan", res.Session.Notes, res.AdjustedCount),
		})

		return c.JSON(fiber.Map{
			"session":       summarize(res.Session),
			"adjustedCount": res.AdjustedCount,
			"message":       fmt.Sprintf("Stock Opname selesai. %d stok barang disesuaikan.", res.AdjustedCount),
		})
	}
}

// GET /api/opnames/:id/report
func SessionReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sesi opname tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Sesi opname tidak bisa dimuat")
		}

		return c.JSON(SessionReport{
			SessionSummary: summarize(session),
			AccuracyRate:   AccuracyRate(session),
			Discrepancies:  Discrepancies(session),
		})
	}
}
