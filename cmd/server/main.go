package main

import (
	"context"
	"log"
	"strings"

	"opname-backend/internal/advisory"
	"opname-backend/internal/audit"
	"opname-backend/internal/backup"
	"opname-backend/internal/catalog"
	"opname-backend/internal/config"
	"opname-backend/internal/dashboard"
	"opname-backend/internal/database"
	"opname-backend/internal/ledger"
	"opname-backend/internal/opname"
	"opname-backend/internal/store"
	"opname-backend/internal/store/gormstore"
	"opname-backend/internal/store/memstore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	var st store.Store
	if cfg.DatabaseDSN != "" {
		db, err := database.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Fatal("Koneksi database gagal:", err)
		}
		st = gormstore.New(db)
	} else {
		st = memstore.New()
	}

	if err := database.Seed(context.Background(), st); err != nil {
		log.Fatal("Seed data awal gagal:", err)
	}

	auditSvc := audit.NewService(st)
	ledgerSvc := ledger.NewService(st, cfg.AllowNegativeStock)
	opnameSvc := opname.NewService(st)
	catalogSvc := catalog.NewService(st)
	advisorySvc := advisory.NewService(cfg.GeminiBaseURL, cfg.GeminiAPIKey)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan pada server",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Katalog barang
	api.Get("/items", catalog.ListItemsHandler(catalogSvc))
	api.Get("/items/:id", catalog.GetItemHandler(catalogSvc))
	api.Post("/items", catalog.CreateItemHandler(catalogSvc, auditSvc))
	api.Put("/items/:id", catalog.UpdateItemHandler(catalogSvc, auditSvc))
	api.Delete("/items/:id", catalog.DeleteItemHandler(catalogSvc, auditSvc))

	// Kategori
	api.Get("/categories", catalog.ListCategoriesHandler(catalogSvc))
	api.Post("/categories", catalog.CreateCategoryHandler(catalogSvc))
	api.Put("/categories/:id", catalog.UpdateCategoryHandler(catalogSvc))
	api.Delete("/categories/:id", catalog.DeleteCategoryHandler(catalogSvc))

	// Buku stok (ledger)
	api.Get("/transactions", ledger.ListTransactionsHandler(ledgerSvc, st))
	api.Post("/transactions", ledger.CreateTransactionHandler(ledgerSvc, auditSvc))
	api.Get("/transactions/export/csv", ledger.ExportCSVHandler(ledgerSvc, st))
	api.Get("/transactions/export/xlsx", ledger.ExportXLSXHandler(ledgerSvc, st))

	// Stock opname
	api.Post("/opnames", opname.CreateSessionHandler(opnameSvc, auditSvc))
	api.Get("/opnames", opname.ListSessionsHandler(opnameSvc))
	api.Get("/opnames/:id", opname.GetSessionHandler(opnameSvc))
	api.Put("/opnames/:id/items/:itemId", opname.RecordCountHandler(opnameSvc))
	api.Post("/opnames/:id/finalize", opname.FinalizeHandler(opnameSvc, auditSvc))
	api.Get("/opnames/:id/report", opname.SessionReportHandler(opnameSvc))

	// Dashboard
	api.Get("/dashboard/metrics", dashboard.MetricsHandler(st))
	api.Get("/dashboard/usage-trend", dashboard.UsageTrendHandler(st))
	api.Get("/dashboard/categories", dashboard.CategoryDistributionHandler(st))

	// Backup & restore
	api.Get("/backup/export", backup.ExportHandler(st))
	api.Post("/backup/import", backup.ImportHandler(st, auditSvc))
	api.Post("/backup/reset", backup.ResetHandler(st, auditSvc))

	// Analisis AI
	api.Post("/advisory/analyze", advisory.AnalyzeHandler(advisorySvc, st))

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler(auditSvc))

	log.Println("Server berjalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
