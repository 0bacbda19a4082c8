package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type exportRow struct {
	Date     string
	Type     string
	SKU      string
	ItemName string
	Quantity int
	Notes    string
}

func buildExportRows(txs []models.Transaction, items []models.Item) []exportRow {
	byID := make(map[string]models.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	rows := make([]exportRow, 0, len(txs))
	for _, t := range txs {
		row := exportRow{
			Date:     t.Date,
			Type:     string(t.Type),
			SKU:      "N/A",
			ItemName: "Unknown",
			Quantity: t.Quantity,
			Notes:    t.Notes,
		}
		if item, ok := byID[t.ItemID]; ok {
			row.SKU = item.SKU
			row.ItemName = item.Name
		}
		rows = append(rows, row)
	}
	return rows
}

var exportHeaders = []string{"Tanggal", "Tipe", "SKU", "Nama Barang", "Jumlah", "Keterangan"}

// GET /api/transactions/export/csv
func ExportCSVHandler(svc *Service, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa dimuat")
		}
		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(exportHeaders); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
		}
		for _, row := range buildExportRows(txs, items) {
			record := []string{row.Date, row.Type, row.SKU, row.ItemName, strconv.Itoa(row.Quantity), row.Notes}
			if err := w.Write(record); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
		}

		filename := fmt.Sprintf("laporan_transaksi_%s.csv", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}

// GET /api/transactions/export/xlsx
func ExportXLSXHandler(svc *Service, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa dimuat")
		}
		items, err := st.ListItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Barang tidak bisa dimuat")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		for i, header := range exportHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
			}
		}

		for rowIdx, row := range buildExportRows(txs, items) {
			values := []interface{}{row.Date, row.Type, row.SKU, row.ItemName, row.Quantity, row.Notes}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
				}
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Laporan gagal dibuat")
		}

		filename := fmt.Sprintf("laporan_transaksi_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
