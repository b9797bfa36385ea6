package services

import (
	"context"
	"fmt"

	"github.com/cafehnd/cafehnd_backend/internal/apperrors"
	"github.com/cafehnd/cafehnd_backend/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const purchaseExportSheet = "Compras"

var purchaseExportHeaders = []string{
	"Registro", "Reg. Compra", "Exportador", "Cosecha", "Fecha", "Clase",
	"Sacos Lavado", "Valor Lavado (L)", "Sacos Corriente", "Valor Corriente (L)",
	"Sacos Registro", "Sede", "Observaciones", "Fecha Registro",
}

func (s *purchaseService) ExportPurchases(ctx context.Context, filter domain.PurchaseExportFilter) ([]byte, error) {
	if filter.From.IsZero() || filter.To.IsZero() {
		return nil, fmt.Errorf("%w: export range is required", apperrors.ErrValidation)
	}
	if filter.To.Before(filter.From) {
		return nil, fmt.Errorf("%w: export range ends before it starts", apperrors.ErrValidation)
	}

	entries, err := s.purchaseRepo.ListLedgerEntriesForExport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases for export: %w", err)
	}

	content, err := renderPurchaseWorkbook(entries)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Purchases exported", "rows", len(entries))
	return content, nil
}

func renderPurchaseWorkbook(entries []domain.LedgerEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(purchaseExportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range purchaseExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(purchaseExportSheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"6F4E37"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(purchaseExportHeaders), 1)
	_ = f.SetCellStyle(purchaseExportSheet, "A1", lastHeader, headerStyle)

	for i, e := range entries {
		row := []any{
			e.EntryID, e.ReportNumber, e.ExporterCode, e.HarvestYear,
			e.PurchaseDate.Format(domain.DateLayout), string(e.Class),
			e.SacksWashed.InexactFloat64(), e.ValueWashedLocal.InexactFloat64(),
			e.SacksUnwashed.InexactFloat64(), e.ValueUnwashedLocal.InexactFloat64(),
			e.ThisEntrySacks.InexactFloat64(), deref(e.Region), deref(e.Notes),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(purchaseExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(purchaseExportSheet, "A", "A", 10)
	_ = f.SetColWidth(purchaseExportSheet, "B", "F", 14)
	_ = f.SetColWidth(purchaseExportSheet, "G", "K", 16)
	_ = f.SetColWidth(purchaseExportSheet, "L", "L", 20)
	_ = f.SetColWidth(purchaseExportSheet, "M", "M", 40)
	_ = f.SetColWidth(purchaseExportSheet, "N", "N", 20)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}
	return buffer.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
