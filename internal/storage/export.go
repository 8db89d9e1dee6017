package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"dentalsite/internal/forms"
)

const leadsSheet = "Leads"

var leadHeaders = []string{
	"ID", "Kind", "Created At", "Status", "Name", "Phone", "Email",
	"Message", "Service", "Service Slug", "Quantity", "Material",
	"Price Min", "Price Max", "Locale", "Client",
}

// WriteLeadsWorkbook renders leads as a single-sheet xlsx workbook.
func WriteLeadsWorkbook(w io.Writer, leads []forms.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), leadsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for col, header := range leadHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(leadsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(leadHeaders), 1)
		_ = f.SetCellStyle(leadsSheet, "A1", last, style)
	}

	for row, lead := range leads {
		data := []any{
			lead.ID,
			string(lead.Kind),
			lead.CreatedAt.Format("2006-01-02 15:04"),
			lead.Status,
			lead.Name,
			lead.Phone,
			lead.Email,
			lead.Message,
			lead.Service,
			lead.ServiceSlug,
			lead.Quantity,
			lead.MaterialType,
			lead.PriceMin,
			lead.PriceMax,
			lead.Locale,
			lead.ClientID,
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(leadsSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportLeadsToExcel writes all leads to path, creating its directory.
func (s *PostgresStorage) ExportLeadsToExcel(ctx context.Context, path string) error {
	leads, err := s.ListLeads(ctx, 0)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	return WriteLeadsWorkbook(file, leads)
}
