package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

// WorkbookContentType is the media type of XLSX exports.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	recordsSheet = "Реєстр"
	firmsSheet   = "Фірми"
)

// RecordsWorkbook writes the priced records of a domain as a spreadsheet
// followed by a totals row.
func RecordsWorkbook(w io.Writer, d registry.Domain, records []registry.PricedRecord) error {
	header := []any{"№", "Реєстраційний номер", "Експерт", "Статус", "Початок", "Завершення", "Компанія", "Кількість"}
	if d == registry.Certificates {
		header = append(header, "Сума")
	} else {
		header = append(header, "Сума без знижки", "Сума зі знижкою")
	}
	header = append(header, "Коментар")

	rows := make([][]any, 0, len(records)+1)
	units := 0
	full, reduced := Money(0), Money(0)
	for i, r := range records {
		row := []any{i + 1, r.RegistrationNumber, r.Expert, r.Status,
			formatDate(r.StartDate), formatDate(r.EndDate), r.CompanyName, r.Units}
		row = append(row, Money(r.SumWithoutDiscount).InexactFloat64())
		if d != registry.Certificates {
			row = append(row, Money(r.SumWithDiscount).InexactFloat64())
		}
		rows = append(rows, append(row, r.Comment))

		units += r.Units
		full = full.Add(Money(r.SumWithoutDiscount))
		reduced = reduced.Add(Money(r.SumWithDiscount))
	}

	totals := []any{"", "Разом", "", "", "", "", "", units, full.InexactFloat64()}
	if d != registry.Certificates {
		totals = append(totals, reduced.InexactFloat64())
	}
	rows = append(rows, totals)

	return writeSheet(w, recordsSheet, header, rows)
}

// FirmsWorkbook writes the firm directory as a spreadsheet.
func FirmsWorkbook(w io.Writer, firms []registry.Firm) error {
	header := []any{"№", "Назва", "Адреса", "Директор", "ЄДРПОУ", "ІПН", "Продукція"}
	rows := make([][]any, 0, len(firms))
	for i, f := range firms {
		rows = append(rows, []any{i + 1, f.Name, f.Address, f.DirectorName, f.EDRPOU, f.TaxNumber, f.ProductName})
	}
	return writeSheet(w, firmsSheet, header, rows)
}

func writeSheet(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", lastCol, 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
