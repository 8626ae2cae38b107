// Package export writes result sets to spreadsheet files for users who want
// the output in Excel rather than CSV.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"distance-calculator/internal/csvio"
)

const sheetName = "Distances"

// WriteXLSX writes rows in the given header order to an .xlsx file.
func WriteXLSX(path string, headers []string, rows []csvio.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("write xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("write xlsx: drop default sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx: header row: %w", err)
	}

	record := make([]any, len(headers))
	for i, row := range rows {
		for j, h := range headers {
			record[j] = row[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write xlsx: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &record); err != nil {
			return fmt.Errorf("write xlsx: row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx: save %q: %w", path, err)
	}
	return nil
}
