// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

const sheetName = "metadata"

// WriteXLSX writes records as a single-sheet workbook. The year column is
// stored as a number; everything else as text.
func WriteXLSX(w io.Writer, layout Layout, records []types.CleanedRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, name := range layout {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("writing header %s: %w", name, err)
		}
	}

	for rowIdx, r := range records {
		for colIdx, col := range layout {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			var val any = field(r, col)
			if col == types.ColYear {
				val = r.Year
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes records to path as a workbook.
func SaveXLSX(path string, layout Layout, records []types.CleanedRecord) error {
	return saveWith(path, func(w io.Writer) error {
		return WriteXLSX(w, layout, records)
	})
}
