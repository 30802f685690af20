package review

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Packing List"

// ExportXLSX renders the session's items as a single-worksheet workbook for
// reviewers who prefer a spreadsheet over raw JSON.
func (s *Session) ExportXLSX() ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}

	headers := []string{"Line", "Description", "NSN", "Qty", "Unit", "Material"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	row := 2
	for _, item := range s.Items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		write(1, item.LineNo)
		write(2, item.Description)
		write(3, item.StockNumber)
		write(4, item.Quantity)
		write(5, item.UnitOfIssue)
		write(6, item.MaterialNumber)
		row++
	}

	_ = f.SetColWidth(sheetName, "A", "A", 6)  // line number
	_ = f.SetColWidth(sheetName, "B", "B", 52) // description
	_ = f.SetColWidth(sheetName, "C", "C", 16) // NSN
	_ = f.SetColWidth(sheetName, "D", "E", 8)  // qty, unit
	_ = f.SetColWidth(sheetName, "F", "F", 20) // material number

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
