package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"claimproc/internal/domain"
)

const sheetName = "Claims"

// WriteXLSX renders a batch of claims as an XLSX workbook and returns the
// serialized bytes. Column layout matches the CSV export.
func WriteXLSX(claims []domain.Claim) ([]byte, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for i := range claims {
		row := claimToRow(&claims[i])
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "C", 22)
	_ = f.SetColWidth(sheetName, "E", "O", 20)
	_ = f.SetColWidth(sheetName, "V", "V", 48)
	_ = f.SetColWidth(sheetName, "W", "X", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
