package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docflow/internal/domain"
)

const sheetName = "Extractions"

// WriteXLSX renders records as a single-sheet workbook and writes it to w.
// Numeric columns are stored as numbers so they can be aggregated in Excel.
func WriteXLSX(w io.Writer, records []domain.ExtractionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for i := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, xlsxRow(&records[i])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 28) // filename
	_ = f.SetColWidth(sheetName, "B", "E", 20)
	_ = f.SetColWidth(sheetName, "G", "I", 32) // values
	_ = f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// xlsxRow keeps the text layout of recordToRow but stores numbers natively.
func xlsxRow(rec *domain.ExtractionRecord) *[]interface{} {
	text := recordToRow(rec)
	row := make([]interface{}, len(text))
	for i, v := range text {
		row[i] = v
	}
	if rec.Confidence != nil {
		row[10] = *rec.Confidence
	}
	if rec.OCRConfidence != nil {
		row[11] = *rec.OCRConfidence
	}
	row[13] = rec.RowIndex
	row[14] = rec.ColumnIndex
	return &row
}
