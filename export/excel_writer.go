package export

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"golist/product"
)

// ExcelWriter writes any mapper's output as an .xlsx workbook. Cells are
// written as values, so no injection guard is needed here.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(out io.Writer, mapper Mapper, records []product.Record, opts Options, strict bool) (*Result, error) {
	result := &Result{}
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range mapper.Headers() {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return result, fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	validator, _ := mapper.(Validator)
	for _, rec := range records {
		if validator != nil {
			if err := validator.Validate(rec); err != nil {
				if strict {
					return result, fmt.Errorf("validate record for %s export: %w", mapper.Name(), err)
				}
				log.Printf("export: skipping record %d: %v", rec.ID, err)
				result.Skipped++
				continue
			}
		}

		row := result.Written + 2
		for col, value := range mapper.Map(rec, opts) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return result, fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
		result.Written++
	}

	if _, err := file.WriteTo(out); err != nil {
		return result, fmt.Errorf("write excel output: %w", err)
	}

	return result, nil
}
