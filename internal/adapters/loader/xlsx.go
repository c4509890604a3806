package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the rows of one worksheet (the first when sheet is empty) as raw
// cell values. excelize drops trailing empty cells, so short rows are padded to
// the header width; fully empty rows are skipped like blank CSV lines.
func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %w", ErrLoad, path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrLoad, path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q of %s: %w", ErrLoad, sheet, path, err)
	}

	records := make([][]string, 0, len(rows))
	width := 0
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(records) == 0 {
			width = len(row)
		}
		if len(row) > width {
			return nil, fmt.Errorf("%w: %s row %d has %d cells, header has %d", ErrLoad, path, i+1, len(row), width)
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		records = append(records, row)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
