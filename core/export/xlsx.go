package export

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// ToXLSX renders rows as a single-sheet workbook with the same layout as ToCSV.
// Numbers are kept as numeric cells. Zero rows render as nil.
func ToXLSX(rows []Record) ([]byte, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	header, cells := table(rows)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	for col, key := range header {
		if err := setCell(f, col, 1, key); err != nil {
			return nil, err
		}
	}
	for i, line := range cells {
		for col, v := range line {
			if err := setCell(f, col, i+2, xlsxValue(v)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return errors.Wrap(err, "naming cell")
	}
	if err = f.SetCellValue(sheetName, cell, v); err != nil {
		return errors.Wrapf(err, "setting cell %s", cell)
	}
	return nil
}

func xlsxValue(v interface{}) interface{} {
	switch v.(type) {
	case int, int64, float32, float64, bool:
		return v
	default:
		return FormatValue(v)
	}
}
