package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dataset-uploader/models"

	"github.com/xuri/excelize/v2"
)

// ReadSheetFile opens an .xlsx file and decodes its first sheet.
func ReadSheetFile(path string) (*models.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet %q: %w", path, err)
	}
	defer f.Close()
	return ReadSheet(f)
}

// ReadSheet decodes the first sheet of an .xlsx workbook. The first row is
// the header; blank header cells and repeated header names are ignored.
// Fully blank data rows are dropped but the remaining rows keep their file
// row numbers.
func ReadSheet(r io.Reader) (*models.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("Excel file is empty")
	}

	header := rows[0]
	index := make([]int, 0, len(header))
	columns := make([]string, 0, len(header))
	seen := map[string]struct{}{}
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		index = append(index, i)
		columns = append(columns, name)
	}

	sheet := &models.Sheet{Columns: columns}
	for n, raw := range rows[1:] {
		if isBlankRow(raw) {
			continue
		}
		cells := make(map[string]string, len(columns))
		for j, col := range columns {
			if i := index[j]; i < len(raw) {
				cells[col] = raw[i]
			}
		}
		// rows[1:] starts at file row 2
		sheet.Rows = append(sheet.Rows, models.NewSourceRow(n+2, columns, cells))
	}
	return sheet, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
