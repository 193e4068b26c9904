package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrExtract wraps any failure to open or read the workbook.
	ErrExtract = errors.New("error extracting data")
	// ErrEmptySheet means the active sheet had no rows below the header.
	ErrEmptySheet = errors.New("sheet is missing or empty")
)

// Row is one data row; Number is the 1-based spreadsheet row.
type Row struct {
	Number int
	Cells  []string
}

// ReadRows reads the active sheet of an .xlsx workbook and returns every
// non-blank row below the header.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrExtract)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}

	var rows []Row
	for i, cells := range raw {
		if i == 0 || blank(cells) {
			continue
		}
		rows = append(rows, Row{Number: i + 1, Cells: trimTrailing(cells)})
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && strings.TrimSpace(cells[n-1]) == "" {
		n--
	}
	return cells[:n]
}
