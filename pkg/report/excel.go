package report

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	keywordsSheet = "Keywords"
	pagesSheet    = "Pages"
)

// WriteXLSX saves the report as a spreadsheet. The main table lands on a
// "Keywords" sheet; page aggregates, when present, get their own sheet.
func WriteXLSX(path string, table Table, pages []PageStat) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", keywordsSheet); err != nil {
		return err
	}
	if err := writeSheet(f, keywordsSheet, table); err != nil {
		return err
	}
	if len(pages) > 0 {
		if _, err := f.NewSheet(pagesSheet); err != nil {
			return err
		}
		if err := writeSheet(f, pagesSheet, PagesSummaryTable(pages)); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeSheet(f *excelize.File, sheet string, table Table) error {
	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cellValue(cell)
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
			return err
		}
	}
	for i, h := range table.Header {
		width := len(h)
		for _, row := range table.Rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}
		if width+2 < 50 {
			width += 2
		} else {
			width = 50
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps spreadsheet cells typed: numeric strings become numbers,
// everything else stays text.
func cellValue(s string) interface{} {
	if s == "" {
		return s
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
