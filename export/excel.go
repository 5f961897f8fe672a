package export

import (
	"errors"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var ErrNoRows = errors.New("rows-not-found")

var (
	headerStyle = `
	{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"fill": {"type": "pattern", "pattern": 1, "color": ["#96b753"]},
		"font": {"bold": true},
		"alignment": {"shrink_to_fit": true, "horizontal": "center"}
	}
	`
	dataStyle = `
	{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"fill": {"type": "pattern", "pattern": 1},
		"alignment": {"shrink_to_fit": true}
	}
	`
)

// Column is one exported column; Money columns are written as formatted amounts.
type Column struct {
	Title string
	Money bool
}

// Money formats an amount with thousands separators and two decimals.
func Money(v interface{}) string {
	var f float64
	switch x := v.(type) {
	case decimal.Decimal:
		f, _ = x.Round(2).Float64()
	case float64:
		f = x
	case int:
		f = float64(x)
	default:
		return ""
	}
	return humanize.FormatFloat("#,###.##", f)
}

// WriteExcel streams rows into a single-sheet workbook written to w.
func WriteExcel(w io.Writer, sheet string, columns []Column, rows [][]interface{}) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	sheet = sheetName(sheet)

	f := excelize.NewFile()
	f.NewSheet(sheet)
	// delete default sheet
	f.DeleteSheet("Sheet1")

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", last, 30); err != nil {
		return err
	}

	hStyle, err := f.NewStyle(headerStyle)
	if err != nil {
		return err
	}

	dStyle, err := f.NewStyle(dataStyle)
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: hStyle, Value: c.Title}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for n, r := range rows {
		row := make([]interface{}, len(columns))
		for i := range columns {
			var v interface{}
			if i < len(r) {
				v = r[i]
			}
			row[i] = excelize.Cell{StyleID: dStyle, Value: cellValue(columns[i], v)}
		}

		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func cellValue(c Column, v interface{}) interface{} {
	if c.Money {
		if s := Money(v); s != "" {
			return s
		}
	}

	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.String()
	case []string:
		return strings.Join(x, ", ")
	case interface{ String() string }:
		return x.String()
	}
	return v
}

// sheetName trims to the 31 characters a sheet name may have.
func sheetName(s string) string {
	if s == "" {
		return "Report"
	}
	if len(s) > 31 {
		return s[:31]
	}
	return s
}
