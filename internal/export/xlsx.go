package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/reconcile-cli/internal/model"
)

const summarySheet = "Summary"

// WriteXLSX writes rows as a single-sheet workbook with a styled header.
// Mismatched rows are highlighted.
func WriteXLSX(w io.Writer, rows []model.SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return eris.Wrap(err, "export: rename sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return eris.Wrap(err, "export: header style")
	}
	mismatchStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})
	if err != nil {
		return eris.Wrap(err, "export: mismatch style")
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return eris.Wrap(err, "export: write header")
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(summarySheet, "A1", last, headerStyle); err != nil {
		return eris.Wrap(err, "export: style header")
	}

	for i, row := range rows {
		r := i + 2
		cells := rowCells(row)
		values := []any{cells[0], cells[1], cells[2], row.Actual, row.Reported, row.Diff, cells[6]}
		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(summarySheet, start, &values); err != nil {
			return eris.Wrap(err, "export: write row")
		}
		if row.Status == model.StatusMismatch {
			diff, _ := excelize.CoordinatesToCellName(6, r)
			status, _ := excelize.CoordinatesToCellName(7, r)
			if err := f.SetCellStyle(summarySheet, diff, status, mismatchStyle); err != nil {
				return eris.Wrap(err, "export: style row")
			}
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(summarySheet, col, col, 16); err != nil {
			return eris.Wrap(err, "export: column width")
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}
