package export

import (
	"fmt"

	"github.com/piwi3910/StudCode/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	partsSheet  = "Parts"
	layoutSheet = "Layout"
)

// ExportXLSX writes a workbook with a parts list sheet and a layout sheet in
// which every cell holds the id of the piece covering that stud.
func ExportXLSX(path string, build model.Build, result model.TileResult) error {
	if result.Report.Total == 0 {
		return fmt.Errorf("no placements to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), partsSheet); err != nil {
		return fmt.Errorf("failed to name parts sheet: %w", err)
	}
	if err := writePartsSheet(f, build, result.Report); err != nil {
		return err
	}

	if _, err := f.NewSheet(layoutSheet); err != nil {
		return fmt.Errorf("failed to create layout sheet: %w", err)
	}
	if err := writeLayoutSheet(f, result.Grid); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writePartsSheet(f *excelize.File, build model.Build, report model.Report) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := [][]interface{}{{"Color", "Piece", "Quantity"}}
	for _, r := range Rows(report) {
		rows = append(rows, []interface{}{r.Color, r.Part, r.Count})
	}
	rows = append(rows, []interface{}{"Total", "", report.Total})

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(partsSheet, cell, v); err != nil {
				return err
			}
		}
	}
	if err := f.SetCellStyle(partsSheet, "A1", "C1", header); err != nil {
		return err
	}

	// Build metadata to the right of the table
	meta := [][]interface{}{
		{"Build", build.ID},
		{"Text", build.Text},
		{"Level", build.Level},
		{"Padding", build.Padding},
	}
	for i, row := range meta {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+5, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(partsSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(partsSheet, "A", "C", 14)
}

func writeLayoutSheet(f *excelize.File, grid model.Grid) error {
	styles := make(map[model.Color]int, 2)
	for c, fontColor := range map[model.Color]string{model.White: "#000000", model.Black: "#FFFFFF"} {
		sc := studColors[c]
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Color: fontColor, Size: 8},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fmt.Sprintf("#%02X%02X%02X", sc.R, sc.G, sc.B)}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("failed to create layout style: %w", err)
		}
		styles[c] = id
	}

	for x, col := range grid.Cells {
		for y, c := range col {
			cell, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(layoutSheet, cell, c.Placement); err != nil {
				return err
			}
			if err := f.SetCellStyle(layoutSheet, cell, cell, styles[c.Color]); err != nil {
				return err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(grid.Width)
	if err != nil {
		return err
	}
	return f.SetColWidth(layoutSheet, "A", last, 4)
}
