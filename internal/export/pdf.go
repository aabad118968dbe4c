// Package export provides functionality for exporting tiling results
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StudCode/internal/engine"
	"github.com/piwi3910/StudCode/internal/model"
)

// studColor represents the RGB fill used for one piece color.
type studColor struct {
	R, G, B int
}

var studColors = map[model.Color]studColor{
	model.White: {R: 244, G: 244, B: 244},
	model.Black: {R: 27, G: 42, B: 52},
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 10.0
	drawAreaTop  = marginTop + headerHeight + statsHeight
)

// ExportPDF generates a build sheet: the mosaic layout with every piece
// outlined, followed by a parts list page.
func ExportPDF(path string, build model.Build, result model.TileResult) error {
	if result.Report.Total == 0 {
		return fmt.Errorf("no placements to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(fmt.Sprintf("Build %s", build.Name), true)

	pdf.AddPage()
	renderLayoutPage(pdf, build, result)

	pdf.AddPage()
	renderPartsPage(pdf, build, result.Report)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the labeled grid on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, build model.Build, result model.TileResult) {
	grid := result.Grid

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d x %d studs)", buildTitle(build), grid.Width, grid.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	white, black := grid.CountColors()
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | White studs: %d | Black studs: %d | Level: %s | Padding: %v",
		result.Report.Total, white, black, build.Level, build.Padding)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the grid into the drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/float64(grid.Width), drawHeight/float64(grid.Height))

	canvasW := float64(grid.Width) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Cell fills
	for x, col := range grid.Cells {
		for y, c := range col {
			sc := studColors[c.Color]
			pdf.SetFillColor(sc.R, sc.G, sc.B)
			pdf.Rect(offsetX+float64(x)*scale, offsetY+float64(y)*scale, scale, scale, "F")
		}
	}

	// Piece outlines
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(math.Max(0.1, scale/25))
	for _, e := range engine.Boundaries(result) {
		pdf.Line(
			offsetX+float64(e.X1)*scale, offsetY+float64(e.Y1)*scale,
			offsetX+float64(e.X2)*scale, offsetY+float64(e.Y2)*scale,
		)
	}

	// Reset
	pdf.SetDrawColor(0, 0, 0)
}

// Parts table geometry.
const (
	rowHeight   = 6.0
	tableBottom = pageHeight - marginBottom - 10 // keeps rows clear of the footer
)

// renderPartsPage draws the parts list with per-key counts, continuing on
// new pages with a repeated header row when the table runs long.
func renderPartsPage(pdf *fpdf.Fpdf, build model.Build, report model.Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Parts List", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	colWidths := []float64{30, 70, 40}
	tableHeader := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, header := range []string{"Color", "Piece", "Quantity"} {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		pdf.SetFont("Helvetica", "", 9)
		return y + rowHeight
	}
	nextPage := func() float64 {
		renderPartsFooter(pdf, build)
		pdf.AddPage()
		return marginTop
	}

	y := tableHeader(marginTop + 18)
	for i, row := range Rows(report) {
		if y+rowHeight > tableBottom {
			y = tableHeader(nextPage())
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range []string{row.Color, row.Part, fmt.Sprintf("%d", row.Count)} {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}

	y += 4
	if y+rowHeight > tableBottom {
		y = nextPage()
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, rowHeight, fmt.Sprintf("Total pieces: %d", report.Total), "", 0, "L", false, 0, "")

	renderPartsFooter(pdf, build)
}

func renderPartsFooter(pdf *fpdf.Fpdf, build model.Build) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by StudCode - build %s", build.ID)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func buildTitle(build model.Build) string {
	if build.Name != "" {
		return build.Name
	}
	if len(build.Text) > 40 {
		return build.Text[:37] + "..."
	}
	return build.Text
}
