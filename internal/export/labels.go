package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/StudCode/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each bag label's QR code.
type LabelInfo struct {
	BuildID string `json:"build"`
	Color   string `json:"color"`
	Part    string `json:"part"`
	Count   int    `json:"count"`
	Studs   int    `json:"studs"` // Studs per piece, 0 if the part is not in the catalog

	footprint model.Footprint
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	sketchSize      = 14.0 // Piece sketch size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded bag labels, one per color and
// piece kind, so sorted pieces can be bagged and identified.
func ExportLabels(path string, build model.Build, report model.Report, catalog model.Catalog) error {
	labels := CollectLabelInfos(build, report, catalog)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %s %s: %w", label.Color, label.Part, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// CollectLabelInfos lists one label per report row in listing order.
func CollectLabelInfos(build model.Build, report model.Report, catalog model.Catalog) []LabelInfo {
	var labels []LabelInfo
	for _, row := range Rows(report) {
		info := LabelInfo{
			BuildID: build.ID,
			Color:   row.Color,
			Part:    row.Part,
			Count:   row.Count,
		}
		if p, ok := catalog.Lookup(row.Part); ok {
			info.Studs = p.Footprint.Cells()
			info.footprint = p.Footprint
		}
		labels = append(labels, info)
	}
	return labels
}

// renderLabel draws one label: text on the left, a sketch of the piece in the
// middle and the QR code on the right.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	imgName := fmt.Sprintf("label_qr_%d", idx)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - sketchSize - 4*labelPadding

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, info.Part, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 4, fmt.Sprintf("%s x %d", info.Color, info.Count), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+11)
	pdf.CellFormat(textW, 3, "Build "+info.BuildID, "", 1, "L", false, 0, "")
	if info.Studs > 0 {
		pdf.SetXY(textX, y+labelPadding+14)
		pdf.CellFormat(textW, 3, fmt.Sprintf("%d studs each", info.Studs), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	sketchX := x + labelWidth - qrSize - sketchSize - 2*labelPadding
	drawFootprint(pdf, sketchX, y+(labelHeight-sketchSize)/2, info)
	return nil
}

// drawFootprint sketches the piece's studs in its color inside a
// sketchSize square. Unknown parts get an empty swatch.
func drawFootprint(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) {
	sc := studColors[model.White]
	if info.Color == model.Black.String() {
		sc = studColors[model.Black]
	}
	pdf.SetFillColor(sc.R, sc.G, sc.B)
	pdf.SetDrawColor(120, 120, 120)

	w, h := info.footprint.Size()
	if w == 0 {
		pdf.Rect(x, y, sketchSize, sketchSize/2, "FD")
		return
	}
	cell := sketchSize / float64(max(w, h))
	for _, off := range info.footprint.Offsets() {
		pdf.Rect(x+float64(off.X)*cell, y+float64(off.Y)*cell, cell, cell, "FD")
	}
}
