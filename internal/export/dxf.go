package export

import (
	"fmt"

	"github.com/piwi3910/StudCode/internal/engine"
	"github.com/piwi3910/StudCode/internal/model"
	"github.com/yofu/dxf"
)

// DXF layer names, one per piece color.
const (
	layerWhite = "WHITE_PIECES"
	layerBlack = "BLACK_PIECES"
)

// ExportDXF writes the piece outlines as LINE entities on a per-color
// layer. A side shared by two pieces is drawn once, on the layer of the
// piece with the lower id. Coordinates are in millimetres, studPitch apart,
// with y pointing up so the drawing is not mirrored in CAD tools.
func ExportDXF(path string, result model.TileResult, studPitch float64) error {
	if result.Report.Total == 0 {
		return fmt.Errorf("no placements to export")
	}
	if studPitch <= 0 {
		return fmt.Errorf("stud pitch must be positive, got %.2f", studPitch)
	}

	d := dxf.NewDrawing()
	for _, name := range []string{layerWhite, layerBlack} {
		if _, err := d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
	}

	height := float64(result.Grid.Height)
	byID := make(map[int]model.Placement, len(result.Placements))
	for _, p := range result.Placements {
		byID[p.ID] = p
	}
	current := ""
	for _, e := range engine.CutLines(result) {
		layer := layerWhite
		if byID[e.Placement].Color == model.Black {
			layer = layerBlack
		}
		if layer != current {
			if err := d.ChangeLayer(layer); err != nil {
				return fmt.Errorf("failed to select layer %s: %w", layer, err)
			}
			current = layer
		}
		x1, y1 := float64(e.X1)*studPitch, (height-float64(e.Y1))*studPitch
		x2, y2 := float64(e.X2)*studPitch, (height-float64(e.Y2))*studPitch
		if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			return fmt.Errorf("failed to draw outline of piece %d: %w", e.Placement, err)
		}
	}

	return d.SaveAs(path)
}
