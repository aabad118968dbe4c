package engine

import (
	"fmt"

	"github.com/piwi3910/StudCode/internal/model"
)

// CoverageError reports that a tiling run left cells uncovered. X and Y name
// the first uncovered cell in scan order.
type CoverageError struct {
	X, Y      int
	Remaining int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("%v: %d cells uncovered, first at (%d, %d)", model.ErrIncompleteCoverage, e.Remaining, e.X, e.Y)
}

func (e *CoverageError) Unwrap() error {
	return model.ErrIncompleteCoverage
}

// orientation is a part footprint pre-rotated to one of its permitted angles.
type orientation struct {
	angle   int
	offsets []model.Offset
}

// orientations derives the rotated offsets of p in its listed angle order.
func orientations(p model.Part) ([]orientation, error) {
	out := make([]orientation, 0, len(p.Rotations))
	for _, a := range p.Rotations {
		f, err := p.Footprint.Rotate(a)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", p.Name, err)
		}
		out = append(out, orientation{angle: a, offsets: f.Offsets()})
	}
	return out, nil
}

// tiler holds the state of a single run.
type tiler struct {
	grid   model.Grid
	result model.TileResult
	nextID int
}

// Tile covers every cell of grid with a catalog part of matching color.
//
// Parts are tried in catalog order. For each part the grid is scanned with x
// as the outer loop and y as the inner loop; at every position the first
// listed rotation that fits is committed. A fit requires every stud of the
// rotated footprint to land on an unfilled cell of one single color. The
// scan is greedy and never reconsiders a committed placement.
//
// The caller's grid is not modified; the labeled copy is returned in the
// result. If cells remain uncovered after the last part, Tile returns a
// *CoverageError.
func Tile(grid model.Grid, catalog model.Catalog) (model.TileResult, error) {
	if err := grid.Validate(); err != nil {
		return model.TileResult{}, err
	}
	if catalog.Len() == 0 {
		return model.TileResult{}, model.ErrEmptyCatalog
	}
	for x, col := range grid.Cells {
		for y, c := range col {
			if c.Filled() {
				return model.TileResult{}, fmt.Errorf("%w: cell (%d, %d) is already filled", model.ErrInvalidGrid, x, y)
			}
		}
	}

	t := &tiler{
		grid:   grid.Clone(),
		result: model.TileResult{Report: model.NewReport()},
		nextID: 1,
	}

	for _, part := range catalog.Parts() {
		orients, err := orientations(part)
		if err != nil {
			return model.TileResult{}, err
		}
		for x := 0; x < t.grid.Width; x++ {
			for y := 0; y < t.grid.Height; y++ {
				for _, o := range orients {
					if color, ok := t.fits(x, y, o); ok {
						t.commit(x, y, part.Name, o, color)
						break
					}
				}
			}
		}
	}

	if err := t.checkCoverage(); err != nil {
		return model.TileResult{}, err
	}

	t.result.Grid = t.grid
	return t.result, nil
}

// fits reports whether o anchored at (x, y) lies on the grid and covers only
// unfilled cells of one color, which it returns.
func (t *tiler) fits(x, y int, o orientation) (model.Color, bool) {
	var color model.Color
	for i, off := range o.offsets {
		if !t.grid.InBounds(x+off.X, y+off.Y) {
			return 0, false
		}
		c := t.grid.Cells[x+off.X][y+off.Y]
		if c.Filled() {
			return 0, false
		}
		if i == 0 {
			color = c.Color
		} else if c.Color != color {
			return 0, false
		}
	}
	return color, true
}

func (t *tiler) commit(x, y int, name string, o orientation, color model.Color) {
	id := t.nextID
	t.nextID++

	cells := make([]model.Offset, 0, len(o.offsets))
	for _, off := range o.offsets {
		cx, cy := x+off.X, y+off.Y
		t.grid.Cells[cx][cy].Placement = id
		cells = append(cells, model.Offset{X: cx, Y: cy})
	}

	t.result.Placements = append(t.result.Placements, model.Placement{
		ID:      id,
		Part:    name,
		X:       x,
		Y:       y,
		Angle:   o.angle,
		Color:   color,
		Offsets: cells,
	})
	t.result.Report.Add(color, name)
}

func (t *tiler) checkCoverage() error {
	var first *CoverageError
	for x, col := range t.grid.Cells {
		for y, c := range col {
			if c.Filled() {
				continue
			}
			if first == nil {
				first = &CoverageError{X: x, Y: y}
			}
			first.Remaining++
		}
	}
	if first != nil {
		return first
	}
	return nil
}
