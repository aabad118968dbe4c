package model

import "fmt"

// Cell is one stud of the grid. A cell with Placement 0 is unfilled and
// carries the color it must be covered with; once filled, Placement holds the
// id of the piece covering it.
type Cell struct {
	Color     Color `json:"color"`
	Placement int   `json:"placement,omitempty"`
}

// Filled reports whether a piece covers the cell.
func (c Cell) Filled() bool {
	return c.Placement != 0
}

// Offset is a cell coordinate, either local to a footprint or absolute on a grid.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a rectangular field of cells indexed [x][y].
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Cell `json:"cells"`
}

// NewGrid builds an unfilled grid from a boolean matrix indexed [x][y],
// where true marks a dark (Black) module.
func NewGrid(on [][]bool) (Grid, error) {
	if len(on) == 0 || len(on[0]) == 0 {
		return Grid{}, fmt.Errorf("%w: empty", ErrInvalidGrid)
	}
	w, h := len(on), len(on[0])
	g := Grid{Width: w, Height: h, Cells: make([][]Cell, w)}
	for x, col := range on {
		if len(col) != h {
			return Grid{}, fmt.Errorf("%w: column %d has %d cells, want %d", ErrInvalidGrid, x, len(col), h)
		}
		g.Cells[x] = make([]Cell, h)
		for y, dark := range col {
			if dark {
				g.Cells[x][y].Color = Black
			}
		}
	}
	return g, nil
}

// Validate checks that the grid is non-empty and rectangular.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Width, g.Height)
	}
	if len(g.Cells) != g.Width {
		return fmt.Errorf("%w: %d columns, want %d", ErrInvalidGrid, len(g.Cells), g.Width)
	}
	for x, col := range g.Cells {
		if len(col) != g.Height {
			return fmt.Errorf("%w: column %d has %d cells, want %d", ErrInvalidGrid, x, len(col), g.Height)
		}
	}
	return nil
}

// InBounds reports whether (x, y) lies on the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the cell at (x, y). It panics when out of bounds.
func (g Grid) At(x, y int) Cell {
	return g.Cells[x][y]
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := Grid{Width: g.Width, Height: g.Height, Cells: make([][]Cell, len(g.Cells))}
	for x, col := range g.Cells {
		c.Cells[x] = append([]Cell(nil), col...)
	}
	return c
}

// Pad returns a new grid with one ring of white unfilled cells around g.
func (g Grid) Pad() Grid {
	p := Grid{Width: g.Width + 2, Height: g.Height + 2}
	p.Cells = make([][]Cell, p.Width)
	for x := range p.Cells {
		p.Cells[x] = make([]Cell, p.Height)
	}
	for x, col := range g.Cells {
		for y, c := range col {
			p.Cells[x+1][y+1] = c
		}
	}
	return p
}

// CountColors returns the number of white and black cells.
func (g Grid) CountColors() (white, black int) {
	for _, col := range g.Cells {
		for _, c := range col {
			if c.Color == Black {
				black++
			} else {
				white++
			}
		}
	}
	return white, black
}

// Area returns the number of cells in the grid.
func (g Grid) Area() int {
	return g.Width * g.Height
}

// Side names one of the four sides of a cell.
type Side int

const (
	Top    Side = iota // towards y-1
	Bottom             // towards y+1
	Left               // towards x-1
	Right              // towards x+1
)

func (s Side) String() string {
	switch s {
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	default:
		return "Right"
	}
}

// Edge is a unit-length outline segment of a placement, running from
// (X1, Y1) to (X2, Y2) in stud units with the grid origin at the top-left
// corner of cell (0, 0).
type Edge struct {
	Placement int    `json:"placement"`
	Cell      Offset `json:"cell"`
	Side      Side   `json:"side"`
	X1        int    `json:"x1"`
	Y1        int    `json:"y1"`
	X2        int    `json:"x2"`
	Y2        int    `json:"y2"`
}
