package engine

import "github.com/piwi3910/StudCode/internal/model"

// Boundaries returns the outline edges of every placement in result. A side
// of a covered cell is part of the outline when the neighbor across it is
// off-grid or belongs to a different placement. Edges are ordered by
// placement id, then by covered cell, then Top, Bottom, Left, Right.
func Boundaries(result model.TileResult) []model.Edge {
	var edges []model.Edge
	for _, p := range result.Placements {
		edges = append(edges, PlacementBoundary(result.Grid, p)...)
	}
	return edges
}

// PlacementBoundary returns the outline edges of a single placement.
func PlacementBoundary(grid model.Grid, p model.Placement) []model.Edge {
	var edges []model.Edge
	for _, c := range p.Offsets {
		for _, side := range []model.Side{model.Top, model.Bottom, model.Left, model.Right} {
			nx, ny := neighbor(c, side)
			if grid.InBounds(nx, ny) && grid.Cells[nx][ny].Placement == p.ID {
				continue
			}
			edges = append(edges, edge(p.ID, c, side))
		}
	}
	return edges
}

// CutLines returns every outline segment of result exactly once. A side
// shared by two placements is kept only on the placement with the lower id;
// sides on the grid border or against unfilled cells are always kept.
func CutLines(result model.TileResult) []model.Edge {
	var edges []model.Edge
	for _, p := range result.Placements {
		for _, e := range PlacementBoundary(result.Grid, p) {
			nx, ny := neighbor(e.Cell, e.Side)
			if result.Grid.InBounds(nx, ny) {
				if id := result.Grid.Cells[nx][ny].Placement; id != 0 && id < p.ID {
					continue
				}
			}
			edges = append(edges, e)
		}
	}
	return edges
}

func neighbor(c model.Offset, side model.Side) (int, int) {
	switch side {
	case model.Top:
		return c.X, c.Y - 1
	case model.Bottom:
		return c.X, c.Y + 1
	case model.Left:
		return c.X - 1, c.Y
	default:
		return c.X + 1, c.Y
	}
}

func edge(id int, c model.Offset, side model.Side) model.Edge {
	e := model.Edge{Placement: id, Cell: c, Side: side}
	switch side {
	case model.Top:
		e.X1, e.Y1, e.X2, e.Y2 = c.X, c.Y, c.X+1, c.Y
	case model.Bottom:
		e.X1, e.Y1, e.X2, e.Y2 = c.X, c.Y+1, c.X+1, c.Y+1
	case model.Left:
		e.X1, e.Y1, e.X2, e.Y2 = c.X, c.Y, c.X, c.Y+1
	default:
		e.X1, e.Y1, e.X2, e.Y2 = c.X+1, c.Y, c.X+1, c.Y+1
	}
	return e
}
