package model

import (
	"fmt"
	"sort"
)

// Footprint is the stud layout of a piece indexed [x][y]; true marks a stud.
// It need not be a full rectangle.
type Footprint [][]bool

// RectFootprint returns a fully occupied w x h footprint.
func RectFootprint(w, h int) Footprint {
	f := make(Footprint, w)
	for x := range f {
		f[x] = make([]bool, h)
		for y := range f[x] {
			f[x][y] = true
		}
	}
	return f
}

// Size returns the footprint's extent along x and y.
func (f Footprint) Size() (w, h int) {
	if len(f) == 0 {
		return 0, 0
	}
	return len(f), len(f[0])
}

// Cells counts the occupied offsets.
func (f Footprint) Cells() int {
	n := 0
	for _, col := range f {
		for _, on := range col {
			if on {
				n++
			}
		}
	}
	return n
}

// Offsets lists the occupied offsets, x-major.
func (f Footprint) Offsets() []Offset {
	var offs []Offset
	for x, col := range f {
		for y, on := range col {
			if on {
				offs = append(offs, Offset{X: x, Y: y})
			}
		}
	}
	return offs
}

// Rotate90 returns the footprint turned by 90°:
// rotated[c][rows-1-r] = original[r][c].
func (f Footprint) Rotate90() Footprint {
	rows, cols := f.Size()
	r := make(Footprint, cols)
	for c := range r {
		r[c] = make([]bool, rows)
	}
	for i := 0; i < rows; i++ {
		for c := 0; c < cols; c++ {
			r[c][rows-1-i] = f[i][c]
		}
	}
	return r
}

// Rotate returns the footprint turned by angle, which must be one of
// 0, 90, 180 or 270.
func (f Footprint) Rotate(angle int) (Footprint, error) {
	turns, err := quarterTurns(angle)
	if err != nil {
		return nil, err
	}
	r := f.clone()
	for i := 0; i < turns; i++ {
		r = r.Rotate90()
	}
	return r, nil
}

// Equal reports whether both footprints have the same shape and studs.
func (f Footprint) Equal(o Footprint) bool {
	if len(f) != len(o) {
		return false
	}
	for x := range f {
		if len(f[x]) != len(o[x]) {
			return false
		}
		for y := range f[x] {
			if f[x][y] != o[x][y] {
				return false
			}
		}
	}
	return true
}

func (f Footprint) clone() Footprint {
	c := make(Footprint, len(f))
	for x, col := range f {
		c[x] = append([]bool(nil), col...)
	}
	return c
}

func quarterTurns(angle int) (int, error) {
	switch angle {
	case 0, 90, 180, 270:
		return angle / 90, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidRotation, angle)
}

// Part is a catalog entry: a named piece shape and the rotations it may be
// placed with. Rotations are tried in the listed order.
type Part struct {
	Name      string    `json:"name"`
	Footprint Footprint `json:"footprint"`
	Rotations []int     `json:"rotations"`
}

// NewBrick returns a rectangular w x h piece named "{w}x{h}". Square pieces
// only allow the identity rotation.
func NewBrick(w, h int) Part {
	rot := []int{0, 90}
	if w == h {
		rot = []int{0}
	}
	return Part{
		Name:      fmt.Sprintf("%dx%d", w, h),
		Footprint: RectFootprint(w, h),
		Rotations: rot,
	}
}

// NewCornerPart returns the 2x2 piece with one corner missing. It allows all
// four rotations.
func NewCornerPart() Part {
	return Part{
		Name: "2x2 corner",
		Footprint: Footprint{
			{true, true},
			{true, false},
		},
		Rotations: []int{0, 90, 180, 270},
	}
}

// Validate checks the footprint is rectangular with at least one stud and
// every listed rotation is a quarter turn.
func (p Part) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPart)
	}
	w, h := p.Footprint.Size()
	if w == 0 || h == 0 || p.Footprint.Cells() == 0 {
		return fmt.Errorf("%w: %s has an empty footprint", ErrInvalidPart, p.Name)
	}
	for _, col := range p.Footprint {
		if len(col) != h {
			return fmt.Errorf("%w: %s footprint is not rectangular", ErrInvalidPart, p.Name)
		}
	}
	if len(p.Rotations) == 0 {
		return fmt.Errorf("%w: %s lists no rotations", ErrInvalidPart, p.Name)
	}
	for _, a := range p.Rotations {
		if _, err := quarterTurns(a); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidPart, p.Name, err)
		}
	}
	return nil
}

// Catalog is an immutable ordered list of parts. Order is placement priority.
type Catalog struct {
	parts []Part
}

// NewCatalog validates the parts and orders them by stud count descending,
// keeping declaration order among equal counts.
func NewCatalog(parts ...Part) (Catalog, error) {
	c, err := NewCatalogInOrder(parts...)
	if err != nil {
		return Catalog{}, err
	}
	sort.SliceStable(c.parts, func(i, j int) bool {
		return c.parts[i].Footprint.Cells() > c.parts[j].Footprint.Cells()
	})
	return c, nil
}

// NewCatalogInOrder validates the parts and keeps them in the given order.
func NewCatalogInOrder(parts ...Part) (Catalog, error) {
	if len(parts) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	c := Catalog{parts: make([]Part, 0, len(parts))}
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return Catalog{}, err
		}
		cp := p
		cp.Footprint = p.Footprint.clone()
		cp.Rotations = append([]int(nil), p.Rotations...)
		c.parts = append(c.parts, cp)
	}
	return c, nil
}

// DefaultParts lists the standard pieces in declaration order.
func DefaultParts() []Part {
	return []Part{
		NewBrick(6, 6),
		NewBrick(4, 4),
		NewBrick(2, 2),
		NewBrick(1, 1),
		NewBrick(2, 6),
		NewBrick(1, 8),
		NewBrick(2, 4),
		NewBrick(1, 6),
		NewBrick(2, 3),
		NewBrick(1, 4),
		NewBrick(1, 3),
		NewBrick(1, 2),
		NewCornerPart(),
	}
}

// DefaultCatalog returns the standard pieces ordered by stud count.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(DefaultParts()...)
	if err != nil {
		panic(err)
	}
	return c
}

// Parts returns a copy of the ordered parts.
func (c Catalog) Parts() []Part {
	return append([]Part(nil), c.parts...)
}

// Len returns the number of parts.
func (c Catalog) Len() int {
	return len(c.parts)
}

// Names returns the part names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.parts))
	for i, p := range c.parts {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the first part with the given name.
func (c Catalog) Lookup(name string) (Part, bool) {
	for _, p := range c.parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// HasUnitPart reports whether the catalog contains a single-stud piece, which
// guarantees every grid can be fully covered.
func (c Catalog) HasUnitPart() bool {
	for _, p := range c.parts {
		if p.Footprint.Cells() == 1 {
			return true
		}
	}
	return false
}
