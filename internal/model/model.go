package model

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidGrid        = errors.New("invalid grid")
	ErrIncompleteCoverage = errors.New("incomplete coverage")
	ErrInvalidRotation    = errors.New("invalid rotation")
	ErrInvalidPart        = errors.New("invalid part")
	ErrEmptyCatalog       = errors.New("empty catalog")
)

// Color is the color of a grid cell and of the piece that covers it.
type Color int

const (
	White Color = iota // Light module, also used for the padding ring
	Black              // Dark module
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	default:
		return "White"
	}
}

// Placement is one committed piece on the grid.
type Placement struct {
	ID      int      `json:"id"`
	Part    string   `json:"part"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Angle   int      `json:"angle"`
	Color   Color    `json:"color"`
	Offsets []Offset `json:"offsets"` // Absolute grid cells covered by the piece
}

// Key returns the report key of the placement, e.g. "Black 2x4".
func (p Placement) Key() string {
	return ReportKey(p.Color, p.Part)
}

// ReportKey formats the aggregate key for a color and part name.
func ReportKey(c Color, part string) string {
	return c.String() + " " + part
}

// Report aggregates placements by color and part name.
type Report struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

func NewReport() Report {
	return Report{Counts: make(map[string]int)}
}

// Add records one placement of part in color c.
func (r *Report) Add(c Color, part string) {
	if r.Counts == nil {
		r.Counts = make(map[string]int)
	}
	r.Counts[ReportKey(c, part)]++
	r.Total++
}

// Keys returns the report keys sorted descending (reverse-lexicographic).
func (r Report) Keys() []string {
	keys := make([]string, 0, len(r.Counts))
	for k := range r.Counts {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// Lines returns "{color} {part}: count" in Keys order.
func (r Report) Lines() []string {
	keys := r.Keys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+strconv.Itoa(r.Counts[k]))
	}
	return lines
}

// CountColor sums the placements of the given color.
func (r Report) CountColor(c Color) int {
	prefix := c.String() + " "
	total := 0
	for k, n := range r.Counts {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			total += n
		}
	}
	return total
}

// CellsCovered returns the number of studs covered by the reported pieces,
// looking up each part's footprint in the catalog. Keys naming parts that are
// not in the catalog are ignored.
func (r Report) CellsCovered(cat Catalog) int {
	total := 0
	for _, c := range []Color{White, Black} {
		for _, p := range cat.parts {
			total += r.Counts[ReportKey(c, p.Name)] * p.Footprint.Cells()
		}
	}
	return total
}

// TileResult holds the full output of one tiling run.
type TileResult struct {
	Grid       Grid        `json:"grid"`
	Report     Report      `json:"report"`
	Placements []Placement `json:"placements"`
}

// Placement returns the placement with the given id, or false.
func (tr TileResult) Placement(id int) (Placement, bool) {
	if id < 1 || id > len(tr.Placements) {
		return Placement{}, false
	}
	return tr.Placements[id-1], true
}

// Build ties an encoded text, its options and the resulting report together
// for save/load.
type Build struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Text      string  `json:"text"`
	Level     string  `json:"level"`
	Mask      int     `json:"mask"`
	Padding   bool    `json:"padding"`
	Policy    string  `json:"policy"`
	CreatedAt string  `json:"created_at"`
	Size      int     `json:"size"`
	Report    *Report `json:"report,omitempty"`
}

func NewBuild(name, text string, opts EncodeOptions, policy string) Build {
	return Build{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Text:      text,
		Level:     opts.Level,
		Mask:      opts.Mask,
		Padding:   opts.Padding,
		Policy:    policy,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// EncodeOptions are the QR encoding parameters that produce a grid.
type EncodeOptions struct {
	Level   string `json:"level"`   // "L", "M", "Q" or "H"
	Mask    int    `json:"mask"`    // -1 for automatic, 0-7 for a fixed mask
	Padding bool   `json:"padding"` // Add one white ring around the code
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Level:   "L",
		Mask:    -1,
		Padding: true,
	}
}
