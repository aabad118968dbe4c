// Package encoder turns text into QR code grids ready for tiling.
package encoder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/piwi3910/StudCode/internal/model"
	"rsc.io/qr/coding"
)

var (
	ErrInvalidLevel = errors.New("invalid error correction level")
	ErrInvalidMask  = errors.New("invalid mask")
	ErrEmptyText    = errors.New("empty text")
	ErrNonASCII     = errors.New("text must be ASCII")
	ErrTooLong      = errors.New("text too long for a QR code")
)

// AutoMask selects the mask with the lowest penalty score.
const AutoMask = -1

// Levels lists the accepted error correction levels, lowest first.
var Levels = []string{"L", "M", "Q", "H"}

// ParseLevel maps "L", "M", "Q" or "H" (case-insensitive) to a coding level.
func ParseLevel(s string) (coding.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return coding.L, nil
	case "M":
		return coding.M, nil
	case "Q":
		return coding.Q, nil
	case "H":
		return coding.H, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// ValidateOptions checks level and mask without encoding anything.
func ValidateOptions(opts model.EncodeOptions) error {
	if _, err := ParseLevel(opts.Level); err != nil {
		return err
	}
	if opts.Mask < AutoMask || opts.Mask > 7 {
		return fmt.Errorf("%w: %d (want -1 for auto or 0-7)", ErrInvalidMask, opts.Mask)
	}
	return nil
}

// Version returns the smallest version whose data capacity at level holds
// text as a single byte-mode segment.
func Version(text string, level coding.Level) (coding.Version, error) {
	seg := coding.String(text)
	for v := coding.Version(coding.MinVersion); v <= coding.MaxVersion; v++ {
		if seg.Bits(v) <= v.DataBytes(level)*8 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %d bytes at level %s", ErrTooLong, len(text), level)
}

// Matrix encodes text in byte mode at exactly the requested level and
// returns the module matrix indexed [x][y] without a quiet zone; true marks
// a dark module. Digit-only and uppercase text stay in byte mode too, so the
// version depends only on the text length.
func Matrix(text string, opts model.EncodeOptions) ([][]bool, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	for i := 0; i < len(text); i++ {
		if text[i] > 0x7f {
			return nil, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrNonASCII, text[i], i)
		}
	}
	level, _ := ParseLevel(opts.Level)
	version, err := Version(text, level)
	if err != nil {
		return nil, err
	}

	masks := []coding.Mask{coding.Mask(opts.Mask)}
	if opts.Mask == AutoMask {
		masks = []coding.Mask{0, 1, 2, 3, 4, 5, 6, 7}
	}

	var best *coding.Code
	bestScore := 0
	for _, mask := range masks {
		code, err := encodeWith(text, version, level, mask)
		if err != nil {
			return nil, err
		}
		// Ties keep the lower mask.
		if score := Penalty(code); best == nil || score < bestScore {
			best, bestScore = code, score
		}
	}
	return modules(best), nil
}

func encodeWith(text string, version coding.Version, level coding.Level, mask coding.Mask) (*coding.Code, error) {
	plan, err := coding.NewPlan(version, level, mask)
	if err != nil {
		return nil, fmt.Errorf("failed to plan version %s mask %d: %w", version, mask, err)
	}
	code, err := plan.Encode(coding.String(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return code, nil
}

// modules transposes the code bitmap (rows are y) to [x][y].
func modules(code *coding.Code) [][]bool {
	on := make([][]bool, code.Size)
	for x := range on {
		on[x] = make([]bool, code.Size)
		for y := 0; y < code.Size; y++ {
			on[x][y] = code.Black(x, y)
		}
	}
	return on
}

// Encode returns the unfilled grid for text. With opts.Padding set the grid
// gains one white ring, so its side is N+2 for an N-module code.
func Encode(text string, opts model.EncodeOptions) (model.Grid, error) {
	on, err := Matrix(text, opts)
	if err != nil {
		return model.Grid{}, err
	}
	grid, err := model.NewGrid(on)
	if err != nil {
		return model.Grid{}, err
	}
	if opts.Padding {
		grid = grid.Pad()
	}
	return grid, nil
}

// Stats summarises a grid the way a builder needs it before tiling.
type Stats struct {
	Size  int `json:"size"`  // Studs per side
	Area  int `json:"area"`  // Total studs
	White int `json:"white"` // White studs, padding ring included
	Black int `json:"black"` // Black studs
}

// GridStats counts the studs of grid.
func GridStats(grid model.Grid) Stats {
	white, black := grid.CountColors()
	return Stats{
		Size:  grid.Width,
		Area:  grid.Area(),
		White: white,
		Black: black,
	}
}
