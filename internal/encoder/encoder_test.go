package encoder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/piwi3910/StudCode/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/qr/coding"
)

const testURL = "https://frontroyallug.wordpress.com"

func opts(level string, padding bool) model.EncodeOptions {
	return model.EncodeOptions{Level: level, Mask: -1, Padding: padding}
}

func TestParseLevel(t *testing.T) {
	for _, l := range append(Levels, "l", " h ") {
		_, err := ParseLevel(l)
		assert.NoError(t, err, "level %q", l)
	}
	_, err := ParseLevel("X")
	assert.True(t, errors.Is(err, ErrInvalidLevel))
}

func TestValidateOptions(t *testing.T) {
	assert.NoError(t, ValidateOptions(opts("M", true)))

	bad := opts("M", true)
	bad.Mask = 8
	assert.ErrorIs(t, ValidateOptions(bad), ErrInvalidMask)

	for mask := 0; mask < 8; mask++ {
		fixed := opts("M", true)
		fixed.Mask = mask
		assert.NoError(t, ValidateOptions(fixed), "mask %d", mask)
	}
}

func TestMatrix_FixedMasksAreDistinct(t *testing.T) {
	seen := make(map[string]int)
	for mask := 0; mask < 8; mask++ {
		o := opts("M", false)
		o.Mask = mask
		on, err := Matrix(testURL, o)
		require.NoError(t, err, "mask %d", mask)

		key := fmt.Sprint(on)
		prev, dup := seen[key]
		assert.False(t, dup, "mask %d repeats mask %d", mask, prev)
		seen[key] = mask
	}
	assert.Len(t, seen, 8)
}

func TestMatrix_AutoMaskHasLowestPenalty(t *testing.T) {
	auto, err := Matrix(testURL, opts("Q", false))
	require.NoError(t, err)

	level, err := ParseLevel("Q")
	require.NoError(t, err)
	version, err := Version(testURL, level)
	require.NoError(t, err)

	lowest := -1
	for mask := coding.Mask(0); mask < 8; mask++ {
		code, err := encodeWith(testURL, version, level, mask)
		require.NoError(t, err)
		if p := Penalty(code); lowest < 0 || p < lowest {
			lowest = p
		}
	}

	fixed := make([][][]bool, 8)
	match := -1
	for mask := 0; mask < 8; mask++ {
		o := opts("Q", false)
		o.Mask = mask
		fixed[mask], err = Matrix(testURL, o)
		require.NoError(t, err)
		if match < 0 && assert.ObjectsAreEqual(auto, fixed[mask]) {
			match = mask
		}
	}
	require.NotEqual(t, -1, match, "auto mask must equal one of the fixed masks")

	code, err := encodeWith(testURL, version, level, coding.Mask(match))
	require.NoError(t, err)
	assert.Equal(t, lowest, Penalty(code))
}

func TestMatrix_DigitsUseByteMode(t *testing.T) {
	// 41 digits fit version 1-L in numeric mode, but byte mode needs
	// 4+8+328 = 340 bits, beyond version 2-L (272) and within 3-L (440).
	digits := "12345678901234567890123456789012345678901"
	on, err := Matrix(digits, opts("L", false))
	require.NoError(t, err)
	assert.Len(t, on, 29)

	v, err := Version(digits, coding.L)
	require.NoError(t, err)
	assert.Equal(t, coding.Version(3), v)

	// Uppercase alphanumeric text is sized the same way.
	upper, err := Matrix("HELLO WORLD", opts("L", false))
	require.NoError(t, err)
	assert.Len(t, upper, 21)
}

func TestMatrix_SquareVersionSized(t *testing.T) {
	on, err := Matrix(testURL, opts("L", false))
	require.NoError(t, err)

	size := len(on)
	assert.Equal(t, 0, (size-17)%4, "side must be 4v+17")
	for _, col := range on {
		assert.Len(t, col, size)
	}
}

func TestMatrix_FinderPattern(t *testing.T) {
	on, err := Matrix(testURL, opts("L", false))
	require.NoError(t, err)

	// The top-left finder pattern has a dark 7x7 outline and a light ring.
	for i := 0; i < 7; i++ {
		assert.True(t, on[i][0], "top edge at x=%d", i)
		assert.True(t, on[0][i], "left edge at y=%d", i)
	}
	assert.False(t, on[1][1])
	assert.True(t, on[3][3])
}

func TestEncode_Padding(t *testing.T) {
	plain, err := Encode(testURL, opts("L", false))
	require.NoError(t, err)
	padded, err := Encode(testURL, opts("L", true))
	require.NoError(t, err)

	assert.Equal(t, plain.Width+2, padded.Width)
	assert.Equal(t, plain.Height+2, padded.Height)

	n := plain.Width
	ps, ss := GridStats(padded), GridStats(plain)
	assert.Equal(t, ss.Black, ps.Black)
	assert.Equal(t, ss.White+4*n+4, ps.White)
	assert.Equal(t, (n+2)*(n+2), ps.Area)
}

func TestEncode_HigherLevelIsNotSmaller(t *testing.T) {
	low, err := Encode(testURL, opts("L", false))
	require.NoError(t, err)
	high, err := Encode(testURL, opts("H", false))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, high.Width, low.Width)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode("", opts("L", true))
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = Encode(testURL, opts("Z", true))
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = Encode("caf\u00e9", opts("L", true))
	assert.ErrorIs(t, err, ErrNonASCII)

	_, err = Encode(strings.Repeat("x", 3000), opts("L", true))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestPenalty_PrefersBalancedSymbol(t *testing.T) {
	solid := &coding.Code{Size: 21, Stride: 24}
	solid.Bitmap = make([]byte, solid.Stride*solid.Size)

	code, err := encodeWith(testURL, 3, coding.L, 0)
	require.NoError(t, err)
	assert.Less(t, Penalty(code), Penalty(solid))
}
