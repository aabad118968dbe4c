package encoder

import "rsc.io/qr/coding"

// Penalty weights used when choosing a mask.
const (
	runMin     = 5  // shortest penalised run
	runBase    = 3  // points for a run of runMin modules
	boxPoints  = 3  // per 2x2 block of one colour
	finderCost = 40 // per finder-like 1:1:3:1:1 pattern beside four light modules
	balanceMul = 10 // per 5% away from half dark
)

var (
	finderBefore = []bool{false, false, false, false, true, false, true, true, true, false, true}
	finderAfter  = []bool{true, false, true, true, true, false, true, false, false, false, false}
)

// Penalty scores a symbol the way a QR encoder ranks masks: long runs,
// 2x2 blocks, finder look-alikes and dark/light imbalance all add points.
// Modules outside the symbol count as light.
func Penalty(code *coding.Code) int {
	n := code.Size
	row := func(i int) func(int) bool {
		return func(j int) bool { return code.Black(j, i) }
	}
	col := func(i int) func(int) bool {
		return func(j int) bool { return code.Black(i, j) }
	}

	score := 0
	for i := 0; i < n; i++ {
		score += linePenalty(row(i), n)
		score += linePenalty(col(i), n)
	}

	for y := 0; y+1 < n; y++ {
		for x := 0; x+1 < n; x++ {
			c := code.Black(x, y)
			if code.Black(x+1, y) == c && code.Black(x, y+1) == c && code.Black(x+1, y+1) == c {
				score += boxPoints
			}
		}
	}

	dark := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if code.Black(x, y) {
				dark++
			}
		}
	}
	total := n * n
	if dark > total/2 {
		dark = total - dark
	}
	// Folding toward the light side makes 40% and 60% score alike.
	score += (9 - dark*20/total) * balanceMul
	return score
}

// linePenalty scores runs and finder look-alikes along one row or column.
func linePenalty(at func(int) bool, n int) int {
	score := 0
	run := 1
	for j := 1; j <= n; j++ {
		if j < n && at(j) == at(j-1) {
			run++
			continue
		}
		if run >= runMin {
			score += runBase + run - runMin
		}
		run = 1
	}

	// Patterns may reach four modules into the quiet zone.
	for start := -4; start+len(finderBefore) <= n+4; start++ {
		if matches(at, n, start, finderBefore) {
			score += finderCost
		}
		if matches(at, n, start, finderAfter) {
			score += finderCost
		}
	}
	return score
}

func matches(at func(int) bool, n, start int, pattern []bool) bool {
	for k, want := range pattern {
		j := start + k
		dark := j >= 0 && j < n && at(j)
		if dark != want {
			return false
		}
	}
	return true
}
