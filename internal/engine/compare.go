package engine

import (
	"fmt"
	"slices"

	"github.com/piwi3910/StudCode/internal/model"
)

// ComparisonScenario defines a named catalog ordering to compare.
type ComparisonScenario struct {
	Name    string
	Catalog model.Catalog
}

// ComparisonResult holds the tiling result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Result      model.TileResult
	TotalPieces int
	WhitePieces int
	BlackPieces int
	Kinds       int
	Err         error
}

// CompareCatalogs tiles the same grid once per scenario and returns the
// results in scenario order. Piece totals differ between orderings because
// the scan is greedy; this makes the effect of a catalog policy visible.
func CompareCatalogs(grid model.Grid, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res, err := Tile(grid, scenario.Catalog)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Result:      res,
			TotalPieces: res.Report.Total,
			WhitePieces: res.Report.CountColor(model.White),
			BlackPieces: res.Report.CountColor(model.Black),
			Kinds:       len(res.Report.Counts),
		})
	}

	return results
}

// Best returns the index of the successful result with the fewest pieces,
// the earliest scenario winning ties, or -1 if every scenario failed.
func Best(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.TotalPieces < results[best].TotalPieces {
			best = i
		}
	}
	return best
}

// BuildDefaultScenarios generates catalog orderings derived from parts:
// stud count descending (the default policy), the declared order, and stud
// count descending with ties reversed.
func BuildDefaultScenarios(parts []model.Part) ([]ComparisonScenario, error) {
	area, err := model.NewCatalog(parts...)
	if err != nil {
		return nil, fmt.Errorf("area catalog: %w", err)
	}
	scenarios := []ComparisonScenario{
		{Name: "Largest first", Catalog: area},
	}

	declared, err := model.NewCatalogInOrder(parts...)
	if err != nil {
		return nil, fmt.Errorf("declared catalog: %w", err)
	}
	if !slices.Equal(declared.Names(), area.Names()) {
		scenarios = append(scenarios, ComparisonScenario{Name: "Declared order", Catalog: declared})
	}

	reversed := slices.Clone(parts)
	slices.Reverse(reversed)
	tiesReversed, err := model.NewCatalog(reversed...)
	if err != nil {
		return nil, fmt.Errorf("reversed catalog: %w", err)
	}
	if !slices.Equal(tiesReversed.Names(), area.Names()) {
		scenarios = append(scenarios, ComparisonScenario{Name: "Largest first, ties reversed", Catalog: tiesReversed})
	}

	return scenarios, nil
}
