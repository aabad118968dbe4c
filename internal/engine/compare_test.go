package engine

import (
	"testing"

	"github.com/piwi3910/StudCode/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios, err := BuildDefaultScenarios(model.DefaultParts())
	require.NoError(t, err)

	require.Len(t, scenarios, 3)
	assert.Equal(t, "Largest first", scenarios[0].Name)
	assert.Equal(t, model.DefaultCatalog().Names(), scenarios[0].Catalog.Names())
	assert.Equal(t, "6x6", scenarios[1].Catalog.Names()[0])
	assert.Equal(t, "2x2", scenarios[1].Catalog.Names()[2], "declared order keeps 2x2 third")

	// Ties reversed: 2x4 before 1x8 and the corner before 1x3.
	names := scenarios[2].Catalog.Names()
	assert.Equal(t, []string{"6x6", "4x4", "2x6", "2x4", "1x8"}, names[:5])
}

func TestBuildDefaultScenarios_SkipsDuplicates(t *testing.T) {
	scenarios, err := BuildDefaultScenarios([]model.Part{model.NewBrick(1, 1)})
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}

func TestCompareCatalogs(t *testing.T) {
	grid := uniformGrid(t, 8, 8, false)
	scenarios, err := BuildDefaultScenarios(model.DefaultParts())
	require.NoError(t, err)

	results := CompareCatalogs(grid, scenarios)
	require.Len(t, results, len(scenarios))

	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, r.Result.Report.Total, r.TotalPieces)
		assert.Equal(t, r.TotalPieces, r.WhitePieces+r.BlackPieces)
		assert.Equal(t, 0, r.BlackPieces)
	}
	assert.Equal(t, 4, results[0].TotalPieces)
	assert.Equal(t, 0, Best(results))
}

func TestCompareCatalogs_ReportsFailures(t *testing.T) {
	noUnit, err := model.NewCatalog(model.NewBrick(2, 2))
	require.NoError(t, err)

	results := CompareCatalogs(uniformGrid(t, 3, 3, true), []ComparisonScenario{
		{Name: "No unit", Catalog: noUnit},
		{Name: "Default", Catalog: model.DefaultCatalog()},
	})

	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, model.ErrIncompleteCoverage)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, Best(results))
}
