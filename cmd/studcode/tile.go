package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/encoder"
	"github.com/piwi3910/StudCode/internal/engine"
	"github.com/piwi3910/StudCode/internal/export"
	"github.com/piwi3910/StudCode/internal/model"
)

var cmdTile = &cobra.Command{
	RunE:  runTile,
	Use:   "tile TEXT",
	Short: "Encode text and print the piece listing",
	Args:  cobra.ExactArgs(1),
}

func init() {
	addEncodeFlags(cmdTile)
}

// job is one encode-and-tile run with everything needed to export it.
type job struct {
	cfg     model.AppConfig
	opts    model.EncodeOptions
	catalog model.Catalog
	grid    model.Grid
	result  model.TileResult
}

// runJob encodes text with the settings resolved for cmd and tiles it.
func runJob(cmd *cobra.Command, text string) (*job, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	j := &job{cfg: cfg}
	cfg.ApplyToOptions(&j.opts)

	if j.catalog, err = resolveCatalog(cfg); err != nil {
		return nil, err
	}

	if j.grid, err = encoder.Encode(text, j.opts); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	log.Debug().
		Int("size", j.grid.Width).
		Str("level", j.opts.Level).
		Bool("padding", j.opts.Padding).
		Msg("Encoded grid")

	j.result, err = engine.Tile(j.grid, j.catalog)
	if err != nil {
		var cov *engine.CoverageError
		if errors.As(err, &cov) {
			log.Error().Int("x", cov.X).Int("y", cov.Y).Int("remaining", cov.Remaining).Msg("Tiling left studs uncovered")
		}
		return nil, fmt.Errorf("tile: %w", err)
	}
	log.Info().Int("pieces", j.result.Report.Total).Int("kinds", len(j.result.Report.Counts)).Msg("Tiled grid")
	return j, nil
}

func runTile(cmd *cobra.Command, args []string) error {
	j, err := runJob(cmd, args[0])
	if err != nil {
		return err
	}

	stats := encoder.GridStats(j.grid)
	out := os.Stdout
	fmt.Fprintf(out, "Size: %d x %d (%d studs)\n", stats.Size, stats.Size, stats.Area)
	fmt.Fprintf(out, "White studs: %d\nBlack studs: %d\n", stats.White, stats.Black)
	fmt.Fprintf(out, "Pieces: %d\n\n", j.result.Report.Total)
	return export.WriteListing(out, j.result.Report)
}
