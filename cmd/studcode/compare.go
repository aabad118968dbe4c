package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/encoder"
	"github.com/piwi3910/StudCode/internal/engine"
	"github.com/piwi3910/StudCode/internal/model"
)

var cmdCompare = &cobra.Command{
	RunE:  runCompare,
	Use:   "compare TEXT",
	Short: "Compare piece totals across catalog orderings",
	Args:  cobra.ExactArgs(1),
}

func init() {
	addEncodeFlags(cmdCompare)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	parts, err := catalogParts(cfg)
	if err != nil {
		return err
	}
	scenarios, err := engine.BuildDefaultScenarios(parts)
	if err != nil {
		return err
	}

	var encOpts model.EncodeOptions
	cfg.ApplyToOptions(&encOpts)
	grid, err := encoder.Encode(args[0], encOpts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	results := engine.CompareCatalogs(grid, scenarios)
	best := engine.Best(results)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Ordering\tPieces\tWhite\tBlack\tKinds\t")
	for i, r := range results {
		if r.Err != nil {
			log.Warn().Err(r.Err).Str("scenario", r.Scenario.Name).Msg("Scenario failed")
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%v\n", r.Scenario.Name, r.Err)
			continue
		}
		mark := ""
		if i == best {
			mark = "best"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.Scenario.Name, r.TotalPieces, r.WhitePieces, r.BlackPieces, r.Kinds, mark)
	}
	return tw.Flush()
}
