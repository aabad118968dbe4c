package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/project"
)

var cmdHistory = &cobra.Command{
	RunE:  runHistory,
	Use:   "history",
	Short: "List saved builds, newest first",
	Args:  cobra.NoArgs,
}

func init() {
	cmdHistory.Flags().String("dir", project.DefaultBuildsDir(), "Directory holding saved builds")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	builds, warnings, err := project.ListBuilds(dir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCreated\tName\tSize\tPieces\tText")
	for _, b := range builds {
		pieces := 0
		if b.Report != nil {
			pieces = b.Report.Total
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", b.ID, b.CreatedAt, b.Name, b.Size, pieces, b.Text)
	}
	return tw.Flush()
}
