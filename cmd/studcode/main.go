// StudCode turns text into a QR code and tiles it with two-color bricks.
//
// Build:
//   go build -o studcode ./cmd/studcode
//
// Usage:
//   studcode tile "https://example.com"
//   studcode export "https://example.com" --format pdf --out sign.pdf

package main

import (
	"io"
	"os"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/project"
)

var log zerolog.Logger

var cmdRoot = &cobra.Command{
	Use:               "studcode",
	Short:             "Tile QR codes with bricks",
	Version:           versioninfo.Short(),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	cmdRoot.AddCommand(cmdTile, cmdExport, cmdCompare, cmdConfig, cmdCatalog, cmdHistory, cmdBackup)

	crF := cmdRoot.PersistentFlags()
	crF.StringP("config", "c", project.DefaultConfigPath(), "Path to configuration file")
	crF.Bool("debug", false, "Print additional debugging and trace information")
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	minimumLevel := zerolog.InfoLevel
	if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
		minimumLevel = zerolog.TraceLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05.000000",
	}
	multiOut := io.MultiWriter(consoleWriter)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	preLog := zerolog.New(multiOut).With().Timestamp().Str("service", "studcode").Logger()
	log = preLog.Level(minimumLevel)
	return nil
}
