package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/export"
	"github.com/piwi3910/StudCode/internal/model"
	"github.com/piwi3910/StudCode/internal/project"
)

var cmdExport = &cobra.Command{
	RunE:  runExport,
	Use:   "export TEXT",
	Short: "Tile text and write a build sheet, parts list, outline or labels",
	Args:  cobra.ExactArgs(1),
}

func init() {
	addEncodeFlags(cmdExport)

	f := cmdExport.Flags()
	f.StringP("format", "f", "pdf", "Output format: pdf, xlsx, dxf or labels")
	f.StringP("out", "o", "", "Output file, defaults to <build id>.<ext> in the output directory")
	f.StringP("name", "n", "", "Build name shown on exports")
	f.Float64("pitch", 8.0, "Stud pitch in mm for DXF output")
	f.Bool("no-save", false, "Do not record the build in the history")
}

var formatExt = map[string]string{
	"pdf":    ".pdf",
	"xlsx":   ".xlsx",
	"dxf":    ".dxf",
	"labels": "-labels.pdf",
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	ext, ok := formatExt[format]
	if !ok {
		return fmt.Errorf("unknown format %q", format)
	}

	j, err := runJob(cmd, args[0])
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	build := model.NewBuild(name, args[0], j.opts, string(j.cfg.CatalogPolicy))
	build.Size = j.grid.Width
	report := j.result.Report
	build.Report = &report

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(j.cfg.OutputDir, build.ID+ext)
	}

	switch format {
	case "pdf":
		err = export.ExportPDF(out, build, j.result)
	case "xlsx":
		err = export.ExportXLSX(out, build, j.result)
	case "dxf":
		pitch, _ := cmd.Flags().GetFloat64("pitch")
		err = export.ExportDXF(out, j.result, pitch)
	case "labels":
		err = export.ExportLabels(out, build, j.result.Report, j.catalog)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	log.Info().Str("file", out).Str("format", format).Str("build", build.ID).Msg("Wrote export")

	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave {
		return nil
	}
	buildPath := project.BuildPath(project.DefaultBuildsDir(), build)
	if err := project.SaveBuild(buildPath, build); err != nil {
		return fmt.Errorf("save build: %w", err)
	}
	configPath, _ := cmd.Flags().GetString("config")
	if err := saveRecentBuild(configPath, buildPath); err != nil {
		log.Warn().Err(err).Msg("Could not update recent builds")
	}
	log.Debug().Str("file", buildPath).Msg("Saved build")
	return nil
}
