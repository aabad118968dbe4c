package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/project"
)

var cmdBackup = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore the configuration and saved builds",
}

var cmdBackupExport = &cobra.Command{
	RunE:  runBackupExport,
	Use:   "export FILE",
	Short: "Write config and builds to one JSON file",
	Args:  cobra.ExactArgs(1),
}

var cmdBackupImport = &cobra.Command{
	RunE:  runBackupImport,
	Use:   "import FILE",
	Short: "Restore config and builds from a backup file",
	Args:  cobra.ExactArgs(1),
}

func init() {
	cmdBackup.AddCommand(cmdBackupExport, cmdBackupImport)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	builds, warnings, err := project.ListBuilds(project.DefaultBuildsDir())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err := project.ExportAllData(args[0], cfg, builds); err != nil {
		return err
	}
	log.Info().Str("file", args[0]).Int("builds", len(builds)).Msg("Wrote backup")
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	backup, err := project.ImportAllData(args[0])
	if err != nil {
		return err
	}
	paths, err := project.RestoreBuilds(project.DefaultBuildsDir(), backup)
	if err != nil {
		return err
	}
	configPath, _ := cmd.Flags().GetString("config")
	if err := project.SaveAppConfig(configPath, backup.Config); err != nil {
		return err
	}
	log.Info().Str("created", backup.CreatedAt).Int("builds", len(paths)).Msg("Restored backup")
	return nil
}
