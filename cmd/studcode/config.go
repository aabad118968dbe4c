package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/model"
	"github.com/piwi3910/StudCode/internal/project"
)

var cmdConfig = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var cmdConfigInit = &cobra.Command{
	RunE:  runConfigInit,
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
}

var cmdConfigShow = &cobra.Command{
	RunE:  runConfigShow,
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
}

func init() {
	cmdConfig.AddCommand(cmdConfigInit, cmdConfigShow)
	cmdConfigInit.Flags().Bool("force", false, "Overwrite an existing file")
	addEncodeFlags(cmdConfigShow)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		return err
	}
	log.Info().Str("file", path).Msg("Wrote default configuration")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
