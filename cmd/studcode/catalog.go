package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StudCode/internal/importer"
	"github.com/piwi3910/StudCode/internal/model"
	"github.com/piwi3910/StudCode/internal/project"
)

var cmdCatalog = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the part catalog",
}

var cmdCatalogImport = &cobra.Command{
	RunE:  runCatalogImport,
	Use:   "import FILE",
	Short: "Import parts from a CSV or XLSX file and make them the default catalog",
	Args:  cobra.ExactArgs(1),
}

var cmdCatalogList = &cobra.Command{
	RunE:  runCatalogList,
	Use:   "list",
	Short: "List catalog parts in placement order",
	Args:  cobra.NoArgs,
}

func init() {
	cmdCatalog.AddCommand(cmdCatalogImport, cmdCatalogList)
	cmdCatalogImport.Flags().String("policy", string(model.PolicyArea), "Catalog ordering: area or declared")
	cmdCatalogImport.Flags().String("out", project.DefaultCatalogPath(), "Where to save the catalog")
	addEncodeFlags(cmdCatalogList)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	policyFlag, _ := cmd.Flags().GetString("policy")
	policy := model.CatalogPolicy(policyFlag)
	if policy != model.PolicyArea && policy != model.PolicyDeclared {
		return fmt.Errorf("unknown catalog policy %q", policy)
	}

	result := importer.ImportFile(args[0])
	for _, w := range result.Warnings {
		log.Warn().Str("file", args[0]).Msg(w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			log.Error().Str("file", args[0]).Msg(e)
		}
		return fmt.Errorf("%d rows could not be imported", len(result.Errors))
	}

	out, _ := cmd.Flags().GetString("out")
	if err := project.SaveCatalog(out, policy, result.Parts); err != nil {
		return err
	}
	log.Info().Int("parts", len(result.Parts)).Str("file", out).Msg("Saved catalog")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	cfg.CatalogPath = out
	cfg.CatalogPolicy = policy
	return project.SaveAppConfig(configPath, cfg)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cat, err := resolveCatalog(cfg)
	if err != nil {
		return err
	}
	for _, p := range cat.Parts() {
		angles := make([]string, len(p.Rotations))
		for i, a := range p.Rotations {
			angles[i] = fmt.Sprint(a)
		}
		fmt.Fprintf(os.Stdout, "%-12s %3d studs  rotations %s\n", p.Name, p.Footprint.Cells(), strings.Join(angles, ","))
	}
	return nil
}
