package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/StudCode/internal/importer"
	"github.com/piwi3910/StudCode/internal/model"
	"github.com/piwi3910/StudCode/internal/project"
)

// flagKeys maps encode flags to their config file keys.
var flagKeys = map[string]string{
	"level":   "default_level",
	"mask":    "default_mask",
	"padding": "default_padding",
	"catalog": "catalog_path",
	"policy":  "catalog_policy",
}

// addEncodeFlags registers the flags shared by every command that tiles.
func addEncodeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("level", "l", "L", "Error correction level (L, M, Q or H)")
	f.IntP("mask", "m", -1, "Mask pattern, -1 for automatic")
	f.Bool("padding", true, "Surround the code with one ring of white studs")
	f.String("catalog", "", "Part catalog file (.csv, .xlsx or saved .json), empty for built-in")
	f.String("policy", string(model.PolicyArea), "Catalog ordering: area or declared")
}

// loadSettings reads the config file and overlays any flags set on cmd.
func loadSettings(cmd *cobra.Command) (model.AppConfig, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return model.AppConfig{}, err
	}

	defaults := model.DefaultAppConfig()
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetDefault("default_level", defaults.DefaultLevel)
	v.SetDefault("default_mask", defaults.DefaultMask)
	v.SetDefault("default_padding", defaults.DefaultPadding)
	v.SetDefault("catalog_policy", string(defaults.CatalogPolicy))
	v.SetDefault("catalog_path", defaults.CatalogPath)
	v.SetDefault("output_dir", defaults.OutputDir)

	for flag, key := range flagKeys {
		if fl := cmd.Flags().Lookup(flag); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return model.AppConfig{}, err
			}
		}
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return model.AppConfig{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
		log.Debug().Str("file", configPath).Msg("Loaded configuration file.")
	} else {
		log.Debug().Str("file", configPath).Msg("No configuration file, using defaults.")
	}

	cfg := model.AppConfig{
		DefaultLevel:   v.GetString("default_level"),
		DefaultMask:    v.GetInt("default_mask"),
		DefaultPadding: v.GetBool("default_padding"),
		CatalogPolicy:  model.CatalogPolicy(v.GetString("catalog_policy")),
		CatalogPath:    v.GetString("catalog_path"),
		OutputDir:      v.GetString("output_dir"),
		RecentBuilds:   v.GetStringSlice("recent_builds"),
	}
	policyFlag := cmd.Flags().Lookup("policy")
	if err := applySavedPolicy(&cfg, policyFlag != nil && policyFlag.Changed); err != nil {
		return model.AppConfig{}, err
	}
	switch cfg.CatalogPolicy {
	case model.PolicyArea, model.PolicyDeclared:
	default:
		return model.AppConfig{}, fmt.Errorf("unknown catalog policy %q", cfg.CatalogPolicy)
	}
	log.Trace().Interface("config", cfg).Msg("Our settings")
	return cfg, nil
}

func isSavedCatalog(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// applySavedPolicy makes a saved .json catalog tile in the order it was
// saved with. An explicit --policy still wins.
func applySavedPolicy(cfg *model.AppConfig, explicit bool) error {
	if explicit || !isSavedCatalog(cfg.CatalogPath) {
		return nil
	}
	file, err := project.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return err
	}
	if file.Policy != cfg.CatalogPolicy {
		log.Debug().Str("file", cfg.CatalogPath).Str("policy", string(file.Policy)).Msg("Using saved catalog policy")
	}
	cfg.CatalogPolicy = file.Policy
	return nil
}

// catalogParts returns the configured parts in declared order.
func catalogParts(cfg model.AppConfig) ([]model.Part, error) {
	path := cfg.CatalogPath
	if path == "" {
		return model.DefaultParts(), nil
	}
	if isSavedCatalog(path) {
		file, err := project.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		return file.Parts, nil
	}

	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		log.Debug().Str("file", path).Msg(w)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("catalog %s: %s", path, strings.Join(result.Errors, "; "))
	}
	return result.Parts, nil
}

// resolveCatalog builds the tiling catalog described by cfg.
func resolveCatalog(cfg model.AppConfig) (model.Catalog, error) {
	parts, err := catalogParts(cfg)
	if err != nil {
		return model.Catalog{}, err
	}
	cat, err := cfg.CatalogPolicy.BuildCatalog(parts)
	if err != nil {
		return model.Catalog{}, err
	}
	log.Debug().Strs("parts", cat.Names()).Str("policy", string(cfg.CatalogPolicy)).Msg("Catalog ready")
	if !cat.HasUnitPart() {
		log.Warn().Msg("Catalog has no 1x1 part, tiling may leave studs uncovered")
	}
	return cat, nil
}

// saveRecentBuild records path in the on-disk config, leaving every other
// setting as the user wrote it.
func saveRecentBuild(configPath, path string) error {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	cfg.AddRecentBuild(path)
	return project.SaveAppConfig(configPath, cfg)
}
