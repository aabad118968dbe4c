package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/StudCode/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Builds    []model.Build   `json:"builds"`
}

// ExportAllData writes the config and every saved build to a single JSON
// file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, builds []model.Build) error {
	if builds == nil {
		builds = []model.Build{}
	}
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Builds:    builds,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and builds.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	// Ensure RecentBuilds is never nil
	if backup.Config.RecentBuilds == nil {
		backup.Config.RecentBuilds = []string{}
	}
	if backup.Builds == nil {
		backup.Builds = []model.Build{}
	}
	return backup, nil
}

// RestoreBuilds saves every build in the backup into dir and returns the
// paths written.
func RestoreBuilds(dir string, backup BackupData) ([]string, error) {
	paths := make([]string, 0, len(backup.Builds))
	for _, b := range backup.Builds {
		path := BuildPath(dir, b)
		if err := SaveBuild(path, b); err != nil {
			return paths, fmt.Errorf("restore build %s: %w", b.ID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
