package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/StudCode/internal/model"
)

// CatalogFile is the on-disk form of a custom part catalog.
type CatalogFile struct {
	Policy model.CatalogPolicy `json:"policy"`
	Parts  []model.Part        `json:"parts"`
}

// DefaultCatalogPath returns ~/.studcode/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes parts in their declared order together with the
// policy used to order them for tiling.
func SaveCatalog(path string, policy model.CatalogPolicy, parts []model.Part) error {
	if len(parts) == 0 {
		return model.ErrEmptyCatalog
	}
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return writeJSON(path, CatalogFile{Policy: policy, Parts: parts})
}

// LoadCatalogFile reads a saved catalog without ordering it. A missing
// policy defaults to PolicyArea.
func LoadCatalogFile(path string) (CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogFile{}, err
	}
	var file CatalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return CatalogFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if file.Policy == "" {
		file.Policy = model.PolicyArea
	}
	return file, nil
}

// LoadCatalog reads a saved catalog and orders it with its stored policy.
func LoadCatalog(path string) (model.Catalog, error) {
	file, err := LoadCatalogFile(path)
	if err != nil {
		return model.Catalog{}, err
	}
	cat, err := file.Policy.BuildCatalog(file.Parts)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}
