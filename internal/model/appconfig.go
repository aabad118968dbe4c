package model

// CatalogPolicy selects how catalog parts are ordered before tiling.
type CatalogPolicy string

const (
	PolicyArea     CatalogPolicy = "area"     // Largest stud count first, ties in declaration order
	PolicyDeclared CatalogPolicy = "declared" // Exactly the declared order
)

// BuildCatalog orders parts according to the policy. Unknown policies fall
// back to PolicyArea.
func (p CatalogPolicy) BuildCatalog(parts []Part) (Catalog, error) {
	if p == PolicyDeclared {
		return NewCatalogInOrder(parts...)
	}
	return NewCatalog(parts...)
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default encoding settings applied to new builds
	DefaultLevel   string `json:"default_level"`
	DefaultMask    int    `json:"default_mask"`
	DefaultPadding bool   `json:"default_padding"`

	// Catalog selection
	CatalogPolicy CatalogPolicy `json:"catalog_policy"`
	CatalogPath   string        `json:"catalog_path"` // CSV or XLSX part list, empty = built-in catalog

	// Application preferences
	OutputDir    string   `json:"output_dir"`
	RecentBuilds []string `json:"recent_builds"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultEncodeOptions().
func DefaultAppConfig() AppConfig {
	defaults := DefaultEncodeOptions()
	return AppConfig{
		DefaultLevel:   defaults.Level,
		DefaultMask:    defaults.Mask,
		DefaultPadding: defaults.Padding,
		CatalogPolicy:  PolicyArea,
		CatalogPath:    "",
		OutputDir:      ".",
		RecentBuilds:   []string{},
	}
}

// ApplyToOptions copies the default values from AppConfig into EncodeOptions.
func (c AppConfig) ApplyToOptions(o *EncodeOptions) {
	o.Level = c.DefaultLevel
	o.Mask = c.DefaultMask
	o.Padding = c.DefaultPadding
}

const maxRecentBuilds = 10

// AddRecentBuild moves path to the front of RecentBuilds, dropping duplicates
// and keeping at most ten entries.
func (c *AppConfig) AddRecentBuild(path string) {
	recent := []string{path}
	for _, p := range c.RecentBuilds {
		if p != path && len(recent) < maxRecentBuilds {
			recent = append(recent, p)
		}
	}
	c.RecentBuilds = recent
}
