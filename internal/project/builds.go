package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/StudCode/internal/model"
)

// BuildExt is the file extension used for saved builds.
const BuildExt = ".studbuild"

// DefaultBuildsDir returns ~/.studcode/builds.
func DefaultBuildsDir() string {
	return filepath.Join(DefaultConfigDir(), "builds")
}

// BuildPath returns the file a build is saved to inside dir.
func BuildPath(dir string, build model.Build) string {
	return filepath.Join(dir, build.ID+BuildExt)
}

// SaveBuild writes a build record, including its report, to path.
func SaveBuild(path string, build model.Build) error {
	if build.ID == "" {
		return fmt.Errorf("build has no id")
	}
	return writeJSON(path, build)
}

// LoadBuild reads a build record from path.
func LoadBuild(path string) (model.Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Build{}, err
	}
	var build model.Build
	if err := json.Unmarshal(data, &build); err != nil {
		return model.Build{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if build.ID == "" {
		return model.Build{}, fmt.Errorf("invalid build file %s: missing id", path)
	}
	return build, nil
}

// ListBuilds loads every saved build in dir, newest first. A missing
// directory yields an empty list. Unreadable files are skipped and
// reported in the returned warnings.
func ListBuilds(dir string) ([]model.Build, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Build{}, nil, nil
		}
		return nil, nil, err
	}

	builds := []model.Build{}
	var warnings []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), BuildExt) {
			continue
		}
		b, err := LoadBuild(filepath.Join(dir, e.Name()))
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		builds = append(builds, b)
	}

	// RFC 3339 timestamps in UTC sort lexicographically
	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].CreatedAt > builds[j].CreatedAt
	})
	return builds, warnings, nil
}
