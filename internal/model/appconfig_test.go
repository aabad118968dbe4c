package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultOptions(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultEncodeOptions()

	if cfg.DefaultLevel != defaults.Level {
		t.Errorf("Level mismatch: config=%s options=%s", cfg.DefaultLevel, defaults.Level)
	}
	if cfg.DefaultMask != defaults.Mask {
		t.Errorf("Mask mismatch: config=%d options=%d", cfg.DefaultMask, defaults.Mask)
	}
	if cfg.DefaultPadding != defaults.Padding {
		t.Errorf("Padding mismatch: config=%v options=%v", cfg.DefaultPadding, defaults.Padding)
	}
	if cfg.CatalogPolicy != PolicyArea {
		t.Errorf("expected default policy=area, got %s", cfg.CatalogPolicy)
	}
	if cfg.RecentBuilds == nil {
		t.Error("RecentBuilds should not be nil")
	}
}

func TestApplyToOptions(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultLevel = "H"
	cfg.DefaultMask = 3
	cfg.DefaultPadding = false

	o := DefaultEncodeOptions()
	cfg.ApplyToOptions(&o)

	if o.Level != "H" {
		t.Errorf("expected Level=H, got %s", o.Level)
	}
	if o.Mask != 3 {
		t.Errorf("expected Mask=3, got %d", o.Mask)
	}
	if o.Padding {
		t.Error("expected Padding=false")
	}
}

func TestAddRecentBuild(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentBuild("a.json")
	cfg.AddRecentBuild("b.json")
	cfg.AddRecentBuild("a.json")

	if len(cfg.RecentBuilds) != 2 {
		t.Fatalf("expected 2 recent builds, got %d", len(cfg.RecentBuilds))
	}
	if cfg.RecentBuilds[0] != "a.json" || cfg.RecentBuilds[1] != "b.json" {
		t.Errorf("unexpected order: %v", cfg.RecentBuilds)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentBuild(fmt.Sprintf("build%d.json", i))
	}
	if len(cfg.RecentBuilds) != 10 {
		t.Errorf("expected recent builds capped at 10, got %d", len(cfg.RecentBuilds))
	}
	if cfg.RecentBuilds[0] != "build19.json" {
		t.Errorf("expected newest first, got %s", cfg.RecentBuilds[0])
	}
}

func TestCatalogPolicyBuildCatalog(t *testing.T) {
	parts := []Part{NewBrick(1, 1), NewBrick(2, 2)}

	area, err := PolicyArea.BuildCatalog(parts)
	if err != nil {
		t.Fatal(err)
	}
	if area.Names()[0] != "2x2" {
		t.Errorf("area policy should put 2x2 first, got %v", area.Names())
	}

	declared, err := PolicyDeclared.BuildCatalog(parts)
	if err != nil {
		t.Fatal(err)
	}
	if declared.Names()[0] != "1x1" {
		t.Errorf("declared policy should keep 1x1 first, got %v", declared.Names())
	}
}
