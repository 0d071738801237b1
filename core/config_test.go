package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEditorConfig(t *testing.T) {
	cfg := DefaultEditorConfig()
	if cfg.PickTolerancePx != 4 {
		t.Errorf("DefaultEditorConfig: expected pick tolerance 4, got %v", cfg.PickTolerancePx)
	}
	if cfg.UndoDepth != 100 {
		t.Errorf("DefaultEditorConfig: expected undo depth 100, got %v", cfg.UndoDepth)
	}
	if cfg.DepthExtent != 100000 {
		t.Errorf("DefaultEditorConfig: expected depth extent 100000, got %v", cfg.DepthExtent)
	}
}

func TestLoadEditorConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	data := "pick_tolerance_px: 10\nundo_depth: 25\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadEditorConfig(path)
	if err != nil {
		t.Fatalf("LoadEditorConfig: %v", err)
	}
	if cfg.PickTolerancePx != 10 {
		t.Errorf("LoadEditorConfig: expected override 10, got %v", cfg.PickTolerancePx)
	}
	if cfg.UndoDepth != 25 {
		t.Errorf("LoadEditorConfig: expected override 25, got %v", cfg.UndoDepth)
	}

	// Unset keys keep their defaults.
	if cfg.HandleOffsetPx != 8 {
		t.Errorf("LoadEditorConfig: expected default offset 8, got %v", cfg.HandleOffsetPx)
	}
}

func TestLoadEditorConfigMissingFile(t *testing.T) {
	cfg, err := LoadEditorConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadEditorConfig: expected an error for a missing file")
	}
	// The returned config is still usable.
	if cfg.PickTolerancePx != 4 {
		t.Errorf("LoadEditorConfig: expected defaults on error, got %v", cfg.PickTolerancePx)
	}
}

func TestLoadEditorConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pick_tolerance_px: [not a number"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadEditorConfig(path); err == nil {
		t.Error("LoadEditorConfig: expected a parse error")
	}
}
