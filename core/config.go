package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EditorConfig holds the tunable interaction constants of the editor.
// All pixel values are screen pixels; they are converted to world units
// per viewport by dividing by the viewport zoom.
type EditorConfig struct {
	// PickTolerancePx is the half-size of the hit-test box built around a
	// single click in a 2D viewport.
	PickTolerancePx float32 `yaml:"pick_tolerance_px"`

	// HandlePaddingPx is the half-size of the hit region around each
	// transform handle.
	HandlePaddingPx float32 `yaml:"handle_padding_px"`

	// HandleOffsetPx is how far corner/edge handles sit outside the box.
	HandleOffsetPx float32 `yaml:"handle_offset_px"`

	// HandleSizePx is the drawn size of a handle.
	HandleSizePx float32 `yaml:"handle_size_px"`

	// DragThresholdPx separates a click from the start of a drag.
	DragThresholdPx float32 `yaml:"drag_threshold_px"`

	// DepthExtent is how far a 2D test box is expanded along the
	// viewport's depth axis so it captures objects at any depth.
	DepthExtent float32 `yaml:"depth_extent"`

	// UndoDepth bounds the history log.
	UndoDepth int `yaml:"undo_depth"`
}

func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		PickTolerancePx: 4,
		HandlePaddingPx: 7,
		HandleOffsetPx:  8,
		HandleSizePx:    8,
		DragThresholdPx: 2,
		DepthExtent:     100000,
		UndoDepth:       100,
	}
}

// LoadEditorConfig reads a YAML config file over the defaults. Unset keys
// keep their default values.
func LoadEditorConfig(path string) (EditorConfig, error) {
	cfg := DefaultEditorConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
