package editor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// ViewportID indexes the editor's viewports. The tool stores these as
// weak references instead of viewport pointers.
const (
	ViewportPerspective = 0
	Viewport2DTop       = 1
)

// Editor is the top-level editor: it owns the document, the history
// log, the viewports, and the select tool, and routes toolkit events to
// them in delivery order.
type Editor struct {
	Scene   *scene.Scene
	History *History
	Input   *InputManager
	Window  *core.Window
	Config  core.EditorConfig

	Tool *SelectTool

	// Viewports: one perspective view and one 2D map view, toggled.
	OrbitCamera *scene.OrbitCamera
	View3D      *Viewport3D
	View2D      *Viewport2D
	In2DView    bool

	StatusText string
}

// NewEditor initializes a new editor instance
func NewEditor(window *core.Window, s *scene.Scene, cfg core.EditorConfig) *Editor {
	camera := scene.NewOrbitCamera(mgl32.Vec3{}, 24, 1.0472, float32(window.Width)/float32(window.Height))

	e := &Editor{
		Scene:       s,
		History:     NewHistory(cfg.UndoDepth),
		Input:       NewInputManager(window),
		Window:      window,
		Config:      cfg,
		OrbitCamera: camera,
		View3D:      NewViewport3D(&camera.Camera, window.Width, window.Height),
		View2D:      NewViewport2D(ViewTop, window.Width, window.Height),
		StatusText:  "Ready",
	}
	e.Tool = NewSelectTool(s, e.History, cfg)
	e.Tool.Activate()
	return e
}

// Update processes one frame of editor logic
func (e *Editor) Update(deltaTime float32) {
	e.Input.Update()

	e.View3D.Width = e.Window.Width
	e.View3D.Height = e.Window.Height
	e.View2D.Width = e.Window.Width
	e.View2D.Height = e.Window.Height
	e.OrbitCamera.UpdateAspectRatio(float32(e.Window.Width), float32(e.Window.Height))

	e.handleShortcuts()
	e.routeMouse()

	e.Input.EndFrame()
}

func (e *Editor) handleShortcuts() {
	// Undo: Ctrl+Z
	if e.Input.IsShortcut(core.KeyZ) && !e.Input.ShiftDown {
		if e.History.Undo() {
			e.Scene.NotifySelectionChanged()
			e.StatusText = "Undo"
		}
	}

	// Redo: Ctrl+Shift+Z
	if e.Input.IsShiftShortcut(core.KeyZ) {
		if e.History.Redo() {
			e.Scene.NotifySelectionChanged()
			e.StatusText = "Redo"
		}
	}

	// Confirm / cancel the drawn box
	if e.Input.IsKeyPressed(core.KeyEnter) {
		e.Tool.Confirm(e.Input.Modifiers())
		e.StatusText = fmt.Sprintf("Selected %d objects", len(e.Scene.Selection()))
	}
	if e.Input.IsKeyPressed(core.KeyEscape) {
		e.Tool.Cancel()
		e.StatusText = "Cancelled"
	}

	// Toggle between the 3D view and the 2D map view: Tab
	if e.Input.IsKeyPressed(core.KeyTab) {
		e.In2DView = !e.In2DView
		if e.In2DView {
			e.StatusText = "Top view"
		} else {
			e.StatusText = "3D view"
		}
	}
}

func (e *Editor) routeMouse() {
	mods := e.Input.Modifiers()
	mx := float32(e.Input.MouseX)
	my := float32(e.Input.MouseY)

	if e.In2DView {
		if e.Input.IsMousePressed(MouseLeft) {
			e.Tool.MouseDown2D(Viewport2DTop, e.View2D, mx, my, mods)
		}
		if e.Input.MouseDeltaX != 0 || e.Input.MouseDeltaY != 0 {
			e.Tool.MouseMove2D(Viewport2DTop, e.View2D, mx, my, mods)
		}
		if e.Input.IsMouseReleased(MouseLeft) {
			e.Tool.MouseUp2D(Viewport2DTop, e.View2D, mx, my, mods)
		}
		// Scroll zooms the map view.
		if e.Input.ScrollDelta != 0 {
			e.View2D.Zoom *= 1 + float32(e.Input.ScrollDelta)*0.1
			if e.View2D.Zoom < 0.01 {
				e.View2D.Zoom = 0.01
			}
		}
		return
	}

	if e.Input.IsMousePressed(MouseLeft) {
		e.Tool.MouseDown3D(e.View3D, mx, my, mods)
		if e.Scene.HasSelection() {
			e.StatusText = fmt.Sprintf("Selected %d objects", len(e.Scene.Selection()))
		}
	}
	if e.Input.IsMouseReleased(MouseLeft) {
		e.Tool.MouseUp3D(mods)
	}

	// The wheel cycles the pick stack while a pick is in progress;
	// otherwise it zooms the orbit camera.
	if e.Input.ScrollDelta != 0 {
		if e.Tool.IsCapturingWheel() {
			e.Tool.MouseWheel(float32(e.Input.ScrollDelta), mods)
		} else {
			e.OrbitCamera.Zoom(-float32(e.Input.ScrollDelta) * 1.5)
		}
	}

	// MMB orbit
	if e.Input.IsMouseDown(MouseMiddle) {
		dx := float32(e.Input.MouseDeltaX) * 0.01
		dy := float32(e.Input.MouseDeltaY) * 0.01
		e.OrbitCamera.Orbit(-dx, dy)
	}
}

// GetStats returns scene statistics for the status bar
func (e *Editor) GetStats() (objectCount, selectedCount int) {
	e.Scene.Root.Traverse(func(n *scene.Node) {
		if n.Class == scene.ClassBrush || n.Class == scene.ClassEntity {
			objectCount++
		}
	})
	return objectCount, len(e.Scene.Selection())
}
