package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "Map Editor",
		Resizable: true,
		VSync:     true,
	}
}

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeySpace        = int(glfw.KeySpace)
	Key0            = int(glfw.Key0)
	Key1            = int(glfw.Key1)
	Key2            = int(glfw.Key2)
	Key3            = int(glfw.Key3)
	KeyA            = int(glfw.KeyA)
	KeyD            = int(glfw.KeyD)
	KeyG            = int(glfw.KeyG)
	KeyQ            = int(glfw.KeyQ)
	KeyR            = int(glfw.KeyR)
	KeyS            = int(glfw.KeyS)
	KeyW            = int(glfw.KeyW)
	KeyX            = int(glfw.KeyX)
	KeyY            = int(glfw.KeyY)
	KeyZ            = int(glfw.KeyZ)
	KeyEscape       = int(glfw.KeyEscape)
	KeyEnter        = int(glfw.KeyEnter)
	KeyTab          = int(glfw.KeyTab)
	KeyDelete       = int(glfw.KeyDelete)
	KeyLeftShift    = int(glfw.KeyLeftShift)
	KeyRightShift   = int(glfw.KeyRightShift)
	KeyLeftControl  = int(glfw.KeyLeftControl)
	KeyRightControl = int(glfw.KeyRightControl)
	KeyLeftAlt      = int(glfw.KeyLeftAlt)
	KeyRightAlt     = int(glfw.KeyRightAlt)
)
