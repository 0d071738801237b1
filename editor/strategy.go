package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// HandleKind names a position in the 3x3 manipulation grid around a
// drawn box, in view-plane terms (Top = +v, Right = +u).
type HandleKind int

const (
	HandleBottomLeft HandleKind = iota
	HandleBottom
	HandleBottomRight
	HandleLeft
	HandleCenter
	HandleRight
	HandleTopLeft
	HandleTop
	HandleTopRight
)

// left/right/top/bottom components of a handle kind.
func (k HandleKind) uSign() float32 {
	switch k {
	case HandleBottomLeft, HandleLeft, HandleTopLeft:
		return -1
	case HandleBottomRight, HandleRight, HandleTopRight:
		return 1
	}
	return 0
}

func (k HandleKind) vSign() float32 {
	switch k {
	case HandleBottomLeft, HandleBottom, HandleBottomRight:
		return -1
	case HandleTopLeft, HandleTop, HandleTopRight:
		return 1
	}
	return 0
}

func (k HandleKind) isCorner() bool {
	return k.uSign() != 0 && k.vSign() != 0
}

func (k HandleKind) isEdge() bool {
	return (k.uSign() == 0) != (k.vSign() == 0)
}

// Handle is a positioned hit region in view-plane coordinates.
type Handle struct {
	Kind HandleKind
	Pos  mgl32.Vec2
}

// Cursor is a per-handle pointer hint for the hosting toolkit.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorSizeNS
	CursorSizeEW
	CursorSizeNESW
	CursorSizeNWSE
	CursorRotate
	CursorSkewH
	CursorSkewV
)

// TransformStrategy is a pluggable manipulation mode. Strategies compute
// view-space transform matrices from pointer state; the tool carries
// them back to world space through the viewport basis.
type TransformStrategy interface {
	// Name is the human-readable operation name used in history records.
	Name() string

	// Handles returns the ordered handle layout for a box in a viewport.
	Handles(b scene.Box, vp *Viewport2D) []Handle

	// FilterHandle reports whether a handle kind is relevant right now.
	FilterHandle(k HandleKind) bool

	// Matrix computes the view-space transform for a drag of the given
	// handle from start to cur, both in view-plane coordinates. The
	// second return is false when no transform applies this frame.
	Matrix(k HandleKind, orig scene.Box, vp *Viewport2D, start, cur mgl32.Vec2) (mgl32.Mat4, bool)

	// CursorFor hints the pointer shape while hovering a handle.
	CursorFor(k HandleKind) Cursor

	// CircularHandles selects the rendered handle shape.
	CircularHandles() bool
}

// handleGrid lays out the 3x3 grid for a flattened box. Corner and edge
// handles sit offset world units outside the box; the center handle sits
// on the box center.
func handleGrid(min, max mgl32.Vec2, offset float32) []Handle {
	mid := min.Add(max).Mul(0.5)
	u := [3]float32{min.X() - offset, mid.X(), max.X() + offset}
	v := [3]float32{min.Y() - offset, mid.Y(), max.Y() + offset}

	handles := make([]Handle, 0, 9)
	for k := HandleBottomLeft; k <= HandleTopRight; k++ {
		pos := mgl32.Vec2{u[int(k.uSign())+1], v[int(k.vSign())+1]}
		if k == HandleCenter {
			pos = mid
		}
		handles = append(handles, Handle{Kind: k, Pos: pos})
	}
	return handles
}

func handleOffset(cfg core.EditorConfig, vp *Viewport2D) float32 {
	return vp.PixelsToWorld(cfg.HandleOffsetPx)
}
