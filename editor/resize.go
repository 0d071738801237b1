package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// ResizeStrategy scales the box from a corner or edge handle and moves
// it from the center handle. It also services center-handle drags for
// every other strategy: moving is a universal operation regardless of
// the active manipulation mode.
type ResizeStrategy struct {
	cfg core.EditorConfig
}

func NewResizeStrategy(cfg core.EditorConfig) *ResizeStrategy {
	return &ResizeStrategy{cfg: cfg}
}

func (r *ResizeStrategy) Name() string { return "Resize" }

func (r *ResizeStrategy) Handles(b scene.Box, vp *Viewport2D) []Handle {
	min, max := vp.PlaneBox(b)
	return handleGrid(min, max, handleOffset(r.cfg, vp))
}

func (r *ResizeStrategy) FilterHandle(k HandleKind) bool { return true }

func (r *ResizeStrategy) Matrix(k HandleKind, orig scene.Box, vp *Viewport2D, start, cur mgl32.Vec2) (mgl32.Mat4, bool) {
	delta := cur.Sub(start)
	if k == HandleCenter {
		move := delta
		return mgl32.Translate3D(move.X(), move.Y(), 0), true
	}

	min, max := vp.PlaneBox(orig)

	// Move the grabbed sides; the opposite sides stay anchored.
	newMin, newMax := min, max
	switch k.uSign() {
	case -1:
		newMin[0] += delta.X()
	case 1:
		newMax[0] += delta.X()
	}
	switch k.vSign() {
	case -1:
		newMin[1] += delta.Y()
	case 1:
		newMax[1] += delta.Y()
	}

	scale := mgl32.Vec2{1, 1}
	if w := max.X() - min.X(); w != 0 {
		scale[0] = (newMax.X() - newMin.X()) / w
	}
	if h := max.Y() - min.Y(); h != 0 {
		scale[1] = (newMax.Y() - newMin.Y()) / h
	}

	// Anchor is the corner opposite the grabbed sides.
	anchor := mgl32.Vec2{min.X(), min.Y()}
	target := mgl32.Vec2{newMin.X(), newMin.Y()}
	if k.uSign() < 0 {
		anchor[0], target[0] = max.X(), newMax.X()
	}
	if k.vSign() < 0 {
		anchor[1], target[1] = max.Y(), newMax.Y()
	}

	m := mgl32.Translate3D(target.X(), target.Y(), 0).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), 1)).
		Mul4(mgl32.Translate3D(-anchor.X(), -anchor.Y(), 0))
	return m, true
}

func (r *ResizeStrategy) CursorFor(k HandleKind) Cursor {
	switch {
	case k == HandleCenter:
		return CursorMove
	case k == HandleTopLeft || k == HandleBottomRight:
		return CursorSizeNWSE
	case k == HandleTopRight || k == HandleBottomLeft:
		return CursorSizeNESW
	case k.uSign() != 0:
		return CursorSizeEW
	default:
		return CursorSizeNS
	}
}

func (r *ResizeStrategy) CircularHandles() bool { return false }
