package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// RotateStrategy spins the box about its center in the view plane. Only
// corner handles rotate; the center handle moves (routed to resize).
type RotateStrategy struct {
	cfg core.EditorConfig
}

func NewRotateStrategy(cfg core.EditorConfig) *RotateStrategy {
	return &RotateStrategy{cfg: cfg}
}

func (r *RotateStrategy) Name() string { return "Rotate" }

func (r *RotateStrategy) Handles(b scene.Box, vp *Viewport2D) []Handle {
	min, max := vp.PlaneBox(b)
	grid := handleGrid(min, max, handleOffset(r.cfg, vp))

	out := grid[:0]
	for _, h := range grid {
		if r.FilterHandle(h.Kind) {
			out = append(out, h)
		}
	}
	return out
}

func (r *RotateStrategy) FilterHandle(k HandleKind) bool {
	return k.isCorner() || k == HandleCenter
}

func (r *RotateStrategy) Matrix(k HandleKind, orig scene.Box, vp *Viewport2D, start, cur mgl32.Vec2) (mgl32.Mat4, bool) {
	if !k.isCorner() {
		return mgl32.Mat4{}, false
	}

	min, max := vp.PlaneBox(orig)
	center := min.Add(max).Mul(0.5)

	from := start.Sub(center)
	to := cur.Sub(center)
	if from.Len() == 0 || to.Len() == 0 {
		return mgl32.Mat4{}, false
	}

	angle := math32.Atan2(to.Y(), to.X()) - math32.Atan2(from.Y(), from.X())

	m := mgl32.Translate3D(center.X(), center.Y(), 0).
		Mul4(mgl32.HomogRotate3DZ(angle)).
		Mul4(mgl32.Translate3D(-center.X(), -center.Y(), 0))
	return m, true
}

func (r *RotateStrategy) CursorFor(k HandleKind) Cursor {
	if k == HandleCenter {
		return CursorMove
	}
	return CursorRotate
}

func (r *RotateStrategy) CircularHandles() bool { return true }
