package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// SkewStrategy shears the box along an axis from its edge handles. The
// opposite edge stays fixed; the grabbed edge follows the pointer.
type SkewStrategy struct {
	cfg core.EditorConfig
}

func NewSkewStrategy(cfg core.EditorConfig) *SkewStrategy {
	return &SkewStrategy{cfg: cfg}
}

func (s *SkewStrategy) Name() string { return "Skew" }

func (s *SkewStrategy) Handles(b scene.Box, vp *Viewport2D) []Handle {
	min, max := vp.PlaneBox(b)
	grid := handleGrid(min, max, handleOffset(s.cfg, vp))

	out := grid[:0]
	for _, h := range grid {
		if s.FilterHandle(h.Kind) {
			out = append(out, h)
		}
	}
	return out
}

func (s *SkewStrategy) FilterHandle(k HandleKind) bool {
	return k.isEdge() || k == HandleCenter
}

func (s *SkewStrategy) Matrix(k HandleKind, orig scene.Box, vp *Viewport2D, start, cur mgl32.Vec2) (mgl32.Mat4, bool) {
	if !k.isEdge() {
		return mgl32.Mat4{}, false
	}

	min, max := vp.PlaneBox(orig)
	delta := cur.Sub(start)

	shear := mgl32.Ident4()
	var pivot mgl32.Vec2

	switch {
	case k.vSign() != 0:
		// Horizontal edge: shear u by v about the opposite edge.
		height := max.Y() - min.Y()
		if height == 0 {
			return mgl32.Mat4{}, false
		}
		factor := delta.X() / height * k.vSign()
		shear.Set(0, 1, factor)
		pivot = mgl32.Vec2{0, min.Y()}
		if k.vSign() < 0 {
			pivot[1] = max.Y()
		}
	default:
		// Vertical edge: shear v by u about the opposite edge.
		width := max.X() - min.X()
		if width == 0 {
			return mgl32.Mat4{}, false
		}
		factor := delta.Y() / width * k.uSign()
		shear.Set(1, 0, factor)
		pivot = mgl32.Vec2{min.X(), 0}
		if k.uSign() < 0 {
			pivot[0] = max.X()
		}
	}

	m := mgl32.Translate3D(pivot.X(), pivot.Y(), 0).
		Mul4(shear).
		Mul4(mgl32.Translate3D(-pivot.X(), -pivot.Y(), 0))
	return m, true
}

func (s *SkewStrategy) CursorFor(k HandleKind) Cursor {
	if k == HandleCenter {
		return CursorMove
	}
	if k.vSign() != 0 {
		return CursorSkewH
	}
	return CursorSkewV
}

func (s *SkewStrategy) CircularHandles() bool { return false }
