package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/scene"
)

// ViewKind names the projection plane of a 2D viewport. The editor is
// Z-up: Top looks down the Z axis, Front along Y, Side along X.
type ViewKind int

const (
	ViewTop ViewKind = iota
	ViewFront
	ViewSide
)

// axes returns the world-axis indices (u, v, depth) of the view plane.
func (k ViewKind) axes() (int, int, int) {
	switch k {
	case ViewFront:
		return 0, 2, 1
	case ViewSide:
		return 1, 2, 0
	default: // ViewTop
		return 0, 1, 2
	}
}

// Viewport2D is an orthographic map view. Zoom is in pixels per world
// unit; Center is the world-plane point at the middle of the viewport.
type Viewport2D struct {
	View   ViewKind
	Zoom   float32
	Center mgl32.Vec2
	Width  int
	Height int
}

func NewViewport2D(view ViewKind, width, height int) *Viewport2D {
	return &Viewport2D{View: view, Zoom: 1, Width: width, Height: height}
}

// PixelsToWorld converts a screen-pixel distance to world units.
func (v *Viewport2D) PixelsToWorld(px float32) float32 {
	return px / v.Zoom
}

// ScreenToPlane maps a screen position to (u, v) world-plane
// coordinates. Screen Y grows downward; plane v grows upward.
func (v *Viewport2D) ScreenToPlane(sx, sy float32) mgl32.Vec2 {
	return mgl32.Vec2{
		v.Center.X() + (sx-float32(v.Width)/2)/v.Zoom,
		v.Center.Y() - (sy-float32(v.Height)/2)/v.Zoom,
	}
}

// PlaneToScreen is the inverse of ScreenToPlane.
func (v *Viewport2D) PlaneToScreen(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X()-v.Center.X())*v.Zoom + float32(v.Width)/2,
		(v.Center.Y()-p.Y())*v.Zoom + float32(v.Height)/2,
	}
}

// PlaneToWorld lifts a plane point into world space with the given
// depth-axis coordinate.
func (v *Viewport2D) PlaneToWorld(p mgl32.Vec2, depth float32) mgl32.Vec3 {
	u, vv, d := v.View.axes()
	var out mgl32.Vec3
	out[u] = p.X()
	out[vv] = p.Y()
	out[d] = depth
	return out
}

// Flatten projects a world point onto the viewport plane, dropping the
// depth component.
func (v *Viewport2D) Flatten(p mgl32.Vec3) mgl32.Vec2 {
	u, vv, _ := v.View.axes()
	return mgl32.Vec2{p[u], p[vv]}
}

// Expand broadcasts a scalar into the viewport's depth axis.
func (v *Viewport2D) Expand(d float32) mgl32.Vec3 {
	_, _, depth := v.View.axes()
	var out mgl32.Vec3
	out[depth] = d
	return out
}

// Basis returns the view-direction basis: the permutation matrix taking
// world coordinates to (u, v, depth) view coordinates. Transforms the
// strategies express in view space are carried back to world space as
// Basis⁻¹ · M · Basis.
func (v *Viewport2D) Basis() mgl32.Mat4 {
	u, vv, d := v.View.axes()
	var m mgl32.Mat4
	m.Set(0, u, 1)
	m.Set(1, vv, 1)
	m.Set(2, d, 1)
	m.Set(3, 3, 1)
	return m
}

// PlaneBox flattens a world box into the view plane, keeping min/max
// ordering on both plane axes.
func (v *Viewport2D) PlaneBox(b scene.Box) (min, max mgl32.Vec2) {
	return v.Flatten(b.Min), v.Flatten(b.Max)
}

// Viewport3D is a perspective view used for ray picking.
type Viewport3D struct {
	Camera *scene.Camera
	Width  int
	Height int
}

func NewViewport3D(camera *scene.Camera, width, height int) *Viewport3D {
	return &Viewport3D{Camera: camera, Width: width, Height: height}
}

// PickRay casts a ray from the cursor through the viewport frustum.
func (v *Viewport3D) PickRay(mouseX, mouseY float32) scene.Ray {
	// Normalized device coordinates (-1..1), Y flipped.
	ndcX := (2.0*mouseX)/float32(v.Width) - 1.0
	ndcY := 1.0 - (2.0*mouseY)/float32(v.Height)

	invProj := v.Camera.GetProjectionMatrix().Inv()
	invView := v.Camera.GetViewMatrix().Inv()

	viewNear := invProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	viewNear = viewNear.Mul(1 / viewNear.W())

	worldNear := invView.Mul4x1(mgl32.Vec4{viewNear.X(), viewNear.Y(), viewNear.Z(), 1})

	dir := worldNear.Vec3().Sub(v.Camera.Position).Normalize()
	return scene.Ray{Origin: v.Camera.Position, Direction: dir}
}
