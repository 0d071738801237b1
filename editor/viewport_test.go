package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"map-editor/scene"
)

func TestScreenPlaneRoundTrip(t *testing.T) {
	vp := NewViewport2D(ViewTop, 800, 600)
	vp.Zoom = 2
	vp.Center = mgl32.Vec2{10, -5}

	// The viewport middle maps to the center point.
	p := vp.ScreenToPlane(400, 300)
	if p != vp.Center {
		t.Errorf("ScreenToPlane: expected center %v, got %v", vp.Center, p)
	}

	// Screen Y grows downward, plane v upward.
	up := vp.ScreenToPlane(400, 200)
	if up.Y() <= p.Y() {
		t.Errorf("ScreenToPlane: expected higher v for smaller screen y, got %v", up.Y())
	}

	back := vp.PlaneToScreen(up)
	if mgl32.Abs(back.X()-400) > 1e-4 || mgl32.Abs(back.Y()-200) > 1e-4 {
		t.Errorf("PlaneToScreen: expected (400,200), got %v", back)
	}
}

func TestPixelsToWorld(t *testing.T) {
	vp := NewViewport2D(ViewTop, 800, 600)
	vp.Zoom = 4
	if got := vp.PixelsToWorld(8); got != 2 {
		t.Errorf("PixelsToWorld: expected 2, got %v", got)
	}
}

func TestPlaneToWorldPerView(t *testing.T) {
	p := mgl32.Vec2{3, 7}

	top := NewViewport2D(ViewTop, 100, 100)
	if got := top.PlaneToWorld(p, 9); got != (mgl32.Vec3{3, 7, 9}) {
		t.Errorf("PlaneToWorld top: expected (3,7,9), got %v", got)
	}

	front := NewViewport2D(ViewFront, 100, 100)
	if got := front.PlaneToWorld(p, 9); got != (mgl32.Vec3{3, 9, 7}) {
		t.Errorf("PlaneToWorld front: expected (3,9,7), got %v", got)
	}

	side := NewViewport2D(ViewSide, 100, 100)
	if got := side.PlaneToWorld(p, 9); got != (mgl32.Vec3{9, 3, 7}) {
		t.Errorf("PlaneToWorld side: expected (9,3,7), got %v", got)
	}
}

func TestFlattenInvertsPlaneToWorld(t *testing.T) {
	for _, view := range []ViewKind{ViewTop, ViewFront, ViewSide} {
		vp := NewViewport2D(view, 100, 100)
		p := mgl32.Vec2{-2, 5}
		if got := vp.Flatten(vp.PlaneToWorld(p, 42)); got != p {
			t.Errorf("Flatten: view %v expected %v, got %v", view, p, got)
		}
	}
}

func TestExpand(t *testing.T) {
	front := NewViewport2D(ViewFront, 100, 100)
	if got := front.Expand(50); got != (mgl32.Vec3{0, 50, 0}) {
		t.Errorf("Expand: expected depth on Y for front view, got %v", got)
	}
}

func TestBasisCarriesViewTransforms(t *testing.T) {
	// A translation along view u must become a translation along the
	// view's world u axis after the basis round trip.
	viewMove := mgl32.Translate3D(5, 0, 0)

	front := NewViewport2D(ViewFront, 100, 100)
	world := front.Basis().Inv().Mul4(viewMove).Mul4(front.Basis())
	p := world.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if p != (mgl32.Vec3{5, 0, 0}) {
		t.Errorf("Basis front: expected world move (5,0,0), got %v", p)
	}

	side := NewViewport2D(ViewSide, 100, 100)
	world = side.Basis().Inv().Mul4(viewMove).Mul4(side.Basis())
	p = world.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if p != (mgl32.Vec3{0, 5, 0}) {
		t.Errorf("Basis side: expected world move (0,5,0), got %v", p)
	}

	// Top view u is world X, so the basis is the identity permutation.
	top := NewViewport2D(ViewTop, 100, 100)
	if top.Basis() != mgl32.Ident4() {
		t.Errorf("Basis top: expected identity, got %v", top.Basis())
	}
}

func TestPickRayAimsAtTarget(t *testing.T) {
	cam := scene.NewCamera(1.0472, 4.0/3.0, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, -10, 0}
	cam.Target = mgl32.Vec3{0, 0, 0}

	vp := NewViewport3D(cam, 800, 600)

	// The viewport center ray goes straight at the target.
	ray := vp.PickRay(400, 300)
	if ray.Origin != cam.Position {
		t.Errorf("PickRay: expected origin at camera, got %v", ray.Origin)
	}
	want := cam.GetForward()
	if ray.Direction.Sub(want).Len() > 1e-3 {
		t.Errorf("PickRay: expected direction %v, got %v", want, ray.Direction)
	}

	// A ray off to the right deviates in +X.
	right := vp.PickRay(700, 300)
	if right.Direction.X() <= ray.Direction.X() {
		t.Errorf("PickRay: expected rightward deviation, got %v", right.Direction)
	}
}
