package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned 3D region defined by two opposite corners.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoxFromCorners builds a box from two arbitrary opposite corners,
// normalizing so Min <= Max on every axis.
func BoxFromCorners(a, b mgl32.Vec3) Box {
	return Box{
		Min: mgl32.Vec3{math32.Min(a.X(), b.X()), math32.Min(a.Y(), b.Y()), math32.Min(a.Z(), b.Z())},
		Max: mgl32.Vec3{math32.Max(a.X(), b.X()), math32.Max(a.Y(), b.Y()), math32.Max(a.Z(), b.Z())},
	}
}

// Union returns the smallest box containing both boxes: the
// component-wise min of the starts and max of the ends.
func (b Box) Union(o Box) Box {
	return Box{
		Min: mgl32.Vec3{math32.Min(b.Min.X(), o.Min.X()), math32.Min(b.Min.Y(), o.Min.Y()), math32.Min(b.Min.Z(), o.Min.Z())},
		Max: mgl32.Vec3{math32.Max(b.Max.X(), o.Max.X()), math32.Max(b.Max.Y(), o.Max.Y()), math32.Max(b.Max.Z(), o.Max.Z())},
	}
}

func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// IsValid reports whether the box is non-degenerate on at least one axis.
func (b Box) IsValid() bool {
	return b.Max.X() > b.Min.X() || b.Max.Y() > b.Min.Y() || b.Max.Z() > b.Min.Z()
}

// Contains reports whether o lies fully inside b.
func (b Box) Contains(o Box) bool {
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] || o.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether the two boxes overlap or touch.
func (b Box) Intersects(o Box) bool {
	for i := 0; i < 3; i++ {
		if o.Max[i] < b.Min[i] || o.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b Box) ContainsPoint(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Expanded grows the box by d on both sides of every axis.
func (b Box) Expanded(d mgl32.Vec3) Box {
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Corners returns the eight corner points of the box.
func (b Box) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		out[i] = mgl32.Vec3{
			pick(i&1 == 0, b.Min.X(), b.Max.X()),
			pick(i&2 == 0, b.Min.Y(), b.Max.Y()),
			pick(i&4 == 0, b.Min.Z(), b.Max.Z()),
		}
	}
	return out
}

// Transformed applies m to every corner and re-wraps the result in an
// axis-aligned box.
func (b Box) Transformed(m mgl32.Mat4) Box {
	corners := b.Corners()
	p := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	out := Box{Min: p, Max: p}
	for _, c := range corners[1:] {
		p = m.Mul4x1(c.Vec4(1)).Vec3()
		out = out.Union(Box{Min: p, Max: p})
	}
	return out
}

func pick(cond bool, a, t float32) float32 {
	if cond {
		return a
	}
	return t
}
