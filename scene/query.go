package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// RayHit is one pickable node crossed by a ray.
type RayHit struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// pickable reports whether a node takes part in spatial queries:
// visible leaf solids and entities, never containers or the world root.
func pickable(n *Node) bool {
	if !n.Visible || n.Class == ClassWorld {
		return false
	}
	return len(n.Children) == 0
}

// IntersectRay returns every pickable node whose box the ray crosses,
// with the entry point and its distance from the ray origin. The result
// is unordered; callers sort as needed.
func (s *Scene) IntersectRay(ray Ray) []RayHit {
	var hits []RayHit
	s.Root.Traverse(func(n *Node) {
		if !pickable(n) {
			return
		}
		if t, ok := rayBoxIntersect(ray, n.Box); ok {
			hits = append(hits, RayHit{
				Node:     n,
				Distance: t,
				Point:    ray.Origin.Add(ray.Direction.Mul(t)),
			})
		}
	})
	return hits
}

// IntersectBox returns every pickable node whose box overlaps b.
func (s *Scene) IntersectBox(b Box) []*Node {
	var out []*Node
	s.Root.Traverse(func(n *Node) {
		if pickable(n) && b.Intersects(n.Box) {
			out = append(out, n)
		}
	})
	return out
}

// ContainedInBox returns every pickable node whose box lies fully
// inside b.
func (s *Scene) ContainedInBox(b Box) []*Node {
	var out []*Node
	s.Root.Traverse(func(n *Node) {
		if pickable(n) && b.Contains(n.Box) {
			out = append(out, n)
		}
	})
	return out
}

// Intersect2DTestBox services screen-space tolerance tests: the caller
// builds a small box around a click point, expanded along the viewport's
// depth axis, and gets back the nodes it touches.
func (s *Scene) Intersect2DTestBox(b Box) []*Node {
	return s.IntersectBox(b)
}

// rayBoxIntersect is the slab test. It returns the distance to the
// entry point; a ray starting inside the box hits at distance 0.
func rayBoxIntersect(ray Ray, box Box) (float32, bool) {
	tmin := float32(0)
	tmax := float32(math32.MaxFloat32)

	for i := 0; i < 3; i++ {
		if math32.Abs(ray.Direction[i]) < 1e-8 {
			// Parallel to the slab: miss unless the origin is inside it.
			if ray.Origin[i] < box.Min[i] || ray.Origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / ray.Direction[i]
		t1 := (box.Min[i] - ray.Origin[i]) * inv
		t2 := (box.Max[i] - ray.Origin[i]) * inv
		tmin = math32.Max(tmin, math32.Min(t1, t2))
		tmax = math32.Min(tmax, math32.Max(t1, t2))
	}

	if tmax < tmin {
		return 0, false
	}
	return tmin, true
}
