package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective view camera used by the 3D viewport.
type Camera struct {
	Position    mgl32.Vec3
	Target      mgl32.Vec3
	Up          mgl32.Vec3
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 0, 5},
		Up:          mgl32.Vec3{0, 0, 1},
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewProjectionMatrix() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

func (c *Camera) GetForward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// OrbitCamera orbits a target point at a fixed distance, the way the
// demo's 3D viewport is driven.
type OrbitCamera struct {
	Camera
	Distance float32
	Yaw      float32
	Pitch    float32
}

func NewOrbitCamera(target mgl32.Vec3, distance, fov, aspect float32) *OrbitCamera {
	oc := &OrbitCamera{
		Camera:   *NewCamera(fov, aspect, 0.1, 10000),
		Distance: distance,
		Yaw:      math32.Pi / 4,
		Pitch:    math32.Pi / 6,
	}
	oc.Target = target
	oc.UpdatePosition()
	return oc
}

func (oc *OrbitCamera) Orbit(dYaw, dPitch float32) {
	oc.Yaw += dYaw
	oc.Pitch += dPitch

	limit := math32.Pi/2 - 0.01
	if oc.Pitch > limit {
		oc.Pitch = limit
	}
	if oc.Pitch < -limit {
		oc.Pitch = -limit
	}
	oc.UpdatePosition()
}

func (oc *OrbitCamera) Zoom(delta float32) {
	oc.Distance += delta
	if oc.Distance < 0.5 {
		oc.Distance = 0.5
	}
	oc.UpdatePosition()
}

// UpdatePosition places the camera on its orbit sphere around Target.
func (oc *OrbitCamera) UpdatePosition() {
	cp := math32.Cos(oc.Pitch)
	oc.Position = oc.Target.Add(mgl32.Vec3{
		oc.Distance * cp * math32.Cos(oc.Yaw),
		oc.Distance * cp * math32.Sin(oc.Yaw),
		oc.Distance * math32.Sin(oc.Pitch),
	})
}
