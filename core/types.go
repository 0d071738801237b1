package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// LineVertex is the vertex format consumed by the feedback renderer.
type LineVertex struct {
	Position mgl32.Vec3
	Color    Color
}
