package main

import (
	"fmt"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/editor"
	"map-editor/opengl"
	"map-editor/scene"
)

var (
	colorNode     = core.Color{R: 0.8, G: 0.8, B: 0.8, A: 1}
	colorSelected = core.ColorRed
	colorBox      = core.ColorYellow
	colorGrid     = core.Color{R: 0.25, G: 0.25, B: 0.3, A: 1}
)

func main() {
	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "window: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
		os.Exit(1)
	}
	defer renderer.Destroy()

	cfg := core.DefaultEditorConfig()
	if loaded, err := core.LoadEditorConfig("editor.yaml"); err == nil {
		cfg = loaded
	}

	s := buildDemoMap()
	ed := editor.NewEditor(window, s, cfg)

	last := time.Now()
	for !window.ShouldClose() {
		window.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		ed.Update(dt)
		drawFrame(window, renderer, ed, cfg)

		objects, selected := ed.GetStats()
		window.SetTitle(fmt.Sprintf("Map Editor — %s | %d objects, %d selected",
			ed.StatusText, objects, selected))

		window.SwapBuffers()
	}
}

// buildDemoMap assembles a few brushes and a grouped pair to exercise
// selection normalization.
func buildDemoMap() *scene.Scene {
	s := scene.NewScene()

	s.AddNode(scene.NewBrush("floor", mgl32.Vec3{-16, -16, -1}, mgl32.Vec3{16, 16, 0}))
	s.AddNode(scene.NewBrush("crate", mgl32.Vec3{-2, -2, 0}, mgl32.Vec3{2, 2, 4}))
	s.AddNode(scene.NewBrush("pillar", mgl32.Vec3{6, 6, 0}, mgl32.Vec3{8, 8, 10}))

	group := scene.NewNode("stairs", scene.ClassGroup)
	group.AddChild(scene.NewBrush("step1", mgl32.Vec3{-10, 2, 0}, mgl32.Vec3{-6, 6, 1}))
	group.AddChild(scene.NewBrush("step2", mgl32.Vec3{-10, 2, 1}, mgl32.Vec3{-7, 6, 2}))
	group.RecomputeBox()
	s.AddNode(group)

	return s
}

func drawFrame(window *core.Window, renderer *opengl.Renderer, ed *editor.Editor, cfg core.EditorConfig) {
	fbW, fbH := window.GetFramebufferSize()
	renderer.SetViewport(fbW, fbH)
	renderer.BeginFrame(core.Color{R: 0.1, G: 0.1, B: 0.12, A: 1})

	var viewProj mgl32.Mat4
	if ed.In2DView {
		vp := ed.View2D
		halfW := float32(vp.Width) / 2 / vp.Zoom
		halfH := float32(vp.Height) / 2 / vp.Zoom
		viewProj = mgl32.Ortho(
			vp.Center.X()-halfW, vp.Center.X()+halfW,
			vp.Center.Y()-halfH, vp.Center.Y()+halfH,
			-cfg.DepthExtent, cfg.DepthExtent)
	} else {
		viewProj = ed.View3D.Camera.GetViewProjectionMatrix()
	}

	var lines []core.LineVertex
	lines = appendGrid(lines)

	preview, previewActive := ed.Scene.Preview()
	ed.Scene.Root.Traverse(func(n *scene.Node) {
		if n.Class != scene.ClassBrush && n.Class != scene.ClassEntity {
			return
		}
		if !n.Visible || len(n.Children) > 0 {
			return
		}
		model := mgl32.Ident4()
		color := colorNode
		if n.Selected {
			color = colorSelected
			if previewActive {
				model = preview
			}
		}
		lines = opengl.BoxEdges(lines, n.Box, model, color)
	})

	if box, model, ok := ed.Tool.FeedbackBox(ed.View2D); ok {
		lines = opengl.BoxEdges(lines, clampDrawBox(box, cfg), model, colorBox)
	}

	renderer.DrawLines(lines, viewProj)

	if ed.In2DView {
		drawHandles(renderer, ed, viewProj)
	}
}

// clampDrawBox trims the depth-expanded draw box so its edges stay
// visible instead of spanning the whole depth extent.
func clampDrawBox(b scene.Box, cfg core.EditorConfig) scene.Box {
	limit := cfg.DepthExtent / 2
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Max(b.Min[i], -limit)
		b.Max[i] = math32.Min(b.Max[i], limit)
	}
	return b
}

// drawHandles renders each strategy handle as a filled white shape with
// a black outline on the 2D view plane.
func drawHandles(renderer *opengl.Renderer, ed *editor.Editor, viewProj mgl32.Mat4) {
	vp := ed.View2D
	half := vp.PixelsToWorld(ed.Config.HandleSizePx) / 2

	var fill []core.LineVertex
	var outline []core.LineVertex
	for _, h := range ed.Tool.FeedbackHandles(vp) {
		center := vp.PlaneToWorld(h.Pos, 0)
		if h.Circle {
			fill, outline = appendCircle(fill, outline, vp, center, half)
		} else {
			fill, outline = appendSquare(fill, outline, vp, center, half)
		}
	}

	renderer.DrawTriangles(fill, viewProj)
	renderer.DrawLines(outline, viewProj)
}

func appendSquare(fill, outline []core.LineVertex, vp *editor.Viewport2D, center mgl32.Vec3, half float32) ([]core.LineVertex, []core.LineVertex) {
	corners := [4]mgl32.Vec3{
		center.Add(vp.PlaneToWorld(mgl32.Vec2{-half, -half}, 0)),
		center.Add(vp.PlaneToWorld(mgl32.Vec2{half, -half}, 0)),
		center.Add(vp.PlaneToWorld(mgl32.Vec2{half, half}, 0)),
		center.Add(vp.PlaneToWorld(mgl32.Vec2{-half, half}, 0)),
	}
	fill = append(fill,
		core.LineVertex{Position: corners[0], Color: core.ColorWhite},
		core.LineVertex{Position: corners[1], Color: core.ColorWhite},
		core.LineVertex{Position: corners[2], Color: core.ColorWhite},
		core.LineVertex{Position: corners[0], Color: core.ColorWhite},
		core.LineVertex{Position: corners[2], Color: core.ColorWhite},
		core.LineVertex{Position: corners[3], Color: core.ColorWhite},
	)
	for i := 0; i < 4; i++ {
		outline = append(outline,
			core.LineVertex{Position: corners[i], Color: core.ColorBlack},
			core.LineVertex{Position: corners[(i+1)%4], Color: core.ColorBlack},
		)
	}
	return fill, outline
}

func appendCircle(fill, outline []core.LineVertex, vp *editor.Viewport2D, center mgl32.Vec3, radius float32) ([]core.LineVertex, []core.LineVertex) {
	const segments = 16
	var prev mgl32.Vec3
	for i := 0; i <= segments; i++ {
		angle := float32(i) / segments * 2 * math32.Pi
		p := center.Add(vp.PlaneToWorld(mgl32.Vec2{radius * math32.Cos(angle), radius * math32.Sin(angle)}, 0))
		if i > 0 {
			fill = append(fill,
				core.LineVertex{Position: center, Color: core.ColorWhite},
				core.LineVertex{Position: prev, Color: core.ColorWhite},
				core.LineVertex{Position: p, Color: core.ColorWhite},
			)
			outline = append(outline,
				core.LineVertex{Position: prev, Color: core.ColorBlack},
				core.LineVertex{Position: p, Color: core.ColorBlack},
			)
		}
		prev = p
	}
	return fill, outline
}

// appendGrid draws the ground-plane reference grid.
func appendGrid(lines []core.LineVertex) []core.LineVertex {
	const extent = 32
	const step = 4
	for i := -extent; i <= extent; i += step {
		f := float32(i)
		lines = append(lines,
			core.LineVertex{Position: mgl32.Vec3{f, -extent, 0}, Color: colorGrid},
			core.LineVertex{Position: mgl32.Vec3{f, extent, 0}, Color: colorGrid},
			core.LineVertex{Position: mgl32.Vec3{-extent, f, 0}, Color: colorGrid},
			core.LineVertex{Position: mgl32.Vec3{extent, f, 0}, Color: colorGrid},
		)
	}
	return lines
}
