package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"map-editor/core"
	"map-editor/scene"
)

// Renderer is the wireframe feedback backend: node boxes, the selection
// box, and transform handles, all drawn from dynamic vertex batches.
type Renderer struct {
	program uint32
	mvpLoc  int32
	vao     uint32
	vbo     uint32
	vboSize int
}

// vertex shader: MVP transform + per-vertex colour passthrough
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec4 inColor;

uniform mat4 mvp;

out vec4 fragColor;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragColor   = inColor;
}
` + "\x00"

const fragSrc = `
#version 410 core
in vec4 fragColor;

out vec4 outColor;

void main() {
    outColor = fragColor;
}
` + "\x00"

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	r := &Renderer{
		program: prog,
		mvpLoc:  gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(unsafe.Sizeof(core.LineVertex{}))
	var v core.LineVertex
	posOff := int(unsafe.Offsetof(v.Position))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	gl.BindVertexArray(0)
	return r, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame clears the framebuffer with the given colour.
func (r *Renderer) BeginFrame(sky core.Color) {
	gl.ClearColor(sky.R, sky.G, sky.B, sky.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines issues one batch of line-list vertices under the given MVP.
func (r *Renderer) DrawLines(verts []core.LineVertex, mvp mgl32.Mat4) {
	r.draw(verts, mvp, gl.LINES)
}

// DrawTriangles issues one batch of triangle-list vertices (filled
// handle shapes) under the given MVP.
func (r *Renderer) DrawTriangles(verts []core.LineVertex, mvp mgl32.Mat4) {
	r.draw(verts, mvp, gl.TRIANGLES)
}

func (r *Renderer) draw(verts []core.LineVertex, mvp mgl32.Mat4, mode uint32) {
	if len(verts) == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	size := len(verts) * int(unsafe.Sizeof(core.LineVertex{}))
	if size > r.vboSize {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(verts), gl.DYNAMIC_DRAW)
		r.vboSize = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	}

	gl.DrawArrays(mode, 0, int32(len(verts)))
	gl.BindVertexArray(0)
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteProgram(r.program)
}

// ── batch geometry helpers ────────────────────────────────────────────────────

// boxEdgePairs indexes the 12 edges of scene.Box.Corners().
var boxEdgePairs = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {3, 7}, {2, 6},
}

// BoxEdges appends the 12 wireframe edges of a box, each corner run
// through model first.
func BoxEdges(out []core.LineVertex, b scene.Box, model mgl32.Mat4, c core.Color) []core.LineVertex {
	corners := b.Corners()
	var pts [8]mgl32.Vec3
	for i, p := range corners {
		pts[i] = model.Mul4x1(p.Vec4(1)).Vec3()
	}
	for _, e := range boxEdgePairs {
		out = append(out,
			core.LineVertex{Position: pts[e[0]], Color: c},
			core.LineVertex{Position: pts[e[1]], Color: c},
		)
	}
	return out
}

// ── shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
