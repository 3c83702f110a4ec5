package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/ck"
)

// floatsPerVertex is the vec4 layout shared by all programs: xy position, zw texcoord.
const floatsPerVertex = 4

// drawState is the per-context vertex array, buffer and canvas framebuffer.
type drawState struct {
	vao, vbo uint32
	fbo      uint32
}

// uniforms caches the locations of one program. Missing uniforms are -1.
type uniforms struct {
	projection int32
	sampler    int32
	textColor  int32
	tintColor  int32
	intensity  int32
	lineColor  int32
	erase      int32
}

func (b *Backend) state() *drawState {
	win := glfw.GetCurrentContext()
	if s, ok := b.states[win]; ok {
		return s
	}

	s := &drawState{}
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.VertexAttribPointerWithOffset(0, floatsPerVertex, gl.FLOAT, false, floatsPerVertex*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenFramebuffers(1, &s.fbo)
	b.states[win] = s
	return s
}

// releaseState deletes the draw state of win. win's context must be current.
func (b *Backend) releaseState(win *glfw.Window) {
	s, ok := b.states[win]
	if !ok {
		return
	}
	gl.DeleteFramebuffers(1, &s.fbo)
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteVertexArrays(1, &s.vao)
	delete(b.states, win)
}

func (b *Backend) uniformsOf(program uint32) *uniforms {
	if u, ok := b.uniforms[program]; ok {
		return u
	}
	loc := func(name string) int32 {
		return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	u := &uniforms{
		projection: loc("projection"),
		textColor:  loc("textColor"),
		tintColor:  loc("tintColor"),
		intensity:  loc("intensity"),
		lineColor:  loc("lineColor"),
		erase:      loc("erase"),
	}
	u.sampler = loc("glyph")
	if u.sampler < 0 {
		u.sampler = loc("image")
	}
	b.uniforms[program] = u
	return u
}

// use binds program with an orthographic projection over width x height pixels,
// origin at the bottom-left.
func (b *Backend) use(program uint32, width, height int) *uniforms {
	u := b.uniformsOf(program)
	gl.UseProgram(program)
	proj := orthoMatrix(0, float32(width), 0, float32(height), -1, 1)
	gl.UniformMatrix4fv(u.projection, 1, false, &proj[0])
	if u.sampler >= 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.Uniform1i(u.sampler, 0)
	}
	return u
}

// upload binds the context's vertex array and fills its buffer.
func (b *Backend) upload(verts []float32) {
	s := b.state()
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
}

func (b *Backend) unbind() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func framebufferSize() (int, int) {
	return glfw.GetCurrentContext().GetFramebufferSize()
}

// quad returns two triangles covering (x, y, w, h). flipV selects textures
// stored top row first.
func quad(x, y, w, h float32, flipV bool) []float32 {
	top, bottom := float32(1), float32(0)
	if flipV {
		top, bottom = 0, 1
	}
	return []float32{
		x, y + h, 0, top,
		x + w, y, 1, bottom,
		x, y, 0, bottom,

		x, y + h, 0, top,
		x + w, y + h, 1, top,
		x + w, y, 1, bottom,
	}
}

// Clear fills the color buffer and resets the stencil buffer.
func (b *Backend) Clear(c ck.RGBA) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// Viewport sets the GL viewport of the current context.
func (b *Backend) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// BeginStencil writes p's rectangle into the stencil buffer and restricts
// later draws to it.
func (b *Backend) BeginStencil(p ck.TextureDraw) {
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilMask(0xFF)
	gl.Clear(gl.STENCIL_BUFFER_BIT)

	gl.ColorMask(false, false, false, false)
	gl.DepthMask(false)
	gl.StencilFunc(gl.ALWAYS, 1, 0xFF)
	gl.StencilOp(gl.REPLACE, gl.REPLACE, gl.REPLACE)

	b.DrawTexture(p)

	gl.ColorMask(true, true, true, true)
	gl.DepthMask(true)
	gl.StencilFunc(gl.EQUAL, 1, 0xFF)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.KEEP)
}

// EndStencil disables the stencil test.
func (b *Backend) EndStencil() {
	gl.Disable(gl.STENCIL_TEST)
}

// DrawTexture composites p.Texture over p's rectangle, mixed towards p.Tint
// by p.Intensity.
func (b *Backend) DrawTexture(p ck.TextureDraw) {
	w, h := framebufferSize()
	u := b.use(p.Program, w, h)
	gl.Uniform3f(u.tintColor, p.Tint[0], p.Tint[1], p.Tint[2])
	gl.Uniform1f(u.intensity, p.Intensity)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindTexture(gl.TEXTURE_2D, p.Texture)
	b.upload(quad(p.X, p.Y, float32(p.Width), float32(p.Height), false))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	b.unbind()
}

// DrawGlyphs draws every quad of p with its glyph texture.
func (b *Backend) DrawGlyphs(p ck.GlyphDraw) {
	if len(p.Quads) == 0 {
		return
	}
	w, h := framebufferSize()
	u := b.use(p.Program, w, h)
	gl.Uniform3f(u.textColor, p.Color[0], p.Color[1], p.Color[2])

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	verts := make([]float32, 0, len(p.Quads)*6*floatsPerVertex)
	for _, q := range p.Quads {
		verts = append(verts, quad(q.X, q.Y, q.W, q.H, true)...)
	}
	b.upload(verts)
	for i, q := range p.Quads {
		gl.BindTexture(gl.TEXTURE_2D, q.Texture)
		gl.DrawArrays(gl.TRIANGLES, int32(i*6), 6)
	}
	b.unbind()
}

// NewCanvasTarget allocates a transparent RGBA bitmap of width x height.
func (b *Backend) NewCanvasTarget(width, height int) (ck.CanvasTarget, error) {
	if width <= 0 || height <= 0 {
		return ck.CanvasTarget{}, fmt.Errorf("canvas target %dx%d: dimensions must be positive", width, height)
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	setTextureParams()
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t := ck.CanvasTarget{Bitmap: tex, Width: width, Height: height}
	s := b.state()
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status == gl.FRAMEBUFFER_COMPLETE {
		var last [4]float32
		gl.GetFloatv(gl.COLOR_CLEAR_VALUE, &last[0])
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.ClearColor(last[0], last[1], last[2], last[3])
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteTextures(1, &tex)
		return ck.CanvasTarget{}, fmt.Errorf("canvas framebuffer incomplete: 0x%x", status)
	}
	return t, nil
}

// DeleteCanvasTarget frees the canvas bitmap.
func (b *Backend) DeleteCanvasTarget(t ck.CanvasTarget) {
	if t.Bitmap != 0 {
		gl.DeleteTextures(1, &t.Bitmap)
	}
}

// BeginCanvas attaches t to the context's framebuffer and sets the viewport to it.
func (b *Backend) BeginCanvas(t ck.CanvasTarget) {
	gl.GetIntegerv(gl.VIEWPORT, &b.savedViewport[0])
	b.savedStencil = gl.IsEnabled(gl.STENCIL_TEST)
	gl.Disable(gl.STENCIL_TEST)

	s := b.state()
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.Bitmap, 0)
	gl.Viewport(0, 0, int32(t.Width), int32(t.Height))
}

// EndCanvas restores the default framebuffer, viewport and stencil test.
func (b *Backend) EndCanvas() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	v := b.savedViewport
	gl.Viewport(v[0], v[1], v[2], v[3])
	if b.savedStencil {
		gl.Enable(gl.STENCIL_TEST)
	}
}

// DrawStroke rasterizes stroke triangles in canvas pixels. Erasing strokes
// zero the destination instead of blending.
func (b *Backend) DrawStroke(p ck.StrokeDraw) {
	if len(p.Vertices) == 0 {
		return
	}
	u := b.use(p.Program, p.Width, p.Height)
	gl.Uniform3f(u.lineColor, p.Color[0], p.Color[1], p.Color[2])
	erase := int32(0)
	if p.Erase {
		erase = 1
	}
	gl.Uniform1i(u.erase, erase)

	gl.Enable(gl.BLEND)
	if p.Erase {
		gl.BlendFunc(gl.ZERO, gl.ZERO)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	verts := make([]float32, 0, len(p.Vertices)*floatsPerVertex)
	for _, v := range p.Vertices {
		verts = append(verts, v.X, v.Y, 0, 0)
	}
	b.upload(verts)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(p.Vertices)))

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	b.unbind()
}

func setTextureParams() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}

	// Link program
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Cleanup shaders (they're linked into the program now)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", string(log))
	}
	return shader, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
