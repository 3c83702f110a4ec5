// Package opengl implements ck.Backend with GLFW windows and an OpenGL 4.1
// core-profile renderer.
package opengl

import (
	"embed"
	"log/slog"
	"unicode"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/ck"
)

//go:embed shaders/*.glsl
var builtinShaders embed.FS

// Backend implements ck.Backend. Vertex arrays and framebuffers are not
// shared between GL contexts, so each context gets its own drawState.
type Backend struct {
	cfg     ck.Config
	glyphs  *unicode.RangeTable
	glReady bool
	logger  *slog.Logger

	states   map[*glfw.Window]*drawState
	uniforms map[uint32]*uniforms

	// Saved by BeginCanvas, restored by EndCanvas.
	savedViewport [4]int32
	savedStencil  bool
}

var _ ck.Backend = (*Backend)(nil)

// New creates a backend. Call ck.New with it to initialize GLFW.
func New() *Backend {
	return &Backend{
		logger:   ck.Logger().With("backend", "opengl"),
		states:   make(map[*glfw.Window]*drawState),
		uniforms: make(map[uint32]*uniforms),
	}
}
