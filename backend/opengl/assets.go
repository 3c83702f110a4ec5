package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/ck"
	"github.com/go-theft-auto/ck/asset"
)

// LoadShader compiles and links a program from two GLSL files.
func (b *Backend) LoadShader(vertexPath, fragmentPath string) (uint32, error) {
	vs, err := asset.ReadShader(vertexPath)
	if err != nil {
		return 0, err
	}
	fs, err := asset.ReadShader(fragmentPath)
	if err != nil {
		return 0, err
	}
	prog, err := createShaderProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("program %q + %q: %w", vertexPath, fragmentPath, err)
	}
	return prog, nil
}

// BuiltinShader compiles the embedded program for kind.
func (b *Backend) BuiltinShader(kind ck.ProgramKind) (uint32, error) {
	vs, err := builtinShaders.ReadFile(fmt.Sprintf("shaders/%s_vertex.glsl", kind))
	if err != nil {
		return 0, fmt.Errorf("builtin %s shader: %w", kind, err)
	}
	fs, err := builtinShaders.ReadFile(fmt.Sprintf("shaders/%s_fragment.glsl", kind))
	if err != nil {
		return 0, fmt.Errorf("builtin %s shader: %w", kind, err)
	}
	prog, err := createShaderProgram(asset.Terminate(string(vs)), asset.Terminate(string(fs)))
	if err != nil {
		return 0, fmt.Errorf("builtin %s program: %w", kind, err)
	}
	return prog, nil
}

// LoadTexture decodes an image file into an RGBA texture.
func (b *Backend) LoadTexture(path string) (uint32, error) {
	img, err := asset.LoadImage(path)
	if err != nil {
		return 0, fmt.Errorf("load texture: %w", err)
	}
	return uploadRGBA(img), nil
}

// SolidTexture creates a 1x1 texture of c.
func (b *Backend) SolidTexture(c [4]uint8) (uint32, error) {
	return uploadRGBA(asset.Solid(c)), nil
}

func uploadRGBA(img *asset.Image) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Width), int32(img.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	setTextureParams()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// LoadFont rasterizes the backend's glyph table at size px and uploads one
// single-channel texture per glyph.
func (b *Backend) LoadFont(path string, size int) (*ck.Font, error) {
	bitmaps, m, err := asset.LoadFont(path, size, b.glyphs)
	if err != nil {
		return nil, err
	}
	font, err := ck.NewFont(size, m.LineHeight, m.Ascender, m.Descender, max(len(bitmaps), 1))
	if err != nil {
		return nil, err
	}

	var last int32
	gl.GetIntegerv(gl.UNPACK_ALIGNMENT, &last)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for _, bm := range bitmaps {
		g := &ck.Glyph{
			Width:    bm.Width,
			Height:   bm.Height,
			BearingX: bm.BearingX,
			BearingY: bm.BearingY,
			Advance:  bm.Advance,
		}
		if len(bm.Pix) > 0 {
			gl.GenTextures(1, &g.Texture)
			gl.BindTexture(gl.TEXTURE_2D, g.Texture)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(bm.Width), int32(bm.Height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(bm.Pix))
			setTextureParams()
		}
		font.Add(bm.Rune, g)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, last)

	b.logger.Debug("font loaded", "path", path, "size", size, "glyphs", len(bitmaps), "face_glyphs", m.NumGlyphs)
	return font, nil
}

// FreeFont deletes the glyph textures of f.
func (b *Backend) FreeFont(f *ck.Font) {
	if f == nil {
		return
	}
	if tex := f.Textures(); len(tex) > 0 {
		gl.DeleteTextures(int32(len(tex)), &tex[0])
	}
}
