package ck

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the toolkit configuration, usually read from ck.toml.
type Config struct {
	// Pixel size of the font each widget loads.
	FontSize int `toml:"font_size"`
	// Unicode script names (unicode.Scripts keys) rasterized into each glyph cache
	// in addition to ASCII and Latin-1.
	GlyphScripts []string `toml:"glyph_scripts"`
	// Bucket count of the signal registry.
	SignalBuckets int  `toml:"signal_buckets"`
	Verbose       bool `toml:"verbose"`

	GL       GLConfig       `toml:"gl"`
	Shaders  ShaderConfig   `toml:"shaders"`
	Textures TextureConfig  `toml:"textures"`
	Colors   FallbackColors `toml:"colors"`
}

// GLConfig holds context creation hints.
type GLConfig struct {
	Major int `toml:"major"`
	Minor int `toml:"minor"`
	// Debug only requests a debug context. The 4.1 core bindings have no
	// debug message callback, so nothing reads its output; attach an external
	// GL debugger to see it.
	Debug bool `toml:"debug"`
	VSync bool `toml:"vsync"`
}

// ShaderConfig holds GLSL file paths. An empty pair selects the built-in program.
type ShaderConfig struct {
	TextVertex      string `toml:"text_vertex"`
	TextFragment    string `toml:"text_fragment"`
	TextureVertex   string `toml:"texture_vertex"`
	TextureFragment string `toml:"texture_fragment"`
	LineVertex      string `toml:"line_vertex"`
	LineFragment    string `toml:"line_fragment"`
}

// TextureConfig holds the default widget background images.
// An empty path selects a generated solid texture.
type TextureConfig struct {
	Button  string `toml:"button"`
	Canvas  string `toml:"canvas"`
	Textbox string `toml:"textbox"`
}

// FallbackColors are the RGBA bytes of generated background textures.
type FallbackColors struct {
	Button  [4]uint8 `toml:"button"`
	Canvas  [4]uint8 `toml:"canvas"`
	Textbox [4]uint8 `toml:"textbox"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		FontSize:      16,
		GlyphScripts:  []string{"Latin", "Greek", "Cyrillic"},
		SignalBuckets: 128,
		GL: GLConfig{
			Major: 4,
			Minor: 1,
			Debug: false,
			VSync: true,
		},
		Colors: FallbackColors{
			Button:  [4]uint8{70, 90, 120, 255},
			Canvas:  [4]uint8{245, 245, 245, 255},
			Textbox: [4]uint8{30, 30, 34, 255},
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.FontSize <= 0 {
		return cfg, fmt.Errorf("config %q: font_size must be positive, got %d", path, cfg.FontSize)
	}
	return cfg, nil
}

// shaderPaths returns the vertex and fragment paths for kind.
func (c ShaderConfig) shaderPaths(kind ProgramKind) (string, string) {
	switch kind {
	case ProgramText:
		return c.TextVertex, c.TextFragment
	case ProgramTexture:
		return c.TextureVertex, c.TextureFragment
	case ProgramLine:
		return c.LineVertex, c.LineFragment
	}
	return "", ""
}
