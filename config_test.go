package ck_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-theft-auto/ck"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ck.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
font_size = 24
glyph_scripts = ["Latin", "Hebrew"]

[gl]
major = 3
minor = 3
debug = false
vsync = true

[shaders]
text_vertex = "text.vert"
text_fragment = "text.frag"

[textures]
button = "button.png"

[colors]
canvas = [1, 2, 3, 4]
`)
	cfg, err := ck.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.FontSize != 24 {
		t.Errorf("FontSize = %d", cfg.FontSize)
	}
	if !reflect.DeepEqual(cfg.GlyphScripts, []string{"Latin", "Hebrew"}) {
		t.Errorf("GlyphScripts = %v", cfg.GlyphScripts)
	}
	if cfg.GL != (ck.GLConfig{Major: 3, Minor: 3, VSync: true}) {
		t.Errorf("GL = %+v", cfg.GL)
	}
	if cfg.Shaders.TextVertex != "text.vert" || cfg.Shaders.TextFragment != "text.frag" {
		t.Errorf("Shaders = %+v", cfg.Shaders)
	}
	if cfg.Textures.Button != "button.png" || cfg.Textures.Canvas != "" {
		t.Errorf("Textures = %+v", cfg.Textures)
	}
	if cfg.Colors.Canvas != [4]uint8{1, 2, 3, 4} {
		t.Errorf("Colors.Canvas = %v", cfg.Colors.Canvas)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	cfg, err := ck.LoadConfig(writeConfig(t, "verbose = true\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := ck.DefaultConfig()
	if !cfg.Verbose {
		t.Error("Verbose not read")
	}
	if cfg.FontSize != def.FontSize || cfg.SignalBuckets != def.SignalBuckets {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Colors != def.Colors || cfg.GL != def.GL {
		t.Errorf("nested defaults lost: %+v", cfg)
	}
	if def.GL.Debug {
		t.Error("debug context requested by default")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"negative font": "font_size = -1\n",
		"zero font":     "font_size = 0\n",
		"bad toml":      "font_size = \n",
		"wrong type":    "font_size = \"big\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ck.LoadConfig(writeConfig(t, body)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := ck.LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file: expected an error")
	}
}
