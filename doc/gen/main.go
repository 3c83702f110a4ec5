// Command gen renders each widget kind with sample content, reads back the
// presented frame and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/ck"
	"github.com/go-theft-auto/ck/backend/opengl"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single widget screenshot to capture.
type screenshot struct {
	name   string                                              // filename without extension
	width  int                                                 // captured width
	height int                                                 // captured height
	build  func(app *ck.Ck, font string) ([]*ck.Widget, error) // widgets to show
	frames int                                                 // frames to render (0 = default 2)
}

func run() error {
	dir, err := os.MkdirTemp("", "ck-gen")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	font := filepath.Join(dir, "Go-Regular.ttf")
	if err := os.WriteFile(font, goregular.TTF, 0o644); err != nil {
		return fmt.Errorf("write font: %w", err)
	}

	app, err := ck.New(opengl.New())
	if err != nil {
		return err
	}
	defer app.Destroy()

	// The window stays at 800x600, larger than every screenshot.
	win, err := app.CreateWindow(800, 600, "screenshot-gen")
	if err != nil {
		return err
	}
	win.Context.ClearColor = ck.RGBA{0.12, 0.12, 0.14, 1}

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(app, win, font, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(app *ck.Ck, win *ck.Window, font string, s screenshot, outDir string) error {
	widgets, err := s.build(app, font)
	if err != nil {
		return err
	}
	// Fresh widgets per screenshot to avoid state leaking between captures.
	defer func() {
		for _, w := range widgets {
			_ = app.RemoveWidget(win.Context, w)
		}
	}()
	for _, w := range widgets {
		if err := win.Context.Add(w); err != nil {
			return err
		}
	}

	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}
	for i := 0; i < frames; i++ {
		if err := app.Frame(); err != nil {
			return err
		}
	}

	// Frame has swapped, so the finished image is in the front buffer.
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadBuffer(gl.FRONT)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.ReadBuffer(gl.BACK)

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the list of all widget screenshots to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "button", width: 240, height: 90,
			build: func(app *ck.Ck, font string) ([]*ck.Widget, error) {
				b, err := app.NewPushButton(ck.Position{X: 20, Y: 20}, ck.Size{Width: 200, Height: 50}, font, "Push button")
				if err != nil {
					return nil, err
				}
				return []*ck.Widget{b}, nil
			},
		},
		{
			name: "canvas", width: 340, height: 240,
			build: func(app *ck.Ck, font string) ([]*ck.Widget, error) {
				c, err := app.NewCanvas(ck.Position{X: 20, Y: 20}, ck.Size{Width: 300, Height: 200}, font, "canvas",
					ck.WithAlignment(ck.AlignBottomRight), ck.WithTextColor(ck.Black))
				if err != nil {
					return nil, err
				}
				blue := ck.RGB{0.1, 0.3, 0.8}
				strokes := [][2]ck.Position{
					{{X: 30, Y: 40}, {X: 120, Y: 160}},
					{{X: 120, Y: 160}, {X: 200, Y: 60}},
					{{X: 200, Y: 60}, {X: 270, Y: 150}},
				}
				for _, s := range strokes {
					if err := app.DrawLine(c, s[0], s[1], false, blue, 8); err != nil {
						return nil, err
					}
				}
				// Erase a notch out of the middle stroke.
				if err := app.DrawLine(c, ck.Position{X: 150, Y: 90}, ck.Position{X: 170, Y: 130}, true, ck.Black, 12); err != nil {
					return nil, err
				}
				return []*ck.Widget{c}, nil
			},
		},
		{
			name: "textbox", width: 300, height: 200,
			build: func(app *ck.Ck, font string) ([]*ck.Widget, error) {
				t, err := app.NewTextbox(ck.Position{X: 20, Y: 20}, ck.Size{Width: 260, Height: 160}, font,
					"Text boxes wrap long lines at the box edge and keep explicit\nline breaks.\n\nΕλληνικά, Кириллица", false)
				if err != nil {
					return nil, err
				}
				return []*ck.Widget{t}, nil
			},
		},
		{
			name: "alignment", width: 420, height: 200,
			build: func(app *ck.Ck, font string) ([]*ck.Widget, error) {
				var out []*ck.Widget
				modes := []ck.Alignment{ck.AlignTopLeft, ck.AlignCenter, ck.AlignBottomRight}
				for i, a := range modes {
					b, err := app.NewPushButton(ck.Position{X: 20 + float32(i)*130, Y: 20}, ck.Size{Width: 120, Height: 160},
						font, a.String(), ck.WithAlignment(a))
					if err != nil {
						return out, err
					}
					out = append(out, b)
				}
				return out, nil
			},
		},
	}
}
