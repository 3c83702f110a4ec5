// Example opens a window with a push button, a drawing canvas and a text box.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -config example/ck.toml -v
//
// Drag with the left button over the canvas to draw, with the right button to
// erase. The button counts clicks and opens a second window on the third one.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

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

func run() error {
	configPath := flag.String("config", "", "TOML configuration file")
	fontPath := flag.String("font", "", "TrueType font (defaults to Go Regular)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	cfg := ck.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = ck.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	cfg.Verbose = cfg.Verbose || *verbose

	if *fontPath == "" {
		dir, err := os.MkdirTemp("", "ck-example")
		if err != nil {
			return fmt.Errorf("temp dir: %w", err)
		}
		defer os.RemoveAll(dir)
		*fontPath = filepath.Join(dir, "Go-Regular.ttf")
		if err := os.WriteFile(*fontPath, goregular.TTF, 0o644); err != nil {
			return fmt.Errorf("write font: %w", err)
		}
	}

	app, err := ck.New(opengl.New(), ck.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer app.Destroy()

	win, err := app.CreateWindow(800, 600, "ck example")
	if err != nil {
		return err
	}
	win.Context.ClearColor = ck.RGBA{0.12, 0.12, 0.14, 1}

	button, err := app.NewPushButton(ck.Position{X: 20, Y: 530}, ck.Size{Width: 200, Height: 50},
		*fontPath, "Click me")
	if err != nil {
		return err
	}
	canvas, err := app.NewCanvas(ck.Position{X: 20, Y: 20}, ck.Size{Width: 500, Height: 490},
		*fontPath, "", ck.WithAlignment(ck.AlignBottomRight))
	if err != nil {
		return err
	}
	notes, err := app.NewTextbox(ck.Position{X: 540, Y: 20}, ck.Size{Width: 240, Height: 560},
		*fontPath, "Left drag draws.\nRight drag erases.\n\nThe canvas and this box clip their contents to their bounds.",
		false, ck.WithTextColor(ck.RGB{0.9, 0.9, 0.9}))
	if err != nil {
		return err
	}
	for _, w := range []*ck.Widget{button, canvas, notes} {
		if err := win.Context.Add(w); err != nil {
			return err
		}
	}

	clicks := 0
	if err := app.Connect(button.Handle(), ck.Click, func(ck.Handle, any) {
		clicks++
		button.SetText(fmt.Sprintf("Clicked %d", clicks))
		if clicks == 3 {
			if err := openSecondWindow(app, *fontPath); err != nil {
				ck.Logger().Error("second window", "err", err)
			}
		}
	}, nil); err != nil {
		return err
	}

	var (
		last    ck.Position
		drawing bool
	)
	if err := app.Connect(canvas.Handle(), ck.Redraw, func(_ ck.Handle, data any) {
		in := win.Input()
		pen := ck.Position{X: in.MouseX, Y: in.MouseY}
		left, right := in.MouseDown(ck.MouseButtonLeft), in.MouseDown(ck.MouseButtonRight)
		if !canvas.Bounds().Contains(pen) || (!left && !right) {
			drawing = false
			return
		}
		local := pen.Sub(canvas.Position)
		if drawing {
			color := data.(ck.RGB)
			_ = app.DrawLine(canvas, last, local, right, color, 6)
		}
		last, drawing = local, true
		canvas.SetText(fmt.Sprintf("%.0f, %.0f", local.X, local.Y))
	}, ck.RGB{0.1, 0.3, 0.8}); err != nil {
		return err
	}

	return app.Loop()
}

func openSecondWindow(app *ck.Ck, fontPath string) error {
	win, err := app.CreateWindow(320, 200, "second window")
	if err != nil {
		return err
	}
	label, err := app.NewPushButton(ck.Position{X: 10, Y: 10}, ck.Size{Width: 300, Height: 180},
		fontPath, "Close me to continue", ck.WithFontSize(20))
	if err != nil {
		return err
	}
	if err := win.Context.Add(label); err != nil {
		return err
	}
	return app.Connect(win.Handle(), ck.Resize, func(ck.Handle, any) {
		win.SetTitle(fmt.Sprintf("second window %dx%d", win.Width, win.Height))
	}, nil)
}
