/*
Package ck is a small retained-mode widget toolkit for OpenGL windows.

# Overview

A Ck owns one or more windows. Each window holds a Context: an ordered list
of widgets that is drawn every frame and polled for mouse input. Widgets are
push buttons, canvases for freehand strokes and text boxes. Interaction is
reported through signals: handlers are connected to a sender handle and a
Signal kind on the Bus and are called synchronously when the signal fires.

# Quick Start

	b, _ := opengl.New()
	app, _ := ck.New(b)
	defer app.Destroy()

	win, _ := app.CreateWindow(640, 480, "demo")
	btn, _ := app.NewPushButton(ck.Position{X: 20, Y: 20}, ck.Size{Width: 120, Height: 40},
	    "fonts/Regular.ttf", "Click me")
	_ = win.Context.Add(btn)

	_ = app.Connect(btn.Handle(), ck.Click, func(sender ck.Handle, data any) {
	    fmt.Println("clicked")
	}, nil)

	_ = app.Loop()

# Coordinates

Positions are window pixels with the origin at the bottom-left corner. Canvas
strokes are in canvas pixels with the origin at the canvas's bottom-left.

# Frame Order

For each window, in creation order: REDRAW fires for the window, the window is
cleared, REDRAW fires for its context, then for each widget REDRAW fires just
before the widget draws. After drawing, mouse state is polled (HOVER, CLICK)
and buffers are swapped. Native events are pumped once per pass, which is when
close and resize callbacks run.

# Threading

All calls must be made from the goroutine that created the Ck. The OpenGL
backend locks it to the main OS thread.
*/
package ck
