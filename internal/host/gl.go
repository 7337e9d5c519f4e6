package host

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/san-kum/flurry/internal/gfx/glcompat"
)

// RunGL drives the group through an OpenGL 2.1 window.
func RunGL(opts Options) (err error) {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	width, height := opts.settings().Width, opts.settings().Height
	win, err := glfw.CreateWindow(width, height, "flurry", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	r, err := glcompat.New()
	if err != nil {
		return err
	}
	opts.logger().Printf("OpenGL %s", r.Version)

	fbw, fbh := win.GetFramebufferSize()
	g, err := opts.start(r, fbw, fbh)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, g.Destroy()) }()

	if err := g.PrepareToAnimate(); err != nil {
		return err
	}

	resized := false
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		fbw, fbh = w, h
		resized = true
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for frame := 0; !win.ShouldClose() && !opts.done(frame); frame++ {
		if resized {
			resized = false
			if err := g.SetSize(fbw, fbh); err != nil {
				return err
			}
		}
		if err := g.AnimateOneFrame(); err != nil {
			return err
		}
		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
