package host

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/flurry/internal/gfx/rlgl"
)

// RunRaylib drives the group through a raylib window.
func RunRaylib(opts Options) (err error) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	s := opts.settings()
	rl.InitWindow(int32(s.Width), int32(s.Height), "flurry")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(s.FPS))
	rl.SetExitKey(rl.KeyEscape)

	r := rlgl.New()
	defer r.Close()

	g, err := opts.start(r, int(rl.GetRenderWidth()), int(rl.GetRenderHeight()))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, g.Destroy()) }()

	rl.BeginDrawing()
	err = g.PrepareToAnimate()
	rl.EndDrawing()
	if err != nil {
		return err
	}

	for frame := 0; !rl.WindowShouldClose() && !opts.done(frame); frame++ {
		if rl.IsWindowResized() {
			if err := g.SetSize(int(rl.GetRenderWidth()), int(rl.GetRenderHeight())); err != nil {
				return err
			}
		}
		rl.BeginDrawing()
		err = g.AnimateOneFrame()
		rl.EndDrawing()
		if err != nil {
			return err
		}
	}
	return nil
}
