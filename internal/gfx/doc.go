// Package gfx defines the graphics capability the engine draws through.
//
// The core issues discrete fixed-function style commands: texture upload,
// blend and color state, rectangles, textured quads, viewport changes and
// flushes. Backends translate them for a concrete API:
//
//   - [github.com/san-kum/flurry/internal/gfx/glcompat]: OpenGL 2.1 via go-gl
//   - [github.com/san-kum/flurry/internal/gfx/rlgl]: raylib immediate mode
//   - [github.com/san-kum/flurry/internal/gfx/raster]: software, into an image
//
// [Recorder] keeps a log of every command and is what the tests draw into.
package gfx
