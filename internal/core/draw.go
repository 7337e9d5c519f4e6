package core

import (
	"math"

	"github.com/san-kum/flurry/internal/gfx"
)

const atlasCell = 0.125

// project maps a field position onto the viewport. The field is viewed from
// the origin looking down +z with a horizontal field of view of the width.
func project(p [3]float64, w, h float64) (float64, float64) {
	return p[0]*w/p[2] + w*0.5, p[1]*w/p[2] + h*0.5
}

// cell returns the texture coordinates of one of the 64 atlas tiles.
func cell(frame int) (u0, v0, u1, v1 float32) {
	u0 = float32(frame&7) * atlasCell
	v0 = float32(frame>>3) * atlasCell
	return u0, v0, u0 + atlasCell, v0 + atlasCell
}

// streak builds a quad from the old screen position to the new one, w wide
// at the head and ow wide at the tail, rounded off by the sprite.
func streak(sx, sy, ox, oy, w, ow float64, frame int) gfx.Quad {
	dx, dy := sx-ox, sy-oy
	d := math.Hypot(dx, dy)

	var sm, os float64
	if d > 0 {
		sm = w / d
		os = ow / d
	}
	dxs, dys := dx*sm, dy*sm
	dxos, dyos := dx*os, dy*os

	u0, v0, u1, v1 := cell(frame)
	return gfx.Quad{V: [4]gfx.Vertex{
		{X: float32(sx + dxs - dys), Y: float32(sy + dys + dxs), U: u0, V: v0},
		{X: float32(sx + dxs + dys), Y: float32(sy + dys - dxs), U: u1, V: v0},
		{X: float32(ox - dxos + dyos), Y: float32(oy - dyos - dxos), U: u1, V: v1},
		{X: float32(ox - dxos - dyos), Y: float32(oy - dyos + dxos), U: u0, V: v1},
	}}
}

// sprite builds a square quad of half-size r centred on (x, y).
func sprite(x, y, r float64, frame int) gfx.Quad {
	u0, v0, u1, v1 := cell(frame)
	return gfx.Quad{V: [4]gfx.Vertex{
		{X: float32(x - r), Y: float32(y - r), U: u0, V: v0},
		{X: float32(x + r), Y: float32(y - r), U: u1, V: v0},
		{X: float32(x + r), Y: float32(y + r), U: u1, V: v1},
		{X: float32(x - r), Y: float32(y + r), U: u0, V: v1},
	}}
}
