package core

import "github.com/san-kum/flurry/internal/gfx"

// Update advances every entity of st to the clock reading now.
func Update(st *State, now float64) {
	st.advance(now)
	st.Star.Update(st.Time)
	for i := 0; i < st.streams(); i++ {
		st.Sparks[i].Update(st, i)
	}
	st.Particles.Update(st)
	st.Smoke.Update(st)
}

// Render updates st and draws it additively over the current framebuffer.
func Render(st *State, r gfx.Renderer, now float64) {
	Update(st, now)
	Draw(st, r)
}

// Draw issues the draw calls for st without advancing it: particles, star,
// smoke, then sparks.
func Draw(st *State, r gfx.Renderer) {
	r.Enable(gfx.Blend)
	r.BlendFunc(gfx.SrcAlpha, gfx.One)
	r.Enable(gfx.Texture2D)
	if st.Texture != 0 {
		r.BindTexture(st.Texture)
	}

	st.flush(r, st.Particles.Draw(st, st.batch[:0]))
	st.flush(r, st.drawStar(st.batch[:0]))
	st.flush(r, st.Smoke.Draw(st, st.batch[:0]))
	if st.DrawSparks {
		st.flush(r, st.drawSparks(st.batch[:0]))
	}

	r.Disable(gfx.Texture2D)
}

func (st *State) flush(r gfx.Renderer, quads []gfx.Quad) {
	if len(quads) > 0 {
		r.DrawQuads(quads)
	}
	st.batch = quads[:0]
}

func (st *State) drawStar(out []gfx.Quad) []gfx.Quad {
	p := st.Star.Position
	if p[2] < nearClip {
		return out
	}
	w, h := float64(st.Width), float64(st.Height)
	x, y := project(p, w, h)
	r := 0.2 * StreamSize * w / 1024.0 / p[2]

	var c [4]float64
	for i := 0; i < st.streams(); i++ {
		for k := 0; k < 3; k++ {
			c[k] += st.Sparks[i].Color[k]
		}
	}
	if n := st.streams(); n > 0 {
		for k := 0; k < 3; k++ {
			c[k] = c[k]/float64(n) + 0.25
		}
	}

	q := sprite(x, y, r, int(st.Frame)&63)
	q.R, q.G, q.B = tint(c, st.Brightness)
	q.A = float32(0.35 * st.Brightness)
	return append(out, q)
}

func (st *State) drawSparks(out []gfx.Quad) []gfx.Quad {
	w, h := float64(st.Width), float64(st.Height)
	for i := 0; i < st.streams(); i++ {
		s := &st.Sparks[i]
		if !s.Flashing() || s.Position[2] < nearClip {
			continue
		}
		x, y := project(s.Position, w, h)
		r := 0.1 * StreamSize * w / 1024.0 / s.Position[2]
		life := s.Flash / s.FlashLife

		q := sprite(x, y, r*(0.5+life), i&63)
		q.R, q.G, q.B = tint(s.Color, 4.0*st.Brightness)
		q.A = float32(life * st.Brightness)
		out = append(out, q)
	}
	return out
}
