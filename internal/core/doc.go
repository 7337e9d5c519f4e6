// Package core holds the cluster simulation: the entity models and the
// per-frame update and draw pass.
//
// A cluster's complete mutable state lives in a [State]. Every function in
// this package takes the state it works on explicitly, so one
// implementation serves any number of clusters without a shared global.
//
// # Entities
//
//   - [Star]: the central body the streams chase, rotating at RotSpeed
//   - [Spark]: one per stream, orbiting the star and flashing briefly
//   - [Smoke]: puffs emitted by the star and pulled toward the sparks
//   - [ParticlePool]: glitter shed by the streams, pooled in a fixed arena
//
// # Frame
//
//	core.Render(st, renderer, now)
//
// advances every entity by one frame and issues the draw calls: particles,
// star, smoke, sparks. Physics steps once per call; there is no delta-time
// parameter.
package core
