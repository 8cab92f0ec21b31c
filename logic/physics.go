package logic

import (
	"math"
)

// nominalFrameSec is the reference frame duration the per-frame tuning
// values (MoveDecay) are expressed against.
const nominalFrameSec = 1.0 / 60.0

// stepAerial integrates free-fall above the water line. Returns true on
// the tick the diver crosses the surface.
func (s *GameSession) stepAerial(dt float64) bool {
	cfg := s.Config
	p := &s.Player

	p.Vel.Y += cfg.Physics.Gravity * dt
	p.Pos.Y += p.Vel.Y * dt
	s.stepHorizontal(dt)

	if p.Pos.Y >= cfg.World.SurfaceY {
		p.Pos.Y = cfg.World.SurfaceY
		p.Vel.Y = 0
		p.Region = RegionUnderwater
		return true
	}
	return false
}

// stepUnderwater applies the neutral-buoyancy sink: a constant descent
// rate rather than integrated velocity, clamped to the world floor.
func (s *GameSession) stepUnderwater(dt float64) {
	cfg := s.Config
	p := &s.Player

	s.stepHorizontal(dt)
	p.Pos.Y += cfg.Physics.DescentRate * dt
	if p.Pos.Y > s.World.Depth {
		p.Pos.Y = s.World.Depth
	}
	if p.Pos.Y < cfg.World.SurfaceY {
		p.Pos.Y = cfg.World.SurfaceY
	}
}

// stepHorizontal is shared by both regimes: bounded acceleration under
// input, multiplicative decay toward zero without it, position clamped
// to the viewport margins.
func (s *GameSession) stepHorizontal(dt float64) {
	cfg := s.Config
	p := &s.Player

	dir := 0.0
	if p.MovingLeft {
		dir -= 1
	}
	if p.MovingRight {
		dir += 1
	}

	if dir != 0 {
		p.Vel.X += dir * cfg.Physics.MoveAccel * dt
		if p.Vel.X > cfg.Physics.MoveMaxSpeed {
			p.Vel.X = cfg.Physics.MoveMaxSpeed
		}
		if p.Vel.X < -cfg.Physics.MoveMaxSpeed {
			p.Vel.X = -cfg.Physics.MoveMaxSpeed
		}
	} else {
		p.Vel.X *= math.Pow(cfg.Physics.MoveDecay, dt/nominalFrameSec)
	}

	p.Pos.X += p.Vel.X * dt

	minX := cfg.Viewport.MarginX
	maxX := cfg.Viewport.Width - cfg.Viewport.MarginX
	if p.Pos.X < minX {
		p.Pos.X = minX
		p.Vel.X = 0
	}
	if p.Pos.X > maxX {
		p.Pos.X = maxX
		p.Vel.X = 0
	}
}

// clampDelta bounds a single tick delta so a stalled host (tab suspend,
// GC pause) cannot tunnel the diver past pockets or the world floor.
func (s *GameSession) clampDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > s.Config.Physics.MaxDeltaSec {
		return s.Config.Physics.MaxDeltaSec
	}
	return dt
}
