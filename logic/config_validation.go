package logic

import "math"

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if math.IsNaN(v) {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// ClampGameConfig enforces hard safety bounds for session configs.
// It mutates cfg in-place so callers can accept user-provided values while guaranteeing sane limits.
func ClampGameConfig(cfg *GameConfig) {
	if cfg == nil {
		return
	}

	// --- server ---
	cfg.Server.TickRateMs = clampInt(cfg.Server.TickRateMs, 10, 200)
	if cfg.Server.ReadLimitBytes <= 0 {
		cfg.Server.ReadLimitBytes = 1 << 20
	}

	// --- viewport ---
	cfg.Viewport.Width = clampFloat(cfg.Viewport.Width, 160, 4096)
	cfg.Viewport.Height = clampFloat(cfg.Viewport.Height, 160, 4096)
	cfg.Viewport.MarginX = clampFloat(cfg.Viewport.MarginX, 0, cfg.Viewport.Width/4)
	cfg.Viewport.CameraLead = clampFloat(cfg.Viewport.CameraLead, 0.0, 1.0)

	// --- world ---
	cfg.World.Depth = clampFloat(cfg.World.Depth, cfg.Viewport.Height, 100000)
	cfg.World.SurfaceY = clampFloat(cfg.World.SurfaceY, 0, cfg.Viewport.Height)
	cfg.World.PocketCount = clampInt(cfg.World.PocketCount, 1, 64)
	cfg.World.PocketRadius = clampFloat(cfg.World.PocketRadius, 4, 200)
	cfg.World.PocketStartDepth = clampFloat(cfg.World.PocketStartDepth, cfg.World.SurfaceY, cfg.World.Depth)
	cfg.World.PocketMinGap = clampFloat(cfg.World.PocketMinGap, 1, cfg.World.Depth)
	cfg.World.PocketMaxGap = clampFloat(cfg.World.PocketMaxGap, cfg.World.PocketMinGap, cfg.World.Depth)
	cfg.World.TreasureWidth = clampFloat(cfg.World.TreasureWidth, 8, cfg.Viewport.Width)
	cfg.World.TreasureHeight = clampFloat(cfg.World.TreasureHeight, 8, cfg.Viewport.Height)
	cfg.World.TreasureBottomOffset = clampFloat(cfg.World.TreasureBottomOffset, 0, cfg.World.Depth/2)
	cfg.World.TreasureMargin = clampFloat(cfg.World.TreasureMargin, 0, 100)

	// --- physics ---
	cfg.Physics.Gravity = clampFloat(cfg.Physics.Gravity, 10, 5000)
	cfg.Physics.MoveAccel = clampFloat(cfg.Physics.MoveAccel, 10, 5000)
	cfg.Physics.MoveMaxSpeed = clampFloat(cfg.Physics.MoveMaxSpeed, 10, 2000)
	cfg.Physics.MoveDecay = clampFloat(cfg.Physics.MoveDecay, 0.0, 0.999)
	cfg.Physics.DescentRate = clampFloat(cfg.Physics.DescentRate, 1, 1000)
	cfg.Physics.IntroDropY = clampFloat(cfg.Physics.IntroDropY, 0, cfg.World.SurfaceY)
	cfg.Physics.IntroUpwardKick = clampFloat(cfg.Physics.IntroUpwardKick, 0, 500)
	cfg.Physics.MaxDeltaSec = clampFloat(cfg.Physics.MaxDeltaSec, 0.01, 0.5)

	// --- oxygen ---
	cfg.Oxygen.Max = clampFloat(cfg.Oxygen.Max, 1, 100)
	cfg.Oxygen.DrainPerSec = clampFloat(cfg.Oxygen.DrainPerSec, 0.1, 100)
	cfg.Oxygen.Bonus = clampFloat(cfg.Oxygen.Bonus, 0, cfg.Oxygen.Max)

	// --- proximity ---
	cfg.Proximity.PlayerRadius = clampFloat(cfg.Proximity.PlayerRadius, 1, 200)
	cfg.Proximity.Slack = clampFloat(cfg.Proximity.Slack, 0, 200)
}
