package logic

import (
	"fmt"
	"math/rand"

	"github.com/elliotchance/orderedmap/v2"
)

// World holds the static geometry generated once per session.
type World struct {
	Pockets  *orderedmap.OrderedMap[string, *AirPocket]
	Treasure Treasure
	Depth    float64
}

// GenerateWorld builds the checkpoint column and the treasure for one
// session. The rng is injected so layouts are reproducible in tests;
// generation always succeeds for a clamped config.
func GenerateWorld(cfg *GameConfig, rng *rand.Rand) *World {
	pockets := orderedmap.NewOrderedMap[string, *AirPocket]()

	minX := cfg.Viewport.MarginX
	maxX := cfg.Viewport.Width - cfg.Viewport.MarginX

	y := cfg.World.PocketStartDepth
	for i := 0; i < cfg.World.PocketCount; i++ {
		if i > 0 {
			// Strictly increasing depth: each gap is drawn from
			// [PocketMinGap, PocketMaxGap], so pockets never overlap
			// vertically as long as PocketMinGap > 2*PocketRadius.
			y += cfg.World.PocketMinGap + rng.Float64()*(cfg.World.PocketMaxGap-cfg.World.PocketMinGap)
		}
		p := &AirPocket{
			ID:        fmt.Sprintf("pocket_%d", i),
			Pos:       Vector2{X: minX + rng.Float64()*(maxX-minX), Y: y},
			Radius:    cfg.World.PocketRadius,
			QuizIndex: i,
		}
		pockets.Set(p.ID, p)
	}

	treasure := Treasure{
		Pos: Vector2{
			X: cfg.Viewport.Width/2 - cfg.World.TreasureWidth/2,
			Y: cfg.World.Depth - cfg.World.TreasureBottomOffset - cfg.World.TreasureHeight,
		},
		Width:  cfg.World.TreasureWidth,
		Height: cfg.World.TreasureHeight,
	}

	return &World{
		Pockets:  pockets,
		Treasure: treasure,
		Depth:    cfg.World.Depth,
	}
}
