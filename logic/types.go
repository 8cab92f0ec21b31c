package logic

// Vector2 represents a 2D position
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Motion regimes
const (
	RegionAerial     = "AERIAL"
	RegionUnderwater = "UNDERWATER"
)

// Player is the diver controlled by the connected client
type Player struct {
	Pos    Vector2 `json:"pos"`
	Region string  `json:"region"`

	// Internal state (not synced)
	Vel         Vector2 `json:"-"`
	MovingLeft  bool    `json:"-"`
	MovingRight bool    `json:"-"`
}

// AirPocket is a quiz-gated checkpoint. Cleared flips exactly once,
// on a correct answer, and never reverts.
type AirPocket struct {
	ID        string  `json:"id"`
	Pos       Vector2 `json:"pos"`
	Radius    float64 `json:"radius"`
	QuizIndex int     `json:"-"`
	Cleared   bool    `json:"cleared"`
}

// Treasure sits near the world floor; reaching its box wins the session.
type Treasure struct {
	Pos    Vector2 `json:"pos"` // top-left corner
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// State enumerates the session lifecycle
type State int

const (
	StateMenu State = iota
	StateIntro
	StatePlaying
	StatePaused
	StateQuestion
	StateGameOver
	StateWin
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateQuestion:
		return "question"
	case StateGameOver:
		return "gameover"
	case StateWin:
		return "win"
	}
	return "unknown"
}

// Terminal reports whether the state accepts no transition except restart.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateWin
}

// GameConfig mirrors game_config.json
type GameConfig struct {
	Server struct {
		TickRateMs     int   `json:"tick_rate_ms"`
		ReadLimitBytes int64 `json:"read_limit_bytes"`
	} `json:"server"`
	Viewport struct {
		Width      float64 `json:"width"`
		Height     float64 `json:"height"`
		MarginX    float64 `json:"margin_x"`
		CameraLead float64 `json:"camera_lead"`
	} `json:"viewport"`
	World struct {
		Depth                float64 `json:"depth"`
		SurfaceY             float64 `json:"surface_y"`
		PocketCount          int     `json:"pocket_count"`
		PocketRadius         float64 `json:"pocket_radius"`
		PocketStartDepth     float64 `json:"pocket_start_depth"`
		PocketMinGap         float64 `json:"pocket_min_gap"`
		PocketMaxGap         float64 `json:"pocket_max_gap"`
		TreasureWidth        float64 `json:"treasure_width"`
		TreasureHeight       float64 `json:"treasure_height"`
		TreasureBottomOffset float64 `json:"treasure_bottom_offset"`
		TreasureMargin       float64 `json:"treasure_margin"`
	} `json:"world"`
	Physics struct {
		Gravity         float64 `json:"gravity"`
		MoveAccel       float64 `json:"move_accel"`
		MoveMaxSpeed    float64 `json:"move_max_speed"`
		MoveDecay       float64 `json:"move_decay"` // per-frame multiplicative damping
		DescentRate     float64 `json:"descent_rate"`
		IntroDropY      float64 `json:"intro_drop_y"`
		IntroUpwardKick float64 `json:"intro_upward_kick"`
		MaxDeltaSec     float64 `json:"max_delta_sec"`
	} `json:"physics"`
	Oxygen struct {
		Max         float64 `json:"max"`
		DrainPerSec float64 `json:"drain_per_sec"`
		Bonus       float64 `json:"bonus"`
	} `json:"oxygen"`
	// Proximity holds the constants shared with the presentation layer.
	// They are exported once in the snapshot so both sides use the same
	// numbers for the enterability circle.
	Proximity struct {
		PlayerRadius float64 `json:"player_radius"`
		Slack        float64 `json:"slack"`
	} `json:"proximity"`
}

// DefaultConfig returns the tuning used when no config file is supplied.
func DefaultConfig() *GameConfig {
	cfg := &GameConfig{}
	cfg.Server.TickRateMs = 33
	cfg.Server.ReadLimitBytes = 1 << 20
	cfg.Viewport.Width = 480
	cfg.Viewport.Height = 640
	cfg.Viewport.MarginX = 24
	cfg.Viewport.CameraLead = 0.4
	cfg.World.Depth = 3000
	cfg.World.SurfaceY = 120
	cfg.World.PocketCount = 8
	cfg.World.PocketRadius = 26
	cfg.World.PocketStartDepth = 400
	cfg.World.PocketMinGap = 220
	cfg.World.PocketMaxGap = 320
	cfg.World.TreasureWidth = 64
	cfg.World.TreasureHeight = 48
	cfg.World.TreasureBottomOffset = 80
	cfg.World.TreasureMargin = 12
	cfg.Physics.Gravity = 540
	cfg.Physics.MoveAccel = 420
	cfg.Physics.MoveMaxSpeed = 210
	cfg.Physics.MoveDecay = 0.9
	cfg.Physics.DescentRate = 60
	cfg.Physics.IntroDropY = 40
	cfg.Physics.IntroUpwardKick = 30
	cfg.Physics.MaxDeltaSec = 0.1
	cfg.Oxygen.Max = 100
	cfg.Oxygen.DrainPerSec = 4
	cfg.Oxygen.Bonus = 30
	cfg.Proximity.PlayerRadius = 16
	cfg.Proximity.Slack = 10
	return cfg
}
