package logic

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"deepdive_server/dataset"
)

// One-shot visual events, consumed by the rendering layer.
const (
	EventSplash = "splash"
)

// GameSession is the authoritative state for one connected client.
// It is owned by a single GameLoop goroutine; all mutation happens
// through Handle* calls and UpdateTick on that goroutine, so there is
// no locking discipline here.
type GameSession struct {
	Config *GameConfig
	World  *World

	State  State
	Player Player
	Oxygen float64
	Score  float64

	Questions    []dataset.Question
	ClearedCount int

	ActivePocketID  string
	CurrentQuestion *dataset.Question
	SelectedOption  int

	// Recomputed every live tick, read by the snapshot.
	nearbyPocketID  string
	nearbyEnterable bool

	// Dataset ingestion status, surfaced to the client.
	DatasetAccepted int
	DatasetErr      string

	rng    *rand.Rand
	events []string
}

func NewGameSession(cfg *GameConfig, rng *rand.Rand) *GameSession {
	s := &GameSession{
		Config:         cfg,
		World:          GenerateWorld(cfg, rng),
		State:          StateMenu,
		Oxygen:         cfg.Oxygen.Max,
		SelectedOption: -1,
		rng:            rng,
	}
	return s
}

// reset rebuilds the whole session for a fresh run. Every field goes
// together; partial resets are forbidden.
func (s *GameSession) reset() {
	cfg := s.Config
	s.World = GenerateWorld(cfg, s.rng)
	s.State = StateIntro
	s.Player = Player{
		Pos:    Vector2{X: cfg.Viewport.Width / 2, Y: cfg.World.SurfaceY - cfg.Physics.IntroDropY},
		Vel:    Vector2{Y: -cfg.Physics.IntroUpwardKick},
		Region: RegionAerial,
	}
	s.Oxygen = cfg.Oxygen.Max
	s.Score = 0
	s.ClearedCount = 0
	s.ActivePocketID = ""
	s.CurrentQuestion = nil
	s.SelectedOption = -1
	s.nearbyPocketID = ""
	s.nearbyEnterable = false
	s.events = nil
}

// HandleStart begins a run from the menu.
func (s *GameSession) HandleStart() {
	if s.State != StateMenu {
		return
	}
	s.reset()
}

// HandleRestart restarts from any in-game or terminal state.
func (s *GameSession) HandleRestart() {
	if s.State == StateMenu {
		return
	}
	s.reset()
}

// HandleMove records held movement keys. dir is -1 (left) or +1 (right).
func (s *GameSession) HandleMove(dir int, pressed bool) {
	switch dir {
	case -1:
		s.Player.MovingLeft = pressed
	case 1:
		s.Player.MovingRight = pressed
	}
}

// HandlePauseToggle suspends or resumes the simulation.
func (s *GameSession) HandlePauseToggle() {
	switch s.State {
	case StatePlaying:
		s.State = StatePaused
	case StatePaused:
		s.State = StatePlaying
	}
}

// HandleEnterPocket opens the quiz for the nearest pocket. A no-op
// unless the proximity predicate holds for some uncleared pocket at
// this moment; the engine never auto-selects a distant pocket.
func (s *GameSession) HandleEnterPocket() {
	if s.State != StatePlaying && s.State != StateIntro {
		return
	}
	if len(s.Questions) == 0 {
		return
	}
	pocket, enterable := s.nearestPocket()
	if pocket == nil || !enterable {
		return
	}
	// Fewer questions than pockets is valid; they repeat in order.
	q := s.Questions[pocket.QuizIndex%len(s.Questions)]
	s.ActivePocketID = pocket.ID
	s.CurrentQuestion = &q
	s.SelectedOption = -1
	s.State = StateQuestion
}

// HandleSelectOption picks an answer candidate while the quiz is open.
func (s *GameSession) HandleSelectOption(i int) {
	if s.State != StateQuestion || s.CurrentQuestion == nil {
		return
	}
	if i < 0 || i >= len(s.CurrentQuestion.Options) {
		return
	}
	s.SelectedOption = i
}

// HandleSubmitAnswer resolves the open quiz. Correct clears the pocket
// and refunds oxygen; wrong ends the run immediately. Submitting with
// nothing selected is rejected.
func (s *GameSession) HandleSubmitAnswer() {
	if s.State != StateQuestion || s.CurrentQuestion == nil {
		return
	}
	if s.SelectedOption < 0 {
		return
	}

	correct := s.SelectedOption == s.CurrentQuestion.Answer
	if correct {
		if p, ok := s.World.Pockets.Get(s.ActivePocketID); ok && !p.Cleared {
			p.Cleared = true
			s.ClearedCount++
		}
		s.grantOxygenBonus()
		s.clearQuestion()
		s.State = StatePlaying
		s.Player.Region = RegionUnderwater
		return
	}

	s.clearQuestion()
	s.State = StateGameOver
	logrus.WithField("score", s.Score).Debug("session over: wrong answer")
}

// HandleCancelQuestion backs out of the quiz with no side effects.
func (s *GameSession) HandleCancelQuestion() {
	if s.State != StateQuestion {
		return
	}
	s.clearQuestion()
	s.State = StatePlaying
	s.Player.Region = RegionUnderwater
}

// HandleDatasetLoaded atomically swaps in a freshly parsed question
// list (or records the failure). A quiz already on screen keeps the
// question it was opened with.
func (s *GameSession) HandleDatasetLoaded(qs []dataset.Question, accepted int, err error) {
	if err != nil {
		s.DatasetErr = err.Error()
		return
	}
	s.Questions = qs
	s.DatasetAccepted = accepted
	s.DatasetErr = ""
}

func (s *GameSession) clearQuestion() {
	s.ActivePocketID = ""
	s.CurrentQuestion = nil
	s.SelectedOption = -1
}

// treasureReached tests the player point against the treasure box grown
// by the configured margin.
func (s *GameSession) treasureReached() bool {
	t := s.World.Treasure
	m := s.Config.World.TreasureMargin
	p := s.Player.Pos
	return p.X >= t.Pos.X-m && p.X <= t.Pos.X+t.Width+m &&
		p.Y >= t.Pos.Y-m && p.Y <= t.Pos.Y+t.Height+m
}

// UpdateTick advances the simulation by one host tick. Within a tick
// the order is fixed: physics, oxygen, proximity, then the terminal
// predicates, with oxygen exhaustion checked before the treasure so at
// most one terminal transition fires even if both would match.
func (s *GameSession) UpdateTick(dt float64) {
	dt = s.clampDelta(dt)

	switch s.State {
	case StateIntro:
		if s.stepAerial(dt) {
			s.State = StatePlaying
			s.events = append(s.events, EventSplash)
		}
		s.updateScore()
		s.refreshProximity()

	case StatePlaying:
		s.stepUnderwater(dt)
		s.drainOxygen(dt)
		s.refreshProximity()
		s.updateScore()
		if s.Oxygen <= 0 {
			s.State = StateGameOver
			logrus.WithField("score", s.Score).Debug("session over: oxygen exhausted")
			return
		}
		if s.treasureReached() {
			s.State = StateWin
			logrus.WithFields(logrus.Fields{
				"score":   s.Score,
				"cleared": s.ClearedCount,
			}).Info("treasure reached")
		}

	default:
		// menu, paused, question and the terminal states freeze the
		// simulation; input handling still runs outside the tick.
	}
}

// updateScore keeps the running maximum depth; it never decreases
// within a session.
func (s *GameSession) updateScore() {
	if s.Player.Pos.Y > s.Score {
		s.Score = s.Player.Pos.Y
	}
}

func (s *GameSession) refreshProximity() {
	pocket, enterable := s.nearestPocket()
	if pocket == nil {
		s.nearbyPocketID = ""
		s.nearbyEnterable = false
		return
	}
	s.nearbyPocketID = pocket.ID
	s.nearbyEnterable = enterable
}

// CameraOffsetY derives the bounded vertical camera offset consumed by
// the rendering layer.
func (s *GameSession) CameraOffsetY() float64 {
	offset := s.Player.Pos.Y - s.Config.Viewport.Height*s.Config.Viewport.CameraLead
	maxOffset := s.World.Depth - s.Config.Viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	return clampFloat(offset, 0, maxOffset)
}

// consumeEvents drains the one-shot event queue into the snapshot.
func (s *GameSession) consumeEvents() []string {
	ev := s.events
	s.events = nil
	return ev
}
