package logic

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"deepdive_server/dataset"
)

type ActionType int

const (
	ActionStart ActionType = iota
	ActionMove
	ActionPauseToggle
	ActionRestart
	ActionEnterPocket
	ActionSelectOption
	ActionSubmitAnswer
	ActionCancelQuestion
	ActionDatasetLoaded
)

// PlayerInput is one discrete action queued by the host.
type PlayerInput struct {
	Type    ActionType
	Dir     int  // -1 left, +1 right (ActionMove)
	Pressed bool // key down vs key up (ActionMove)
	Option  int  // ActionSelectOption

	// ActionDatasetLoaded payload: the host parses off this goroutine
	// and delivers only the finished result here.
	Questions []dataset.Question
	Accepted  int
	LoadErr   error
}

// RewardSink receives the final score after a win. The loop hands the
// result off and never waits on or reads a response.
type RewardSink interface {
	SaveReward(sessionID string, score float64, pocketsCleared int) error
}

// GameLoop drives one session. All session access happens on the Run
// goroutine; the host talks to it only through the channels.
type GameLoop struct {
	SessionID    string
	Session      *GameSession
	InputChan    chan PlayerInput
	SnapshotChan chan Snapshot
	StopChan     chan bool
	Rewards      RewardSink
}

func NewGameLoop(cfg *GameConfig, sessionID string, seed int64, rewards RewardSink) *GameLoop {
	rng := rand.New(rand.NewSource(seed))
	return &GameLoop{
		SessionID:    sessionID,
		Session:      NewGameSession(cfg, rng),
		InputChan:    make(chan PlayerInput, 100),
		SnapshotChan: make(chan Snapshot, 1),
		StopChan:     make(chan bool),
		Rewards:      rewards,
	}
}

func (gl *GameLoop) Run() {
	ticker := time.NewTicker(time.Duration(gl.Session.Config.Server.TickRateMs) * time.Millisecond)
	defer ticker.Stop()

	logrus.WithField("session", gl.SessionID).Debug("game loop started")

	last := time.Now()
	for {
		select {
		case input := <-gl.InputChan:
			gl.handleInput(input)

		case now := <-ticker.C:
			// Real elapsed time, clamped inside UpdateTick so a
			// stalled ticker cannot produce a tunneling jump.
			dt := now.Sub(last).Seconds()
			last = now

			prev := gl.Session.State
			gl.Session.UpdateTick(dt)

			if prev != StateWin && gl.Session.State == StateWin {
				gl.submitReward()
			}

			// Non-blocking send; skip the frame if the network side
			// is still busy with the previous one.
			select {
			case gl.SnapshotChan <- gl.Session.Snapshot():
			default:
			}

		case <-gl.StopChan:
			logrus.WithField("session", gl.SessionID).Debug("game loop stopped")
			return
		}
	}
}

// Stop terminates the Run goroutine.
func (gl *GameLoop) Stop() {
	close(gl.StopChan)
}

func (gl *GameLoop) handleInput(input PlayerInput) {
	s := gl.Session
	switch input.Type {
	case ActionStart:
		s.HandleStart()
	case ActionMove:
		s.HandleMove(input.Dir, input.Pressed)
	case ActionPauseToggle:
		s.HandlePauseToggle()
	case ActionRestart:
		s.HandleRestart()
	case ActionEnterPocket:
		s.HandleEnterPocket()
	case ActionSelectOption:
		s.HandleSelectOption(input.Option)
	case ActionSubmitAnswer:
		s.HandleSubmitAnswer()
	case ActionCancelQuestion:
		s.HandleCancelQuestion()
	case ActionDatasetLoaded:
		s.HandleDatasetLoaded(input.Questions, input.Accepted, input.LoadErr)
	}
}

func (gl *GameLoop) submitReward() {
	if gl.Rewards == nil {
		return
	}
	id, score, cleared := gl.SessionID, gl.Session.Score, gl.Session.ClearedCount
	go func() {
		if err := gl.Rewards.SaveReward(id, score, cleared); err != nil {
			logrus.WithError(err).WithField("session", id).Warn("failed to persist reward")
		}
	}()
}
