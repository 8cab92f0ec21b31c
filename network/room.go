package network

import (
	"sync"

	"github.com/sirupsen/logrus"

	"deepdive_server/dataset"
	"deepdive_server/logic"
)

// ThemeListener is notified of light/dark toggles. The game core never
// sees these; services with unrelated lifecycles (the ambient
// background animation, for one) subscribe here instead of sharing
// objects with the engine.
type ThemeListener interface {
	ThemeChanged(dark bool)
}

// Room tracks connected clients. Each client runs its own session; the
// room owns the shared pieces: config, the default question list, the
// reward sink and theme fan-out.
type Room struct {
	ID         string
	Config     *logic.GameConfig
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Rewards    logic.RewardSink

	defaultQuestions []dataset.Question
	defaultAccepted  int

	themeChan      chan bool
	themeListeners []ThemeListener
	Mutex          sync.RWMutex
}

func NewRoom(id string, cfg *logic.GameConfig, rewards logic.RewardSink) *Room {
	return &Room{
		ID:         id,
		Config:     cfg,
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Rewards:    rewards,
		themeChan:  make(chan bool, 8),
	}
}

// SetDefaultQuestions seeds every new session with a preloaded dataset.
// Call before Run.
func (r *Room) SetDefaultQuestions(qs []dataset.Question, accepted int) {
	r.defaultQuestions = qs
	r.defaultAccepted = accepted
}

// SubscribeTheme registers a listener. Call before Run.
func (r *Room) SubscribeTheme(l ThemeListener) {
	r.themeListeners = append(r.themeListeners, l)
}

// NotifyTheme queues a toggle for fan-out. Never blocks the caller.
func (r *Room) NotifyTheme(dark bool) {
	select {
	case r.themeChan <- dark:
	default:
	}
}

func (r *Room) Run() {
	logrus.WithFields(logrus.Fields{
		"room": r.ID,
		"tick": r.Config.Server.TickRateMs,
	}).Info("room started")

	for {
		select {
		case client := <-r.Register:
			r.Mutex.Lock()
			r.Clients[client] = true
			r.Mutex.Unlock()

			if len(r.defaultQuestions) > 0 {
				client.Loop.InputChan <- logic.PlayerInput{
					Type:      logic.ActionDatasetLoaded,
					Questions: r.defaultQuestions,
					Accepted:  r.defaultAccepted,
				}
			}

			client.SendJSON(MsgWelcome, WelcomePayload{
				SessionID: client.SessionID,
				Config:    r.Config,
			})
			logrus.WithField("session", client.SessionID).Info("client connected")

		case client := <-r.Unregister:
			r.Mutex.Lock()
			if _, ok := r.Clients[client]; ok {
				delete(r.Clients, client)
				// Stopping the loop also lets the snapshot pump close
				// the send channel and wind down the write pump.
				client.Loop.Stop()
			}
			r.Mutex.Unlock()
			logrus.WithField("session", client.SessionID).Info("client disconnected")

		case dark := <-r.themeChan:
			for _, l := range r.themeListeners {
				l.ThemeChanged(dark)
			}
		}
	}
}
